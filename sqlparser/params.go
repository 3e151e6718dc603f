package sqlparser

import (
	"regexp"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// variableRegexp matches ${name} references. They are substituted before
// the statement reaches the database, so they are looked for in the raw
// text, strings and comments included.
var variableRegexp = regexp.MustCompile(`\$\{\w+\}`)

// ExtractParameters returns the bind parameters and variables of the
// statement at [offset, offset+length) of text, in document order.
// Parameter offsets are relative to the statement.
func (p *Parser) ExtractParameters(text string, offset, length int) []*sqldocument.Parameter {
	return p.extractParameters(sqldocument.NewBuffer(text), offset, length, p.log)
}

func (p *Parser) extractParameters(buf sqldocument.Buffer, offset, length int, log logrus.FieldLogger) []*sqldocument.Parameter {
	d := p.dialect
	mark := p.cfg.anonymousMark()

	var (
		params       []*sqldocument.Parameter
		isDDL        bool
		isExec       bool
		firstKeyword = true
	)
	p.tokens.SetRange(buf, offset, length)
	for {
		token := p.tokens.NextToken()
		if token.IsEOF() || token.Offset > offset+length {
			break
		}
		if token.IsWhitespace() || token.Kind == sqldocument.CommentKind {
			continue
		}
		if !p.cfg.SupportParamsInDDL && firstKeyword {
			if text, err := token.Text(buf); err == nil {
				if d.IsDDLKeyword(text) {
					isDDL = true
				} else {
					isExec = d.IsExecuteKeyword(text)
				}
			} else {
				log.WithError(err).Warn("reading first keyword")
			}
			firstKeyword = false
		}
		if token.Kind != sqldocument.ParameterKind || token.Length == 0 {
			continue
		}
		text, err := token.Text(buf)
		if err != nil {
			log.WithError(err).Warn("reading parameter")
			continue
		}
		if isDDL {
			continue
		}
		if isExec && text == string(mark) {
			// the anonymous mark of a procedure call is not a bind parameter
			continue
		}
		params = append(params, sqldocument.NewParameter(len(params), text, token.Offset-offset, token.Length, mark))
	}

	if p.cfg.VariablesEnabled {
		text, err := buf.Get(offset, length)
		if err != nil {
			log.WithError(err).Warn("reading variables")
		}
		for _, loc := range variableRegexp.FindAllStringIndex(text, -1) {
			start := loc[0]
			orderPos := 0
			seen := false
			for _, param := range params {
				if param.Offset == start {
					seen = true
					break
				} else if param.Offset < start {
					orderPos++
				}
			}
			if seen {
				continue
			}
			param := sqldocument.NewParameter(orderPos, text[loc[0]:loc[1]], start, loc[1]-loc[0], mark)
			params = slices.Insert(params, orderPos, param)
			for i := orderPos + 1; i < len(params); i++ {
				params[i].Ordinal = i
			}
		}
	}

	linkPrevious(params)
	return params
}

// linkPrevious points each named parameter at the closest earlier
// parameter with the same name.
func linkPrevious(params []*sqldocument.Parameter) {
	for i, param := range params {
		param.Previous = nil
		if !param.Named {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if params[j].Name == param.Name {
				param.Previous = params[j]
				break
			}
		}
	}
}
