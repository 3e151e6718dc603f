package sqlparser

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// ParseAll splits [start, start+length) of text into statements and
// control commands, in document order.
//
// The run is one evaluation session of the token stream, so a delimiter
// redefined by a DELIMITER command applies to the statements after it and
// is reset when ParseAll returns. With extractParameters, and parameters
// enabled in the configuration, each Statement gets its Parameters.
func (p *Parser) ParseAll(text string, start, length int, batchMode, keepDelimiters, extractParameters bool) []sqldocument.ScriptElement {
	return p.parseAll(sqldocument.NewBuffer(text), start, length, batchMode, keepDelimiters, extractParameters)
}

func (p *Parser) parseAll(buf sqldocument.Buffer, start, length int, batchMode, keepDelimiters, extractParameters bool) (result []sqldocument.ScriptElement) {
	log := p.log.WithFields(logrus.Fields{
		"session": newSessionID(),
		"dialect": p.dialect.Name,
	})
	end := start + length

	func() {
		if session, ok := p.tokens.(sqldocument.EvalSession); ok {
			session.StartEval()
			defer session.EndEval()
		}
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", fmt.Sprint(r)).Error("segmentation aborted")
			}
		}()

		for offset := start; ; {
			element := p.parseNext(buf, offset, end, offset, batchMode, keepDelimiters, log)
			if element == nil {
				break
			}
			result = append(result, element)
			next := element.Bounds().End()
			if next <= offset {
				log.WithField("offset", offset).Warn("segmentation did not advance")
				break
			}
			offset = next
		}
	}()
	log.WithField("elements", len(result)).Debug("script segmented")

	if extractParameters && p.cfg.ParametersEnabled {
		for _, element := range result {
			if stmt, ok := element.(*sqldocument.Statement); ok {
				stmt.Parameters = p.extractParameters(buf, stmt.Offset, stmt.Length, log)
			}
		}
	}
	return result
}

func newSessionID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}
