package sqlscript

import (
	"strings"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

const pragmaPrefix = "--sqlscript:"

// Pragmas are the `--sqlscript:` lines at the top of a script file,
// before the first line with anything else than whitespace.
//
//	--sqlscript:dialect postgresql
//	--sqlscript:include-if feature-x,staging
type Pragmas struct {
	Dialect   string
	IncludeIf []string
}

// ParsePragmas reads the pragma header of text. Malformed pragmas are
// reported with their position and otherwise ignored.
func ParsePragmas(file sqldocument.FileRef, text string) (result Pragmas, errs []sqldocument.Error) {
	buf := sqldocument.NewBuffer(text)
	offset := 0
	for offset < len(text) {
		end := buf.LineEnd(offset)
		line := strings.TrimSpace(text[offset:end])
		next := end + 1
		if line == "" {
			offset = next
			continue
		}
		if !strings.HasPrefix(line, pragmaPrefix) {
			break
		}
		if msg := result.parseSinglePragma(line); msg != "" {
			errs = append(errs, sqldocument.Error{
				Pos:     sqldocument.PosAt(file, buf, offset+strings.Index(text[offset:end], pragmaPrefix)),
				Message: msg,
			})
		}
		offset = next
	}
	return
}

func (p *Pragmas) parseSinglePragma(line string) string {
	pragma := strings.TrimSpace(strings.TrimPrefix(line, pragmaPrefix))
	if pragma == "" {
		return ""
	}
	parts := strings.Fields(pragma)
	if len(parts) != 2 {
		return "illegal pragma: " + line
	}
	switch parts[0] {
	case "dialect":
		if p.Dialect != "" {
			return "dialect given twice: " + line
		}
		p.Dialect = parts[1]
	case "include-if":
		p.IncludeIf = append(p.IncludeIf, strings.Split(parts[1], ",")...)
	default:
		return "illegal pragma: " + line
	}
	return ""
}

// Matches reports whether every include-if tag is among tags.
func (p Pragmas) Matches(tags []string) bool {
	for _, r := range p.IncludeIf {
		found := false
		for _, g := range tags {
			if g == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
