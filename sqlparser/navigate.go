package sqlparser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// ExtractAtPos returns the statement or control command under pos, the
// way an editor picks the query to run at the caret.
//
// The scan starts after the last delimiter on the caret line that is
// followed by text before the caret, or at the previous blank line when
// blank lines delimit statements, or at the start of the text.
func (p *Parser) ExtractAtPos(text string, pos int) sqldocument.ScriptElement {
	return p.extractAtPos(sqldocument.NewBuffer(text), pos)
}

func (p *Parser) extractAtPos(buf sqldocument.Buffer, pos int) sqldocument.ScriptElement {
	if buf.Len() == 0 || pos < 0 {
		return nil
	}
	if pos > buf.Len() {
		pos = buf.Len()
	}
	lines := newLineIndex(buf)
	useBlankLines := p.cfg.BlankLineIsDelimiter
	lastPos := min(pos, buf.Len()-1)

	currentLine := lines.lineOf(pos)
	if useBlankLines && lines.isBlank(currentLine) {
		if currentLine == 0 {
			return nil
		}
		currentLine--
		if lines.isBlank(currentLine) {
			return nil
		}
	}

	startPos := 0
	lineOffset := lines.start(currentLine)
	firstLine := currentLine
	for firstLine > 0 {
		if useBlankLines && lines.isBlank(firstLine) {
			break
		}
		if currentLine == firstLine {
			line := lines.text(firstLine)
			for _, delim := range p.dialect.Delimiters {
				if r, _ := utf8.DecodeRuneInString(delim); unicode.IsLetter(r) || unicode.IsDigit(r) {
					// word delimiters would match inside identifiers
					continue
				}
				idx := strings.Index(line, delim)
				if idx < 0 {
					continue
				}
				delimOffset := lines.start(firstLine) + idx + len(delim)
				if pos > startPos && delimOffset < buf.Len() && delimOffset <= lastPos &&
					strings.TrimSpace(buf.String()[delimOffset:lastPos+1]) != "" {
					startPos = delimOffset
					break
				}
			}
		}
		firstLine--
	}
	if startPos == 0 {
		startPos = lines.start(firstLine)
	}
	return p.parseNext(buf, startPos, buf.Len(), lineOffset, false, false, p.log)
}

// ExtractNext returns the statement after (forward) or before the one at
// pos, or nil at either end of the text.
func (p *Parser) ExtractNext(text string, pos int, forward bool) sqldocument.ScriptElement {
	buf := sqldocument.NewBuffer(text)
	current := p.extractAtPos(buf, pos)
	if current == nil {
		return nil
	}
	var curPos int
	if forward {
		curPos = current.Bounds().End()
		for ; curPos < len(text); curPos++ {
			c := text[curPos]
			if !unicode.IsSpace(rune(c)) && !p.isDelimiterChar(c) {
				break
			}
		}
	} else {
		curPos = current.Bounds().Offset - 1
		for curPos >= 0 && unicode.IsSpace(rune(text[curPos])) {
			curPos--
		}
	}
	if curPos <= 0 || curPos >= len(text) {
		return nil
	}
	return p.extractAtPos(buf, curPos)
}

func (p *Parser) isDelimiterChar(c byte) bool {
	for _, delim := range p.dialect.Delimiters {
		if strings.IndexByte(delim, c) != -1 {
			return true
		}
	}
	return false
}

// ExtractActive returns the element to run for a selection. A non-empty
// selection is run as is, unless it starts with a control command; an
// empty selection falls back to the statement at its start.
func (p *Parser) ExtractActive(text string, selStart, selLength int) sqldocument.ScriptElement {
	buf := sqldocument.NewBuffer(text)
	if selStart < 0 || selLength < 0 || selStart+selLength > buf.Len() {
		p.log.WithFields(logrus.Fields{"offset": selStart, "length": selLength}).Warn("selection outside text")
		return nil
	}
	selected := text[selStart : selStart+selLength]
	if p.cfg.RemoveTrailingDelimiter {
		selected = p.TrimDelimiter(selected, !p.dialect.DelimiterAfterQuery)
	}

	var element sqldocument.ScriptElement
	if selected != "" {
		parsed := p.parseNext(buf, selStart, selStart+selLength, selStart, false, false, p.log)
		if command, ok := parsed.(*sqldocument.ControlCommand); ok {
			element = command
		} else {
			element = &sqldocument.Statement{
				Span: sqldocument.Span{Offset: selStart, Length: selLength},
				Text: sqldocument.FixLineFeeds(selected),
			}
		}
	} else {
		element = p.extractAtPos(buf, selStart)
	}
	if element == nil || element.Source() == "" {
		return nil
	}
	if stmt, ok := element.(*sqldocument.Statement); ok && p.cfg.ParametersEnabled {
		stmt.Parameters = p.extractParameters(buf, stmt.Offset, stmt.Length, p.log)
	}
	return element
}

// TrimDelimiter removes surrounding whitespace and, when trimDelimiter is
// set, a trailing delimiter from a statement text. A delimiter following
// the block end keyword is kept since it belongs to the block.
func (p *Parser) TrimDelimiter(text string, trimDelimiter bool) string {
	text = strings.TrimSpace(text)
	if !trimDelimiter {
		return text
	}
	for _, delim := range p.dialect.Delimiters {
		if !strings.HasSuffix(text, delim) {
			continue
		}
		body := strings.TrimRightFunc(strings.TrimSuffix(text, delim), unicode.IsSpace)
		if endsWithWord(body, p.dialect.BlockEndKeyword()) {
			return text
		}
		return body
	}
	return text
}

func endsWithWord(text, word string) bool {
	if len(text) < len(word) || !strings.EqualFold(text[len(text)-len(word):], word) {
		return false
	}
	if len(text) == len(word) {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:len(text)-len(word)])
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

// lineIndex maps offsets to lines of a buffer.
type lineIndex struct {
	buf    sqldocument.Buffer
	starts []int
}

func newLineIndex(buf sqldocument.Buffer) lineIndex {
	starts := []int{0}
	for i, c := range []byte(buf.String()) {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{buf: buf, starts: starts}
}

func (l lineIndex) lineOf(offset int) int {
	line := 0
	for line+1 < len(l.starts) && l.starts[line+1] <= offset {
		line++
	}
	return line
}

func (l lineIndex) start(line int) int {
	return l.starts[line]
}

func (l lineIndex) text(line int) string {
	start := l.starts[line]
	return l.buf.String()[start:l.buf.LineEnd(start)]
}

func (l lineIndex) isBlank(line int) bool {
	return strings.TrimSpace(l.text(line)) == ""
}
