package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// scanLineCommand recognises the constructs that must start a line:
// batch separators, delimiter redefinitions and control commands.
func (t *Tokenizer) scanLineCommand() (sqldocument.Token, bool) {
	line := t.restOfLine()
	trimmed := strings.TrimSpace(line)

	if t.dialect.IsBatchSeparator(trimmed) {
		// trailing blanks are left for the following whitespace token
		t.incCurIndex(len(trimmed))
		return sqldocument.Token{Kind: sqldocument.DelimiterKind}, true
	}

	if cmd := t.dialect.DelimiterCommand; cmd != "" && len(trimmed) > len(cmd) &&
		strings.EqualFold(trimmed[:len(cmd)], cmd) && unicode.IsSpace(rune(trimmed[len(cmd)])) {
		t.incCurIndex(len(line))
		if t.evaluating {
			if delim := strings.TrimSpace(trimmed[len(cmd):]); delim != "" {
				t.log.WithField("delimiter", delim).Debug("delimiter redefined")
				t.setDelimiters([]string{delim})
			}
		}
		return sqldocument.Token{Kind: sqldocument.SetDelimiterKind, CommandID: DelimiterCommandID}, true
	}

	if prefix := t.dialect.ControlPrefix; prefix != "" && strings.HasPrefix(line, prefix) {
		rest := line[len(prefix):]
		end := strings.IndexFunc(rest, func(r rune) bool { return !isIdentContinue(r) })
		if end == -1 {
			end = len(rest)
		}
		id := strings.ToLower(rest[:end])
		if id != "" && isAssignment(rest[end:]) {
			// MySQL user variable, as in @total := 0
			return sqldocument.Token{}, false
		}
		t.incCurIndex(len(line))
		return sqldocument.Token{Kind: sqldocument.ControlKind, CommandID: id}, true
	}
	return sqldocument.Token{}, false
}

func isAssignment(s string) bool {
	s = strings.TrimLeft(s, " \t")
	return strings.HasPrefix(s, ":=") || strings.HasPrefix(s, "=")
}

// scanDollar handles everything starting with '$': positional parameters,
// ${var} references, and dollar quoted text or toggles.
func (t *Tokenizer) scanDollar() sqldocument.Token {
	rest := t.rest()

	if strings.HasPrefix(rest, "${") {
		if end := strings.IndexByte(rest, '}'); end != -1 {
			t.incCurIndex(end + 1)
			return t.unknown()
		}
		t.incCurIndex(1)
		return t.unknown()
	}

	next, _ := t.tokenRune(1)
	if next >= '0' && next <= '9' {
		t.incCurIndex(1)
		t.scanNumber()
		if t.dialect.PositionalDollarParameters {
			return sqldocument.Token{Kind: sqldocument.ParameterKind}
		}
		return t.unknown()
	}

	tag, ok := dollarTag(rest)
	if !ok {
		t.incCurIndex(1)
		return t.unknown()
	}
	t.incCurIndex(len(tag))
	if t.dialect.DollarQuoteBlocks {
		return sqldocument.Token{Kind: sqldocument.BlockToggleKind}
	}
	// an unterminated tag is left as a lone token
	if end := strings.Index(t.rest(), tag); end != -1 {
		t.incCurIndex(end + len(tag))
	}
	return t.unknown()
}

// dollarTag returns the leading $tag$ (or $$) of s.
func dollarTag(s string) (string, bool) {
	for i, r := range s[1:] {
		if r == '$' {
			return s[:i+2], true
		}
		if !(isIdentStart(r) || (i > 0 && isIdentContinue(r) && r != '$')) {
			return "", false
		}
	}
	return "", false
}

// scanParameter recognises the anonymous mark and prefixed names such as
// :id or &name.
func (t *Tokenizer) scanParameter(r rune, w int) (sqldocument.Token, bool) {
	if r == t.dialect.AnonymousMark() {
		t.incCurIndex(w)
		return sqldocument.Token{Kind: sqldocument.ParameterKind}, true
	}

	for _, prefix := range t.dialect.NamedParameterPrefixes {
		if !strings.HasPrefix(t.rest(), prefix) {
			continue
		}
		if strings.HasPrefix(t.rest(), prefix+prefix) {
			// ::type casts and && operators
			t.incCurIndex(2 * len(prefix))
			return t.unknown(), true
		}
		next, _ := t.tokenRune(len(prefix))
		isDigit := next >= '0' && next <= '9'
		if !isIdentStart(next) && !(isDigit && !t.prevIsAlphanumeric()) {
			continue
		}
		t.incCurIndex(len(prefix))
		t.scanName()
		return sqldocument.Token{Kind: sqldocument.ParameterKind}, true
	}
	return sqldocument.Token{}, false
}

func (t *Tokenizer) prevIsAlphanumeric() bool {
	if t.curIndex == 0 {
		return false
	}
	prev, _ := utf8.DecodeLastRuneInString(t.input[:t.curIndex])
	return unicode.IsLetter(prev) || unicode.IsDigit(prev)
}
