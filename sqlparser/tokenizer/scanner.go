package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// cursor walks the scan range of the input. It is restricted to
// input[:len(input)], which the Tokenizer slices to the range end, so no
// token can extend past the range.
type cursor struct {
	input      string
	startIndex int // byte index where current token starts
	curIndex   int // current byte position in input
}

func (s *cursor) reset(input string, offset int) {
	s.input = input
	s.startIndex = offset
	s.curIndex = offset
}

// incIndexes starts a new token at the current position.
func (s *cursor) incIndexes() {
	s.startIndex = s.curIndex
}

func (s *cursor) atEnd() bool {
	return s.curIndex >= len(s.input)
}

// token returns the text of the current token.
func (s *cursor) token() string {
	return s.input[s.startIndex:s.curIndex]
}

// tokenRune decodes the rune peek bytes after the current position.
func (s *cursor) tokenRune(peek int) (rune, int) {
	i := s.curIndex + peek
	if i >= len(s.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.input[i:])
}

// rest returns the unscanned input.
func (s *cursor) rest() string {
	return s.input[s.curIndex:]
}

func (s *cursor) incCurIndex(i int) {
	s.curIndex += i
}

// setCurIndex moves to the end of the input.
func (s *cursor) setCurIndex() {
	s.curIndex = len(s.input)
}

// restOfLine returns the input from the current position up to, not
// including, the next line feed.
func (s *cursor) restOfLine() string {
	rest := s.rest()
	if end := strings.IndexByte(rest, '\n'); end != -1 {
		return rest[:end]
	}
	return rest
}

// scanMultilineComment assumes one has advanced over '/*'
func (s *cursor) scanMultilineComment() {
	prevWasStar := false
	for i, r := range s.rest() {
		if r == '*' {
			prevWasStar = true
		} else if prevWasStar && r == '/' {
			s.curIndex += i + 1
			return
		} else {
			prevWasStar = false
		}
	}
	s.setCurIndex()
}

// scanToEndOfLine leaves the '\n' for the following whitespace token.
func (s *cursor) scanToEndOfLine() {
	s.curIndex += len(s.restOfLine())
}

// scanWhitespace reports whether a line feed was consumed.
func (s *cursor) scanWhitespace() (lineFeed bool) {
	for i, r := range s.rest() {
		if r == '\n' {
			lineFeed = true
		}
		if !unicode.IsSpace(r) {
			s.curIndex += i
			return lineFeed
		}
	}
	s.setCurIndex()
	return lineFeed
}

// scanUntilSingleDoubleEscapes assumes the opening quote has been consumed and
// scans to endmarker, treating a doubled endmarker as an escape. With
// backslash set a backslash escapes the following character too.
func (s *cursor) scanUntilSingleDoubleEscapes(endmarker rune, backslash bool) {
	skipnext := false
	for i, r := range s.rest() {
		if skipnext {
			skipnext = false
			continue
		}
		if backslash && r == '\\' {
			skipnext = true
			continue
		}
		if r == endmarker {
			r2, _ := s.tokenRune(i + utf8.RuneLen(r)) // r2 may be RuneError if eof
			if r2 == endmarker {
				// we have a double endmarker; this is used as escape
				skipnext = true
			} else {
				s.curIndex += i + utf8.RuneLen(r)
				return
			}
		}
	}
	s.setCurIndex()
}

// scanIdentifier assumes first character of an identifier has been identified,
// and scans to the end. stop is consulted before each '$', '#' or '@' so a
// delimiter made of those characters can end the identifier.
func (s *cursor) scanIdentifier(stop func() bool) {
	for i, r := range s.rest() {
		if !(xid.Continue(r) || r == '$' || r == '#' || r == '@' || unicode.Is(unicode.Cf, r)) {
			s.curIndex += i
			return
		}
		if r == '$' || r == '#' || r == '@' {
			start := s.curIndex
			s.curIndex += i
			if stop() {
				return
			}
			s.curIndex = start
		}
	}
	s.setCurIndex()
}

// scanName scans a parameter name: identifier characters only.
func (s *cursor) scanName() {
	for i, r := range s.rest() {
		if !(xid.Continue(r) || unicode.Is(unicode.Cf, r)) {
			s.curIndex += i
			return
		}
	}
	s.setCurIndex()
}

var numberRegexp = regexp.MustCompile(`^\d+\.?\d*([eE][+-]?\d+)?`)

func (s *cursor) scanNumber() {
	loc := numberRegexp.FindStringIndex(s.rest())
	if len(loc) == 0 {
		panic("should always have a match according to regex and conditions in caller")
	}
	s.curIndex += loc[1]
}

func isIdentStart(r rune) bool {
	return xid.Start(r) || r == '_'
}

func isIdentContinue(r rune) bool {
	return xid.Continue(r) || r == '$' || r == '#' || r == '@'
}
