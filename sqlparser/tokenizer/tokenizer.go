package tokenizer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/smasher164/xid"
	"github.com/vippsas/sqlscript/sqlparser/dialect"
	"github.com/vippsas/sqlscript/sqlparser/internal/utils"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// DelimiterCommandID is the command id carried by delimiter redefinition tokens.
const DelimiterCommandID = "delimiter"

// Tokenizer is a pull-based lexer classifying script text for statement
// segmentation according to a dialect.
//
// The tokenizer handles the constructs that decide where statements end:
//   - String literals ('...', E'...') and quoted identifiers
//   - Single-line and multi-line comments
//   - Statement delimiters, including ones redefined with DELIMITER
//   - Batch separators alone on a line (GO, /)
//   - Block keywords (BEGIN, END, CASE, DECLARE ...) and $tag$ toggles
//   - Bind parameters (?, :name, $1)
//   - Client-side control lines (@set ...)
//
// Everything else is reported as UnknownKind.
type Tokenizer struct {
	cursor
	dialect *dialect.Dialect
	log     logrus.FieldLogger

	buf sqldocument.Buffer

	delimiters []string // active delimiters, longest first
	evaluating bool

	// Batch separator and control line state. These constructs are only
	// recognised when nothing but whitespace precedes them on their line.
	startOfLine bool

	prevWord string // last word token, upper-cased
}

var _ sqldocument.TokenStream = (*Tokenizer)(nil)
var _ sqldocument.EvalSession = (*Tokenizer)(nil)

type Option func(*Tokenizer)

// WithLogger sets the logger receiving tokenizer diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Tokenizer) {
		t.log = log
	}
}

// New creates a Tokenizer for d. Call SetRange before NextToken.
func New(d *dialect.Dialect, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		dialect: d,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.setDelimiters(d.Delimiters)
	return t
}

func (t *Tokenizer) Dialect() *dialect.Dialect {
	return t.dialect
}

// Delimiters returns the active statement delimiters.
func (t *Tokenizer) Delimiters() []string {
	return append([]string(nil), t.delimiters...)
}

func (t *Tokenizer) setDelimiters(delims []string) {
	if len(delims) == 0 {
		delims = []string{dialect.DefaultDelimiter}
	}
	t.delimiters = append([]string(nil), delims...)
	sort.SliceStable(t.delimiters, func(i, j int) bool {
		return len(t.delimiters[i]) > len(t.delimiters[j])
	})
}

// StartEval opens an evaluation session: delimiter redefinitions scanned
// from now on stay active until EndEval.
func (t *Tokenizer) StartEval() {
	if t.evaluating {
		t.log.Warn("evaluation session already started")
		return
	}
	t.evaluating = true
}

// EndEval closes the evaluation session and restores the dialect delimiters.
func (t *Tokenizer) EndEval() {
	if !t.evaluating {
		t.log.Warn("evaluation session not started")
	}
	t.evaluating = false
	t.setDelimiters(t.dialect.Delimiters)
}

// SetRange implements sqldocument.TokenStream.
func (t *Tokenizer) SetRange(buf sqldocument.Buffer, offset, length int) {
	end := offset + length
	if end > buf.Len() {
		end = buf.Len()
	}
	if end < 0 {
		end = 0
	}
	if offset > end {
		offset = end
	}
	if offset < 0 {
		offset = 0
	}
	t.buf = buf
	t.reset(buf.String()[:end], offset)
	t.prevWord = ""

	lineStart := buf.LineStart(offset)
	t.startOfLine = strings.TrimSpace(buf.String()[lineStart:offset]) == ""
}

// NextToken implements sqldocument.TokenStream.
func (t *Tokenizer) NextToken() sqldocument.Token {
	t.incIndexes()
	tok := t.nextToken()
	tok.Offset = t.startIndex
	tok.Length = t.curIndex - t.startIndex

	switch tok.Kind {
	case sqldocument.WhitespaceKind, sqldocument.EOFKind:
	default:
		t.startOfLine = false
	}
	utils.DPrint("token %s at %d: %q\n", tok.Kind, tok.Offset, t.token())
	return tok
}

func (t *Tokenizer) nextToken() sqldocument.Token {
	if t.atEnd() {
		return sqldocument.Token{Kind: sqldocument.EOFKind}
	}
	r, w := t.tokenRune(0)

	if unicode.IsSpace(r) {
		if t.scanWhitespace() {
			t.startOfLine = true
		}
		return sqldocument.Token{Kind: sqldocument.WhitespaceKind}
	}

	if t.startOfLine {
		if tok, ok := t.scanLineCommand(); ok {
			return tok
		}
	}

	rest := t.rest()
	switch {
	case strings.HasPrefix(rest, "/*"):
		t.incCurIndex(2)
		t.scanMultilineComment()
		return sqldocument.Token{Kind: sqldocument.CommentKind}
	case t.hasLineCommentPrefix(rest):
		t.scanToEndOfLine()
		return sqldocument.Token{Kind: sqldocument.CommentKind}
	}

	if delim := t.matchDelimiter(rest); delim != "" {
		t.incCurIndex(len(delim))
		return sqldocument.Token{Kind: sqldocument.DelimiterKind}
	}

	switch {
	case r == '\'':
		t.incCurIndex(w)
		t.scanUntilSingleDoubleEscapes('\'', t.dialect.BackslashEscapes)
		return t.unknown()
	case (r == 'E' || r == 'e') && strings.HasPrefix(rest[w:], "'"):
		t.incCurIndex(w + 1)
		t.scanUntilSingleDoubleEscapes('\'', true)
		return t.unknown()
	case t.isIdentifierQuote(r):
		t.incCurIndex(w)
		end := r
		if r == '[' {
			end = ']'
		}
		t.scanUntilSingleDoubleEscapes(end, false)
		return t.unknown()
	case r == '$':
		return t.scanDollar()
	case r >= '0' && r <= '9':
		t.scanNumber()
		return t.unknown()
	}

	if tok, ok := t.scanParameter(r, w); ok {
		return tok
	}

	if isIdentStart(r) || r == '@' || r == '#' {
		t.incCurIndex(w)
		t.scanIdentifier(t.endsWord)
		return t.classifyWord()
	}

	if w == 0 {
		// not UTF-8; step over the byte
		w = 1
	}
	t.incCurIndex(w)
	return t.unknown()
}

func (t *Tokenizer) unknown() sqldocument.Token {
	return sqldocument.Token{Kind: sqldocument.UnknownKind}
}

func (t *Tokenizer) hasLineCommentPrefix(rest string) bool {
	for _, prefix := range t.dialect.LineComments {
		if strings.HasPrefix(rest, prefix) {
			return true
		}
	}
	return false
}

func (t *Tokenizer) isIdentifierQuote(r rune) bool {
	for _, q := range t.dialect.IdentifierQuotes {
		if q == string(r) {
			return true
		}
	}
	return false
}

// matchDelimiter returns the active delimiter starting the rest of the
// input. Delimiters that start with a letter or digit must stand as whole
// words; others such as $$ or // also end a word, as in END$$.
func (t *Tokenizer) matchDelimiter(rest string) string {
	for _, delim := range t.delimiters {
		if !strings.HasPrefix(rest, delim) {
			continue
		}
		if isWordDelimiter(delim) {
			if t.curIndex > 0 {
				prev, _ := utf8.DecodeLastRuneInString(t.input[:t.curIndex])
				if isIdentContinue(prev) {
					continue
				}
			}
			next, _ := utf8.DecodeRuneInString(rest[len(delim):])
			if len(rest) > len(delim) && isIdentContinue(next) {
				continue
			}
		}
		return delim
	}
	return ""
}

func isWordDelimiter(delim string) bool {
	first, _ := utf8.DecodeRuneInString(delim)
	return unicode.IsLetter(first) || unicode.IsDigit(first) || first == '_'
}

// endsWord reports whether an active non-word delimiter starts at the
// current position.
func (t *Tokenizer) endsWord() bool {
	delim := t.matchDelimiter(t.rest())
	return delim != "" && !isWordDelimiter(delim)
}

// classifyWord assumes the word has been scanned.
func (t *Tokenizer) classifyWord() sqldocument.Token {
	word := strings.ToUpper(t.token())
	prev := t.prevWord
	t.prevWord = word

	d := t.dialect
	switch {
	case d.IsBlockHeader(word) && prev != "DROP" && prev != "ALTER":
		return sqldocument.Token{Kind: sqldocument.BlockHeaderKind}
	case d.IsBlockBegin(word):
		if word == "BEGIN" && t.beginsTransaction() {
			return t.unknown()
		}
		return sqldocument.Token{Kind: sqldocument.BlockBeginKind}
	case d.IsBlockEnd(word):
		if qualifier := t.scanEndQualifier(); qualifier != "" && !d.IsBlockBegin(qualifier) {
			// END IF, END WHILE: the opening word never pushed a block
			return t.unknown()
		}
		return sqldocument.Token{Kind: sqldocument.BlockEndKind}
	}
	return t.unknown()
}

// scanEndQualifier extends an END token over a following block end
// qualifier on the same line and returns that word upper-cased.
func (t *Tokenizer) scanEndQualifier() string {
	rest := t.restOfLine()
	trimmed := strings.TrimLeft(rest, " \t")
	if len(trimmed) == len(rest) {
		return ""
	}
	// stop at '$' too, for END LOOP$$ under a redefined delimiter
	end := strings.IndexFunc(trimmed, func(r rune) bool { return !xid.Continue(r) })
	if end == -1 {
		end = len(trimmed)
	}
	word := strings.ToUpper(trimmed[:end])
	if !t.dialect.IsBlockEndQualifier(word) {
		return ""
	}
	t.incCurIndex(len(rest) - len(trimmed) + end)
	return word
}

var transactionWords = map[string]struct{}{
	"TRANSACTION": {},
	"TRAN":        {},
	"WORK":        {},
	"DISTRIBUTED": {},
	"ISOLATION":   {},
	"READ":        {},
}

// beginsTransaction reports whether the BEGIN just scanned starts a
// transaction rather than a block: `BEGIN;`, `BEGIN TRANSACTION`, ...
func (t *Tokenizer) beginsTransaction() bool {
	rest := strings.TrimLeftFunc(t.rest(), unicode.IsSpace)
	if rest == "" || t.matchDelimiter(rest) != "" {
		return true
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return !isIdentContinue(r) })
	if end == -1 {
		end = len(rest)
	}
	_, ok := transactionWords[strings.ToUpper(rest[:end])]
	return ok
}
