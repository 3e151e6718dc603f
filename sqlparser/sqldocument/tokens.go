package sqldocument

import "fmt"

// Kind classifies a token for statement segmentation.
//
// The tokenizer collapses the lexical detail of a dialect (string literals,
// identifiers, operators, keywords without block meaning) into UnknownKind;
// only the categories the segmenter and the parameter extractor act on
// get a kind of their own.
type Kind int

const (
	UnknownKind Kind = iota
	WhitespaceKind
	CommentKind
	DelimiterKind
	BlockBeginKind
	BlockEndKind
	BlockHeaderKind
	BlockToggleKind
	SetDelimiterKind
	ControlKind
	ParameterKind
	EOFKind
)

var kindNames = map[Kind]string{
	UnknownKind:      "Unknown",
	WhitespaceKind:   "Whitespace",
	CommentKind:      "Comment",
	DelimiterKind:    "Delimiter",
	BlockBeginKind:   "BlockBegin",
	BlockEndKind:     "BlockEnd",
	BlockHeaderKind:  "BlockHeader",
	BlockToggleKind:  "BlockToggle",
	SetDelimiterKind: "SetDelimiter",
	ControlKind:      "Control",
	ParameterKind:    "Parameter",
	EOFKind:          "EOF",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a typed span of the scanned buffer. The text is not copied;
// resolve it with Text against the buffer the token was scanned from.
type Token struct {
	Kind   Kind
	Offset int
	Length int

	// CommandID is set on ControlKind and SetDelimiterKind tokens and names
	// the client-side command, e.g. "set" for `@set x = 1`.
	CommandID string
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Offset + t.Length
}

func (t Token) IsEOF() bool {
	return t.Kind == EOFKind
}

func (t Token) IsWhitespace() bool {
	return t.Kind == WhitespaceKind
}

// Text resolves the token text from buf.
func (t Token) Text(buf Buffer) (string, error) {
	return buf.Get(t.Offset, t.Length)
}

// Contains reports whether offset lies inside the token.
func (t Token) Contains(offset int) bool {
	return offset >= t.Offset && offset < t.End()
}
