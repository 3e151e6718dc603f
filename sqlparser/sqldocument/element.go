package sqldocument

import (
	"strconv"
	"strings"
)

// Span is a half-open byte range [Offset, Offset+Length) of a buffer.
type Span struct {
	Offset int
	Length int
}

func (s Span) End() int {
	return s.Offset + s.Length
}

// ScriptElement is one unit produced by segmentation: either a *Statement
// or a *ControlCommand.
type ScriptElement interface {
	Bounds() Span
	Source() string
	scriptElement()
}

// Statement is a query to be sent to the database.
type Statement struct {
	Span
	Text       string
	Parameters []*Parameter
}

func (s *Statement) Bounds() Span   { return s.Span }
func (s *Statement) Source() string { return s.Text }
func (*Statement) scriptElement()   {}

// HasParameters reports whether any bind parameter or variable was found.
func (s *Statement) HasParameters() bool {
	return len(s.Parameters) > 0
}

// ControlCommand is a client-side directive, never sent to the database.
type ControlCommand struct {
	Span
	Text                    string
	CommandID               string
	IsDelimiterRedefinition bool
}

func (c *ControlCommand) Bounds() Span   { return c.Span }
func (c *ControlCommand) Source() string { return c.Text }
func (*ControlCommand) scriptElement()   {}

// Parameters returns the command text after the command id, e.g. "x = 1"
// for `@set x = 1`, or the new delimiter for `DELIMITER $$`.
func (c *ControlCommand) Parameters() string {
	text := strings.TrimSpace(c.Text)
	fields := strings.SplitN(text, " ", 2)
	if len(fields) < 2 {
		return ""
	}
	return strings.TrimSpace(fields[1])
}

// IsEmpty reports whether the command carries no command id, such as a
// bare control prefix on its own line.
func (c *ControlCommand) IsEmpty() bool {
	return c.CommandID == ""
}

// Parameter is a bind parameter or variable reference inside a statement.
// Offset is relative to the start of the statement.
type Parameter struct {
	Ordinal int
	Name    string // variable name without prefix, e.g. "id" for ":id"
	Text    string // raw text, e.g. ":id", "?" or "${id}"
	Named   bool
	Offset  int
	Length  int

	// Previous is the closest earlier parameter with the same name in the
	// same statement; nil for the first occurrence and for positional
	// parameters.
	Previous *Parameter
}

// NewParameter derives the variable name and named-ness from the raw text.
func NewParameter(ordinal int, text string, offset, length int, anonymousMark rune) *Parameter {
	name := VariableName(text)
	return &Parameter{
		Ordinal: ordinal,
		Name:    name,
		Text:    text,
		Named:   text != string(anonymousMark) && !isPositional(name),
		Offset:  offset,
		Length:  length,
	}
}

// VariableName strips parameter and variable decoration from raw text:
// ":id" -> "id", "${id}" -> "id", "$1" -> "1". The anonymous mark is
// returned unchanged.
func VariableName(text string) string {
	switch {
	case strings.HasPrefix(text, "${") && strings.HasSuffix(text, "}"):
		return text[2 : len(text)-1]
	case len(text) > 1 && strings.ContainsRune(":&$@", rune(text[0])):
		return text[1:]
	default:
		return text
	}
}

func isPositional(name string) bool {
	_, err := strconv.Atoi(name)
	return err == nil
}

// Chain returns the parameter followed by all earlier occurrences of the
// same name, most recent first.
func (p *Parameter) Chain() []*Parameter {
	var result []*Parameter
	for cur := p; cur != nil; cur = cur.Previous {
		result = append(result, cur)
	}
	return result
}
