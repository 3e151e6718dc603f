package sqldocument

import (
	"fmt"
	"strings"
)

// FileRef is a dedicated type for file references, allowing future refactoring
// of how files are identified without changing the API.
type FileRef string

// Pos represents a position in a source file with line and column numbers.
// Line and column are 1-indexed for human-readable error messages.
type Pos struct {
	File      FileRef
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// PosAt converts a byte offset in buf to a line/column position.
func PosAt(file FileRef, buf Buffer, offset int) Pos {
	text := buf.String()
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	line := strings.Count(text[:offset], "\n")
	return Pos{
		File: file,
		Line: line + 1,
		Col:  offset - buf.LineStart(offset) + 1,
	}
}

// A string that has a Pos-ition in a source document
type PosString struct {
	Pos
	Value string
}

func (p PosString) String() string {
	return p.Value
}

type Error struct {
	Pos     Pos
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s:%d:%d %s", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Message)
}

func (e Error) WithoutPos() Error {
	return Error{Message: e.Message}
}
