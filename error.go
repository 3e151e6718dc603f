package sqlscript

import (
	"fmt"
	"strings"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// DuplicateFileError is returned when two included files have the exact
// same contents, typically the same directory passed twice.
type DuplicateFileError struct {
	Path, Existing string
}

func (e DuplicateFileError) Error() string {
	return fmt.Sprintf("file %s has exact same contents as %s (possibly in different filesystems)", e.Path, e.Existing)
}

type PragmaErrors struct {
	Errors []sqldocument.Error
}

func (e PragmaErrors) Error() string {
	var msg strings.Builder
	msg.WriteString("sqlscript pragma error:\n\n")
	for _, e := range e.Errors {
		msg.WriteString(fmt.Sprintf("%s:%d:%d: %s\n", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Message))
	}
	return msg.String()
}
