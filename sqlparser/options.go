package sqlparser

import (
	"github.com/vippsas/sqlscript/sqlparser/dialect"
)

// ParseConfig is the read-only configuration of a Parser. It is copied
// into the Parser at construction, so later changes by the caller have no
// effect on a Parser in use.
type ParseConfig struct {
	Dialect *dialect.Dialect

	// BlankLineIsDelimiter ends a statement at two consecutive line feeds
	// even without a delimiter.
	BlankLineIsDelimiter bool

	// ParametersEnabled turns on parameter extraction in ParseAll and
	// ExtractActive.
	ParametersEnabled bool
	// SupportParamsInDDL keeps parameters found in CREATE/ALTER/DROP
	// statements and the anonymous mark in EXEC/CALL statements.
	SupportParamsInDDL bool
	// VariablesEnabled also reports ${name} references, including those
	// inside strings and comments.
	VariablesEnabled bool
	// AnonymousParameterMark overrides the dialect's mark when non-zero.
	AnonymousParameterMark rune

	// RemoveTrailingDelimiter strips a delimiter ending a selection in
	// ExtractActive.
	RemoveTrailingDelimiter bool
}

// DefaultConfig returns the configuration used when nothing is
// configured: parameters and variables on, blank lines not delimiting.
func DefaultConfig(d *dialect.Dialect) ParseConfig {
	return ParseConfig{
		Dialect:                 d,
		ParametersEnabled:       true,
		VariablesEnabled:        true,
		RemoveTrailingDelimiter: true,
	}
}

// anonymousMark returns the effective anonymous parameter mark.
func (c ParseConfig) anonymousMark() rune {
	if c.AnonymousParameterMark != 0 {
		return c.AnonymousParameterMark
	}
	return c.Dialect.AnonymousMark()
}

// effectiveDialect applies the overrides of c to a copy of the dialect.
func (c ParseConfig) effectiveDialect() *dialect.Dialect {
	d := c.Dialect
	if d == nil {
		d = dialect.Generic
	}
	d = d.Clone()
	if c.AnonymousParameterMark != 0 {
		d.AnonymousParameterMark = string(c.AnonymousParameterMark)
	}
	return d
}
