package dialect

import (
	"strings"
)

// DefaultDelimiter is the statement delimiter every dialect understands.
const DefaultDelimiter = ";"

// Dialect describes the lexical and structural capabilities of one SQL
// variant. A Dialect is read-only once built; Clone before modifying one
// obtained from Lookup.
type Dialect struct {
	Name string `yaml:"name"`

	// Delimiters lists statement delimiters; the first one is the default.
	Delimiters []string `yaml:"delimiters"`
	// BatchSeparators are words that delimit a statement only when alone on
	// a line, such as GO for SQL Server or "/" for Oracle SQL*Plus.
	BatchSeparators []string `yaml:"batch_separators"`

	BlockBegin   []string `yaml:"block_begin"`
	BlockEnd     []string `yaml:"block_end"`
	BlockHeaders []string `yaml:"block_headers"`
	// BlockEndQualifiers may follow END on the same line, as in END IF or
	// END LOOP. The pair closes a block only if the qualifier opens one.
	BlockEndQualifiers []string `yaml:"block_end_qualifiers"`
	// DollarQuoteBlocks makes $$ and $tag$ block toggles; otherwise dollar
	// quoted text is scanned as a single string token.
	DollarQuoteBlocks bool `yaml:"dollar_quote_blocks"`

	SupportsCommentQuery bool `yaml:"supports_comment_query"`
	DelimiterAfterQuery  bool `yaml:"delimiter_after_query"`
	DelimiterAfterBlock  bool `yaml:"delimiter_after_block"`

	AnonymousParameterMark     string   `yaml:"anonymous_parameter_mark"`
	NamedParameterPrefixes     []string `yaml:"named_parameter_prefixes"`
	PositionalDollarParameters bool     `yaml:"positional_dollar_parameters"`

	DDLKeywords     []string `yaml:"ddl_keywords"`
	ExecuteKeywords []string `yaml:"execute_keywords"`

	// DelimiterCommand is the client command redefining the delimiter,
	// e.g. DELIMITER in MySQL. Empty disables it.
	DelimiterCommand string `yaml:"delimiter_command"`
	// ControlPrefix starts a client-side command line, e.g. "@set x = 1".
	ControlPrefix string `yaml:"control_prefix"`

	LineComments     []string `yaml:"line_comments"`
	IdentifierQuotes []string `yaml:"identifier_quotes"`
	BackslashEscapes bool     `yaml:"backslash_escapes"`
}

// Clone returns a deep copy.
func (d *Dialect) Clone() *Dialect {
	c := *d
	c.Delimiters = cloneStrings(d.Delimiters)
	c.BatchSeparators = cloneStrings(d.BatchSeparators)
	c.BlockBegin = cloneStrings(d.BlockBegin)
	c.BlockEnd = cloneStrings(d.BlockEnd)
	c.BlockHeaders = cloneStrings(d.BlockHeaders)
	c.BlockEndQualifiers = cloneStrings(d.BlockEndQualifiers)
	c.NamedParameterPrefixes = cloneStrings(d.NamedParameterPrefixes)
	c.DDLKeywords = cloneStrings(d.DDLKeywords)
	c.ExecuteKeywords = cloneStrings(d.ExecuteKeywords)
	c.LineComments = cloneStrings(d.LineComments)
	c.IdentifierQuotes = cloneStrings(d.IdentifierQuotes)
	return &c
}

// DefaultDelimiter returns the first configured delimiter.
func (d *Dialect) DefaultDelimiter() string {
	if len(d.Delimiters) == 0 {
		return DefaultDelimiter
	}
	return d.Delimiters[0]
}

// AnonymousMark returns the anonymous parameter marker as a rune, '?' when unset.
func (d *Dialect) AnonymousMark() rune {
	if d.AnonymousParameterMark == "" {
		return '?'
	}
	return []rune(d.AnonymousParameterMark)[0]
}

func (d *Dialect) IsBlockBegin(word string) bool  { return containsFold(d.BlockBegin, word) }
func (d *Dialect) IsBlockEnd(word string) bool    { return containsFold(d.BlockEnd, word) }
func (d *Dialect) IsBlockHeader(word string) bool { return containsFold(d.BlockHeaders, word) }
func (d *Dialect) IsBlockEndQualifier(word string) bool {
	return containsFold(d.BlockEndQualifiers, word)
}
func (d *Dialect) IsDDLKeyword(word string) bool  { return containsFold(d.DDLKeywords, word) }
func (d *Dialect) IsExecuteKeyword(word string) bool {
	return containsFold(d.ExecuteKeywords, word)
}
func (d *Dialect) IsBatchSeparator(word string) bool {
	return containsFold(d.BatchSeparators, word)
}

// IsDelimiterCommand reports whether word starts a delimiter redefinition.
func (d *Dialect) IsDelimiterCommand(word string) bool {
	return d.DelimiterCommand != "" && strings.EqualFold(d.DelimiterCommand, word)
}

// BlockEndKeyword is the keyword compared against the last keyword of a
// statement when deciding whether a delimiter belongs after a block.
func (d *Dialect) BlockEndKeyword() string {
	if len(d.BlockEnd) == 0 {
		return "END"
	}
	return d.BlockEnd[0]
}

func containsFold(list []string, word string) bool {
	for _, s := range list {
		if strings.EqualFold(s, word) {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
