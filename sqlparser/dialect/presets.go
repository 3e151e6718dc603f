package dialect

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	ddlKeywords = []string{"CREATE", "ALTER", "DROP"}

	// procedural END IF, END LOOP etc.; T-SQL has none of these
	endQualifiers = []string{"IF", "LOOP", "CASE", "WHILE", "REPEAT"}

	Generic = &Dialect{
		Name:                   "generic",
		Delimiters:             []string{DefaultDelimiter},
		BlockBegin:             []string{"BEGIN", "CASE"},
		BlockEnd:               []string{"END"},
		BlockEndQualifiers:     endQualifiers,
		AnonymousParameterMark: "?",
		NamedParameterPrefixes: []string{":"},
		DDLKeywords:            ddlKeywords,
		ExecuteKeywords:        []string{"EXEC", "EXECUTE", "CALL"},
		ControlPrefix:          "@",
		LineComments:           []string{"--"},
		IdentifierQuotes:       []string{`"`},
	}

	MySQL = &Dialect{
		Name:                   "mysql",
		Delimiters:             []string{DefaultDelimiter},
		BlockBegin:             []string{"BEGIN", "CASE", "LOOP"},
		BlockEnd:               []string{"END"},
		BlockEndQualifiers:     endQualifiers,
		AnonymousParameterMark: "?",
		NamedParameterPrefixes: []string{":"},
		DDLKeywords:            ddlKeywords,
		ExecuteKeywords:        []string{"CALL"},
		DelimiterCommand:       "DELIMITER",
		ControlPrefix:          "@",
		LineComments:           []string{"--", "#"},
		IdentifierQuotes:       []string{"`", `"`},
		BackslashEscapes:       true,
	}

	PostgreSQL = &Dialect{
		Name:                       "postgresql",
		Delimiters:                 []string{DefaultDelimiter},
		BlockBegin:                 []string{"BEGIN", "CASE", "LOOP"},
		BlockEnd:                   []string{"END"},
		BlockEndQualifiers:         endQualifiers,
		DollarQuoteBlocks:          true,
		AnonymousParameterMark:     "?",
		NamedParameterPrefixes:     []string{":"},
		PositionalDollarParameters: true,
		DDLKeywords:                ddlKeywords,
		ExecuteKeywords:            []string{"CALL"},
		ControlPrefix:              "@",
		LineComments:               []string{"--"},
		IdentifierQuotes:           []string{`"`},
	}

	SQLServer = &Dialect{
		Name:                   "sqlserver",
		Delimiters:             []string{DefaultDelimiter},
		BatchSeparators:        []string{"GO"},
		BlockBegin:             []string{"BEGIN", "CASE"},
		BlockEnd:               []string{"END"},
		DelimiterAfterQuery:    true,
		AnonymousParameterMark: "?",
		NamedParameterPrefixes: []string{":"},
		DDLKeywords:            ddlKeywords,
		ExecuteKeywords:        []string{"EXEC", "EXECUTE"},
		ControlPrefix:          "@",
		LineComments:           []string{"--"},
		IdentifierQuotes:       []string{"[", `"`},
	}

	Oracle = &Dialect{
		Name:                   "oracle",
		Delimiters:             []string{DefaultDelimiter},
		BatchSeparators:        []string{"/"},
		BlockBegin:             []string{"BEGIN", "CASE", "LOOP"},
		BlockEnd:               []string{"END"},
		BlockEndQualifiers:     endQualifiers,
		BlockHeaders:           []string{"DECLARE", "FUNCTION", "PROCEDURE"},
		DelimiterAfterBlock:    true,
		AnonymousParameterMark: "?",
		NamedParameterPrefixes: []string{":", "&"},
		DDLKeywords:            ddlKeywords,
		ExecuteKeywords:        []string{"EXEC", "EXECUTE", "CALL"},
		ControlPrefix:          "@",
		LineComments:           []string{"--"},
		IdentifierQuotes:       []string{`"`},
	}
)

// UnknownDialectError is returned when a dialect name is not registered.
type UnknownDialectError struct {
	Name string
}

func (e UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect: %s (known: %s)", e.Name, strings.Join(Names(), ", "))
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Dialect{}
	aliases    = map[string]string{
		"postgres": "postgresql",
		"pg":       "postgresql",
		"pgsql":    "postgresql",
		"mssql":    "sqlserver",
		"tsql":     "sqlserver",
		"plsql":    "oracle",
		"mariadb":  "mysql",
		"ansi":     "generic",
	}
	extensions = map[string]string{
		".sql":   "generic",
		".pgsql": "postgresql",
		".psql":  "postgresql",
		".mysql": "mysql",
		".tsql":  "sqlserver",
		".plsql": "oracle",
	}
)

func init() {
	for _, d := range []*Dialect{Generic, MySQL, PostgreSQL, SQLServer, Oracle} {
		registry[d.Name] = d
	}
}

// Register adds or replaces a dialect under its name.
func Register(d *Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(d.Name)] = d.Clone()
}

// Lookup returns a copy of the named dialect. Names are case insensitive
// and common aliases such as "postgres" or "mssql" are accepted.
func Lookup(name string) (*Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[key]
	if !ok {
		return nil, UnknownDialectError{Name: name}
	}
	return d.Clone(), nil
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) *Dialect {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names lists the registered dialect names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForFile picks a dialect from the file extension; .sql maps to generic.
func ForFile(path string) (*Dialect, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name, ok := extensions[ext]
	if !ok {
		return nil, fmt.Errorf("no dialect for file extension %q", ext)
	}
	return Lookup(name)
}

// IsScriptFile reports whether the extension is one ForFile understands.
func IsScriptFile(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
