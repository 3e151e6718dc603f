package sqlscript

import (
	"testing"
	"testing/fstest"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

func sources(elements []sqldocument.ScriptElement) (result []string) {
	for _, e := range elements {
		result = append(result, e.Source())
	}
	return
}

func testOptions(t *testing.T) Options {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return Options{Config: DefaultConfig(), Logger: logger}
}

func scriptFS() fstest.MapFS {
	return fstest.MapFS{
		"a.sql": &fstest.MapFile{Data: []byte("SELECT 1;\nSELECT :x;")},
		"b.pgsql": &fstest.MapFile{Data: []byte(
			"CREATE FUNCTION f() RETURNS int AS $$ BEGIN RETURN 1; END $$ LANGUAGE plpgsql;\nSELECT 2;")},
		"feature.sql": &fstest.MapFile{Data: []byte("--sqlscript:include-if feature\nSELECT 3;")},
		".git/x.sql":  &fstest.MapFile{Data: []byte("SELECT 4;")},
		"notes.txt":   &fstest.MapFile{Data: []byte("SELECT 5;")},
		"sub/c.tsql":  &fstest.MapFile{Data: []byte("SELECT 1\nGO\nSELECT 2\nGO\n")},
	}
}

func TestInclude(t *testing.T) {
	scripts, err := Include(testOptions(t), scriptFS())
	require.NoError(t, err)
	assert.Equal(t, []string{"fs[0]:a.sql", "fs[0]:b.pgsql", "fs[0]:sub/c.tsql"}, scripts.ParsedFiles)
	require.Len(t, scripts.Scripts, 3)

	a := scripts.Scripts[0]
	assert.Equal(t, sqldocument.FileRef("a.sql"), a.File)
	assert.Equal(t, "generic", a.Dialect.Name)
	assert.Equal(t, []string{"SELECT 1", "SELECT :x"}, sources(a.Elements))
	stmts := a.Statements()
	require.Len(t, stmts, 2)
	require.Len(t, stmts[1].Parameters, 1)
	assert.Equal(t, "x", stmts[1].Parameters[0].Name)
	assert.Equal(t, sqldocument.Pos{File: "a.sql", Line: 2, Col: 1}, a.Pos(stmts[1].Offset))

	b := scripts.Scripts[1]
	assert.Equal(t, "postgresql", b.Dialect.Name)
	assert.Equal(t, []string{
		"CREATE FUNCTION f() RETURNS int AS $$ BEGIN RETURN 1; END $$ LANGUAGE plpgsql",
		"SELECT 2",
	}, sources(b.Elements))

	c := scripts.Scripts[2]
	assert.Equal(t, "sqlserver", c.Dialect.Name)
	assert.Equal(t, []string{"SELECT 1", "SELECT 2"}, sources(c.Elements))
}

func TestInclude_IncludeTags(t *testing.T) {
	opts := testOptions(t)
	opts.IncludeTags = []string{"feature"}
	scripts, err := Include(opts, scriptFS())
	require.NoError(t, err)
	assert.Equal(t, []string{"fs[0]:a.sql", "fs[0]:b.pgsql", "fs[0]:feature.sql", "fs[0]:sub/c.tsql"}, scripts.ParsedFiles)
	assert.Equal(t, []string{"feature"}, scripts.Scripts[2].Pragmas.IncludeIf)
	assert.Equal(t, []string{"--sqlscript:include-if feature\nSELECT 3"}, sources(scripts.Scripts[2].Elements))
}

func TestInclude_DuplicateFiles(t *testing.T) {
	fsys := fstest.MapFS{"a.sql": &fstest.MapFile{Data: []byte("SELECT 1;")}}
	_, err := Include(testOptions(t), fsys, fsys)
	var dup DuplicateFileError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, DuplicateFileError{Path: "fs[1]:a.sql", Existing: "fs[0]:a.sql"}, dup)
}

func TestInclude_PragmaErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.sql":     &fstest.MapFile{Data: []byte("--sqlscript:bogus x\nSELECT 1;")},
		"dialect.sql": &fstest.MapFile{Data: []byte("--sqlscript:dialect nosuch\nSELECT 2;")},
	}

	_, err := Include(testOptions(t), fsys)
	var pragmaErrs PragmaErrors
	require.ErrorAs(t, err, &pragmaErrs)
	require.Len(t, pragmaErrs.Errors, 2)
	assert.Equal(t, sqldocument.Pos{File: "bad.sql", Line: 1, Col: 1}, pragmaErrs.Errors[0].Pos)
	assert.Contains(t, err.Error(), "bad.sql:1:1: illegal pragma")
	assert.Contains(t, pragmaErrs.Errors[1].Message, "unknown dialect: nosuch")

	t.Run("partial results", func(t *testing.T) {
		opts := testOptions(t)
		opts.PartialParseResults = true
		scripts, err := Include(opts, fsys)
		require.NoError(t, err)
		assert.Len(t, scripts.Errors, 2)
		require.Len(t, scripts.Scripts, 2)
		assert.Equal(t, "generic", scripts.Scripts[1].Dialect.Name, "unknown dialect falls back to the default")
	})
}

func TestParseString_DialectPragma(t *testing.T) {
	script, errs := ParseString(testOptions(t), "x.sql", "--sqlscript:dialect sqlserver\nSELECT 1\nGO\nSELECT 2")
	assert.Empty(t, errs)
	assert.Equal(t, "sqlserver", script.Dialect.Name)
	assert.Equal(t, []string{"--sqlscript:dialect sqlserver\nSELECT 1", "SELECT 2"}, sources(script.Elements))
}

func TestParseString_ConfiguredDialect(t *testing.T) {
	opts := testOptions(t)
	opts.Config.Dialect = "mysql"
	opts.Config.KeepDelimiters = true

	script, errs := ParseString(opts, "x.sql", "SELECT 1 # comment\n;")
	assert.Empty(t, errs)
	assert.Equal(t, "mysql", script.Dialect.Name)
	assert.Equal(t, []string{"SELECT 1 # comment;"}, sources(script.Elements))

	t.Run("file extension wins", func(t *testing.T) {
		script, _ := ParseString(opts, "x.tsql", "SELECT 1")
		assert.Equal(t, "sqlserver", script.Dialect.Name)
	})
}
