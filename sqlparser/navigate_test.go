package sqlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

func TestExtractAtPos(t *testing.T) {
	p, _ := newTestParser(t, "generic")
	text := "SELECT 1;\nSELECT 2;\nSELECT 3;"

	tests := []struct {
		pos      int
		expected string
	}{
		{pos: 0, expected: "SELECT 1"},
		{pos: 3, expected: "SELECT 1"},
		{pos: 12, expected: "SELECT 2"},
		{pos: 19, expected: "SELECT 2"},
		{pos: 25, expected: "SELECT 3"},
		{pos: len(text), expected: "SELECT 3"},
	}
	for _, tt := range tests {
		element := p.ExtractAtPos(text, tt.pos)
		require.NotNil(t, element, "pos %d", tt.pos)
		assert.Equal(t, tt.expected, element.Source(), "pos %d", tt.pos)
	}

	assert.Nil(t, p.ExtractAtPos("", 0))
	assert.Nil(t, p.ExtractAtPos(text, -1))
}

func TestExtractAtPos_MultiLineStatement(t *testing.T) {
	p, _ := newTestParser(t, "generic")
	text := "SELECT a,\n  b\nFROM t;\nSELECT 2;"
	element := p.ExtractAtPos(text, 12)
	require.NotNil(t, element)
	assert.Equal(t, "SELECT a,\n  b\nFROM t", element.Source())
}

func TestExtractAtPos_BlankLines(t *testing.T) {
	p, _ := newTestParser(t, "generic", func(c *ParseConfig) { c.BlankLineIsDelimiter = true })

	text := "SELECT 1\n\nSELECT 2"
	assert.Equal(t, "SELECT 1", p.ExtractAtPos(text, 9).Source(), "blank line after a statement")
	assert.Equal(t, "SELECT 2", p.ExtractAtPos(text, 12).Source())

	assert.Nil(t, p.ExtractAtPos("\n\nSELECT 1", 0), "blank first line")
	assert.Nil(t, p.ExtractAtPos("SELECT 1\n\n\nSELECT 2", 10), "between blank lines")
}

func TestExtractNext(t *testing.T) {
	p, _ := newTestParser(t, "generic")
	text := "SELECT 1;\nSELECT 2;\nSELECT 3;"

	next := p.ExtractNext(text, 12, true)
	require.NotNil(t, next)
	assert.Equal(t, "SELECT 3", next.Source())

	prev := p.ExtractNext(text, 12, false)
	require.NotNil(t, prev)
	assert.Equal(t, "SELECT 1", prev.Source())

	assert.Nil(t, p.ExtractNext(text, 2, false), "no statement before the first")
	assert.Nil(t, p.ExtractNext(text, 25, true), "no statement after the last")
}

func TestExtractActive(t *testing.T) {
	p, _ := newTestParser(t, "generic")
	text := "SELECT 1;\nSELECT :x;\n@set a = 1"

	t.Run("selection is used as is", func(t *testing.T) {
		element := p.ExtractActive(text, 10, 10)
		require.IsType(t, &sqldocument.Statement{}, element)
		stmt := element.(*sqldocument.Statement)
		assert.Equal(t, "SELECT :x", stmt.Text)
		assert.Equal(t, sqldocument.Span{Offset: 10, Length: 10}, stmt.Span)
		assert.Equal(t, []string{":x"}, paramNames(stmt.Parameters))
	})

	t.Run("selection spanning statements", func(t *testing.T) {
		element := p.ExtractActive(text, 0, 20)
		assert.Equal(t, "SELECT 1;\nSELECT :x", element.Source())
	})

	t.Run("selected control command", func(t *testing.T) {
		element := p.ExtractActive(text, 21, 10)
		require.IsType(t, &sqldocument.ControlCommand{}, element)
		assert.Equal(t, "set", element.(*sqldocument.ControlCommand).CommandID)
	})

	t.Run("empty selection uses the statement at the caret", func(t *testing.T) {
		element := p.ExtractActive(text, 12, 0)
		require.NotNil(t, element)
		assert.Equal(t, "SELECT :x", element.Source())
	})

	t.Run("selection outside the text", func(t *testing.T) {
		assert.Nil(t, p.ExtractActive(text, 25, 100))
	})
}

func TestTrimDelimiter(t *testing.T) {
	p, _ := newTestParser(t, "generic")
	assert.Equal(t, "SELECT 1", p.TrimDelimiter("  SELECT 1 ;  ", true))
	assert.Equal(t, "SELECT 1 ;", p.TrimDelimiter("  SELECT 1 ;  ", false))
	assert.Equal(t, "BEGIN NULL; END;", p.TrimDelimiter("BEGIN NULL; END;", true))
	assert.Equal(t, "SELECT legend", p.TrimDelimiter("SELECT legend;", true))
	assert.Equal(t, "", p.TrimDelimiter(" ", true))
}
