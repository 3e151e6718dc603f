package sqldocument

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Delimiter", DelimiterKind.String())
	assert.Equal(t, "EOF", EOFKind.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestToken_Text(t *testing.T) {
	buf := NewBuffer("SELECT 1;")
	tok := Token{Kind: DelimiterKind, Offset: 8, Length: 1}

	text, err := tok.Text(buf)
	require.NoError(t, err)
	assert.Equal(t, ";", text)
	assert.Equal(t, 9, tok.End())
	assert.True(t, tok.Contains(8))
	assert.False(t, tok.Contains(9))
}

func TestToken_TextOutOfRange(t *testing.T) {
	buf := NewBuffer("SELECT")
	_, err := Token{Offset: 4, Length: 10}.Text(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadLocation))
}

func TestBuffer_Char(t *testing.T) {
	buf := NewBuffer("ab")
	c, err := buf.Char(1)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), c)

	_, err = buf.Char(2)
	assert.True(t, errors.Is(err, ErrBadLocation))
	_, err = buf.Char(-1)
	assert.True(t, errors.Is(err, ErrBadLocation))
}

func TestBuffer_Lines(t *testing.T) {
	buf := NewBuffer("select 1\n\n  \nselect 2")

	assert.Equal(t, 0, buf.LineStart(3))
	assert.Equal(t, 8, buf.LineEnd(3))
	assert.Equal(t, 9, buf.LineStart(9))
	assert.Equal(t, 13, buf.LineStart(15))
	assert.Equal(t, buf.Len(), buf.LineEnd(15))

	assert.False(t, buf.IsBlankLine(0))
	assert.True(t, buf.IsBlankLine(9))
	assert.True(t, buf.IsBlankLine(11))
	assert.False(t, buf.IsBlankLine(13))

	n, err := buf.CountLineFeeds(0, buf.Len())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestFixLineFeeds(t *testing.T) {
	assert.Equal(t, "a\nb\nc", FixLineFeeds("a\r\nb\rc"))
	assert.Equal(t, "a\nb", FixLineFeeds("a\nb"))
}

func TestPosAt(t *testing.T) {
	buf := NewBuffer("select 1;\nselect 2;")
	assert.Equal(t, Pos{File: "x.sql", Line: 1, Col: 1}, PosAt("x.sql", buf, 0))
	assert.Equal(t, Pos{File: "x.sql", Line: 2, Col: 8}, PosAt("x.sql", buf, 17))
	assert.Equal(t, "x.sql:2:8", PosAt("x.sql", buf, 17).String())
}

func TestError_WithoutPos(t *testing.T) {
	e := Error{Pos: Pos{File: "a.sql", Line: 2, Col: 3}, Message: "oops"}
	assert.Equal(t, "a.sql:2:3 oops", e.Error())
	assert.Equal(t, Error{Message: "oops"}, e.WithoutPos())
}

func TestNewParameter(t *testing.T) {
	tests := []struct {
		text  string
		name  string
		named bool
	}{
		{":id", "id", true},
		{"?", "?", false},
		{":1", "1", false},
		{"$2", "2", false},
		{"${schema}", "schema", true},
		{"&var", "var", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p := NewParameter(0, tt.text, 5, len(tt.text), '?')
			assert.Equal(t, tt.name, p.Name)
			assert.Equal(t, tt.named, p.Named)
			assert.Equal(t, tt.text, p.Text)
		})
	}
}

func TestParameter_Chain(t *testing.T) {
	first := NewParameter(0, ":id", 0, 3, '?')
	second := NewParameter(1, ":id", 10, 3, '?')
	second.Previous = first

	assert.Equal(t, []*Parameter{second, first}, second.Chain())
}

func TestControlCommand(t *testing.T) {
	cmd := &ControlCommand{Text: "@set x = 1", CommandID: "set", Span: Span{Offset: 4, Length: 10}}
	assert.Equal(t, "x = 1", cmd.Parameters())
	assert.False(t, cmd.IsEmpty())
	assert.Equal(t, Span{Offset: 4, Length: 10}, cmd.Bounds())
	assert.Equal(t, 14, cmd.Bounds().End())

	empty := &ControlCommand{Text: "@"}
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "", empty.Parameters())
}

func TestStatement_ScriptElement(t *testing.T) {
	var el ScriptElement = &Statement{Span: Span{Offset: 1, Length: 8}, Text: "SELECT 1"}
	assert.Equal(t, "SELECT 1", el.Source())
	assert.Equal(t, 9, el.Bounds().End())
	assert.False(t, el.(*Statement).HasParameters())
}
