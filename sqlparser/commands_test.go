package sqlparser

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/sqlscript/sqlparser/dialect"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

func TestCommandRegistry(t *testing.T) {
	r := NewCommandRegistry()
	assert.True(t, r.Has("set"))
	assert.True(t, r.Has("SET"))
	assert.False(t, r.Has("connect"))

	r.Register(Command{ID: "Connect", Description: "switch connection"})
	c, ok := r.Get("connect")
	require.True(t, ok)
	assert.Equal(t, "connect", c.ID)

	assert.Equal(t, []string{"connect", "delimiter", "echo", "export", "include", "set"}, r.IDs())
}

func TestCommandRegistry_Suggest(t *testing.T) {
	r := NewCommandRegistry()
	assert.Equal(t, "echo", r.Suggest("ech"))
	assert.Equal(t, "", r.Suggest("zzz"))
	assert.Equal(t, "", r.Suggest(""))
}

func TestParser_CustomCommands(t *testing.T) {
	text := "@connect prod\nSELECT 1;"

	logger, _ := test.NewNullLogger()
	p := NewParser(DefaultConfig(dialect.Generic), WithLogger(logger))
	elements := p.ParseAll(text, 0, len(text), true, false, false)
	require.Len(t, elements, 1)
	assert.Equal(t, "@connect prod\nSELECT 1", elements[0].Source())

	p = NewParser(DefaultConfig(dialect.Generic),
		WithLogger(logger),
		WithCommands(NewCommandRegistry(Command{ID: "connect"})),
	)
	elements = p.ParseAll(text, 0, len(text), true, false, false)
	require.Len(t, elements, 2)
	require.IsType(t, &sqldocument.ControlCommand{}, elements[0])
	command := elements[0].(*sqldocument.ControlCommand)
	assert.Equal(t, "connect", command.CommandID)
	assert.Equal(t, "prod", command.Parameters())
	assert.Equal(t, "SELECT 1", elements[1].Source())
}

func TestParser_UnknownCommandSuggestion(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	p := NewParser(DefaultConfig(dialect.Generic), WithLogger(logger))

	text := "@ech hi\nSELECT 1"
	element := p.ParseNext(text, 0, len(text), 0, true, false)
	assert.Equal(t, &sqldocument.Statement{Span: sqldocument.Span{Offset: 0, Length: len(text)}, Text: text}, element)

	var entry *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "unknown control command, treating as SQL" {
			entry = e
		}
	}
	require.NotNil(t, entry)
	assert.Equal(t, "ech", entry.Data["command"])
	assert.Equal(t, "echo", entry.Data["suggestion"])

	t.Run("inside a statement", func(t *testing.T) {
		text := "SELECT\n@total AS t\nFROM x;\n@echo done"
		assert.Equal(t, []string{"SELECT\n@total AS t\nFROM x", "@echo done"}, statementTexts(p.ParseAll(text, 0, len(text), true, false, false)))
	})

	t.Run("mysql variable assignment", func(t *testing.T) {
		p := NewParser(DefaultConfig(dialect.MySQL), WithLogger(logger))
		text := "@total := 0;\nSELECT @total;"
		assert.Equal(t, []string{"@total := 0", "SELECT @total"}, statementTexts(p.ParseAll(text, 0, len(text), true, false, false)))
	})
}
