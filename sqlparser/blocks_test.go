package sqlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockTracker_Brackets(t *testing.T) {
	var b BlockTracker
	assert.False(t, b.IsOpen())

	b.OpenBracket()
	b.OpenBracket()
	assert.Equal(t, 2, b.Depth())
	b.CloseBracket()
	b.CloseBracket()
	assert.False(t, b.IsOpen())

	// unmatched closing brackets are ignored
	b.CloseBracket()
	assert.False(t, b.IsOpen())
	_, ok := b.Pop()
	assert.False(t, ok)
}

func TestBlockTracker_HeaderBecomesBody(t *testing.T) {
	var b BlockTracker
	b.Header()
	top, ok := b.Top()
	require.True(t, ok)
	assert.Equal(t, Frame{Kind: HeaderFrame, IsHeader: true}, top)

	b.Begin()
	assert.Equal(t, 1, b.Depth(), "BEGIN after a header does not push")
	top, _ = b.Top()
	assert.False(t, top.IsHeader)

	// a nested BEGIN inside the body pushes
	b.Begin()
	assert.Equal(t, 2, b.Depth())
	b.End()
	b.End()
	assert.False(t, b.IsOpen())
}

func TestBlockTracker_StrayEnd(t *testing.T) {
	var b BlockTracker
	b.End()
	assert.False(t, b.IsOpen())

	b.Begin()
	b.End()
	b.End()
	assert.False(t, b.IsOpen())
}

func TestBlockTracker_Toggle(t *testing.T) {
	var b BlockTracker
	require.True(t, b.Toggle("$$"))
	assert.Equal(t, "$$", b.TogglePattern())
	top, _ := b.Top()
	assert.Equal(t, ToggleFrame, top.Kind)

	t.Run("different pattern inside a toggle is not tracked", func(t *testing.T) {
		assert.False(t, b.Toggle("$body$"))
		assert.Equal(t, 1, b.Depth())
	})

	t.Run("same pattern does not close while nested blocks are open", func(t *testing.T) {
		b.Begin()
		assert.False(t, b.Toggle("$$"))
		b.End()
	})

	require.True(t, b.Toggle("$$"))
	assert.False(t, b.IsOpen())
	assert.Equal(t, "", b.TogglePattern())

	t.Run("toggle inside a bracket is not tracked", func(t *testing.T) {
		var b BlockTracker
		b.OpenBracket()
		assert.False(t, b.Toggle("$$"))
		assert.Equal(t, 1, b.Depth())
	})
}

func TestBlockTracker_PushPop(t *testing.T) {
	var b BlockTracker
	b.Push(BracketFrame, false)
	b.Push(HeaderFrame, true)
	frame, ok := b.Pop()
	require.True(t, ok)
	assert.Equal(t, HeaderFrame, frame.Kind)
	frame, ok = b.Pop()
	require.True(t, ok)
	assert.Equal(t, BracketFrame, frame.Kind)
	_, ok = b.Top()
	assert.False(t, ok)
}
