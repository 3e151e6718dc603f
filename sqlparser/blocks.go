package sqlparser

// FrameKind tells what opened a block frame.
type FrameKind int

const (
	// BracketFrame is a plain frame: a bracket pair or a BEGIN ... END block.
	BracketFrame FrameKind = iota
	// HeaderFrame is opened by a block header such as DECLARE or FUNCTION
	// and becomes the body frame at the following BEGIN.
	HeaderFrame
	// ToggleFrame is opened and closed by the same literal, e.g. $$.
	ToggleFrame
)

type Frame struct {
	Kind     FrameKind
	IsHeader bool
}

// BlockTracker keeps the stack of open blocks while scanning one
// statement. Delimiters seen while a block is open do not end the
// statement. Closing tokens without a matching open are ignored.
type BlockTracker struct {
	stack         []Frame
	togglePattern string
}

func (b *BlockTracker) Push(kind FrameKind, isHeader bool) {
	b.stack = append(b.stack, Frame{Kind: kind, IsHeader: isHeader})
}

// Pop removes the top frame; ok is false when no block is open.
func (b *BlockTracker) Pop() (frame Frame, ok bool) {
	if len(b.stack) == 0 {
		return Frame{}, false
	}
	frame = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return frame, true
}

func (b *BlockTracker) Top() (Frame, bool) {
	if len(b.stack) == 0 {
		return Frame{}, false
	}
	return b.stack[len(b.stack)-1], true
}

func (b *BlockTracker) IsOpen() bool {
	return len(b.stack) > 0
}

func (b *BlockTracker) Depth() int {
	return len(b.stack)
}

// OpenBracket handles '(', '{' and '['.
func (b *BlockTracker) OpenBracket() {
	b.Push(BracketFrame, false)
}

// CloseBracket handles ')', '}' and ']'.
func (b *BlockTracker) CloseBracket() {
	b.Pop()
}

// Header handles DECLARE, FUNCTION and other block headers.
func (b *BlockTracker) Header() {
	b.Push(HeaderFrame, true)
}

// Begin turns an open header into its body, or opens a new block.
func (b *BlockTracker) Begin() {
	if top := len(b.stack) - 1; top >= 0 && b.stack[top].IsHeader {
		b.stack[top].IsHeader = false
		return
	}
	b.Push(BracketFrame, false)
}

// End closes the innermost block. A stray END, as in CASE ... END inside
// a plain query, leaves the stack alone.
func (b *BlockTracker) End() {
	b.Pop()
}

// Toggle handles a toggle literal such as $$ or $body$. The first toggle
// opens a frame when no block is open; the same literal closes it when
// the toggle frame is the only open frame. Toggles are tracked one level
// deep: anything else is reported as not handled and leaves the stack
// unchanged.
func (b *BlockTracker) Toggle(pattern string) (handled bool) {
	switch {
	case len(b.stack) == 1 && b.stack[0].Kind == ToggleFrame && pattern == b.togglePattern:
		b.stack = b.stack[:0]
		b.togglePattern = ""
		return true
	case len(b.stack) == 0 && b.togglePattern == "":
		b.Push(ToggleFrame, false)
		b.togglePattern = pattern
		return true
	default:
		return false
	}
}

// TogglePattern returns the literal of the open toggle block, or "".
func (b *BlockTracker) TogglePattern() string {
	return b.togglePattern
}
