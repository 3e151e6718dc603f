package sqldocument

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrBadLocation is returned when a read falls outside the buffer.
var ErrBadLocation = errors.New("bad location")

// Buffer is a read-only view of script text addressed by byte offsets.
// It is never modified while a scan is in progress.
type Buffer struct {
	text string
}

func NewBuffer(text string) Buffer {
	return Buffer{text: text}
}

func (b Buffer) Len() int {
	return len(b.text)
}

func (b Buffer) String() string {
	return b.text
}

// Get returns the text of [offset, offset+length).
func (b Buffer) Get(offset, length int) (string, error) {
	if offset < 0 || length < 0 || offset+length > len(b.text) {
		return "", errors.Wrapf(ErrBadLocation, "offset %d length %d (buffer length %d)", offset, length, len(b.text))
	}
	return b.text[offset : offset+length], nil
}

// Char returns the byte at offset.
func (b Buffer) Char(offset int) (byte, error) {
	if offset < 0 || offset >= len(b.text) {
		return 0, errors.Wrapf(ErrBadLocation, "offset %d (buffer length %d)", offset, len(b.text))
	}
	return b.text[offset], nil
}

// From returns the text from offset to the end of the buffer, or ""
// when offset is out of range.
func (b Buffer) From(offset int) string {
	if offset < 0 || offset > len(b.text) {
		return ""
	}
	return b.text[offset:]
}

// CountLineFeeds counts '\n' in [offset, offset+length).
func (b Buffer) CountLineFeeds(offset, length int) (int, error) {
	s, err := b.Get(offset, length)
	if err != nil {
		return 0, err
	}
	return strings.Count(s, "\n"), nil
}

// LineStart returns the offset of the first byte of the line containing offset.
func (b Buffer) LineStart(offset int) int {
	if offset > len(b.text) {
		offset = len(b.text)
	}
	if offset <= 0 {
		return 0
	}
	return strings.LastIndexByte(b.text[:offset], '\n') + 1
}

// LineEnd returns the offset of the line feed ending the line containing
// offset, or the buffer length for the last line.
func (b Buffer) LineEnd(offset int) int {
	if offset >= len(b.text) {
		return len(b.text)
	}
	if offset < 0 {
		offset = 0
	}
	i := strings.IndexByte(b.text[offset:], '\n')
	if i == -1 {
		return len(b.text)
	}
	return offset + i
}

// IsBlankLine reports whether the line containing offset holds only whitespace.
func (b Buffer) IsBlankLine(offset int) bool {
	start := b.LineStart(offset)
	return strings.TrimSpace(b.text[start:b.LineEnd(start)]) == ""
}

// FixLineFeeds normalises \r\n and lone \r line endings to \n.
func FixLineFeeds(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
