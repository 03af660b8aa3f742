package source

import "fmt"

// Span is a half-open byte range [Begin, End) into a Buffer.
type Span struct {
	Begin uint32 `json:"begin"`
	End   uint32 `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return int(s.End) - int(s.Begin)
}

// Location points at a position in a source file, for error reporting.
type Location struct {
	File   string
	Line   int // 1-based
	Column int // 1-based, in bytes
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Buffer holds the full text of one analyzed unit. It is immutable after
// creation and safe for concurrent reads.
type Buffer struct {
	file string
	text []byte
}

// NewBuffer wraps the text of one source file. The buffer keeps its own copy
// so later mutation of the input slice cannot be observed.
func NewBuffer(file string, text []byte) *Buffer {
	owned := make([]byte, len(text))
	copy(owned, text)
	return &Buffer{file: file, text: owned}
}

func (b *Buffer) File() string { return b.file }

func (b *Buffer) Len() int { return len(b.text) }

// At returns the byte at the given offset. Offsets at or past the end of the
// buffer read as 0, which simplifies lookahead loops.
func (b *Buffer) At(offset uint32) byte {
	if int(offset) >= len(b.text) {
		return 0
	}
	return b.text[offset]
}

// Slice returns the text covered by sp. The span must satisfy
// 0 <= Begin <= End <= Len.
func (b *Buffer) Slice(sp Span) (string, error) {
	if sp.Begin > sp.End || int(sp.End) > len(b.text) {
		return "", fmt.Errorf("span [%d, %d) out of range for %q (%d bytes)", sp.Begin, sp.End, b.file, len(b.text))
	}
	return string(b.text[sp.Begin:sp.End]), nil
}

// LocationAt maps a byte offset to a file/line/column location.
func (b *Buffer) LocationAt(offset uint32) Location {
	end := int(offset)
	if end > len(b.text) {
		end = len(b.text)
	}
	line, col := 1, 1
	for _, c := range b.text[:end] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Location{File: b.file, Line: line, Column: col}
}
