// Package msgbuf provides a growable text buffer with an explicit append
// cursor, used to assemble protocol command lines piece by piece.
//
// The storage is kept NUL-terminated at the cursor after every operation,
// and Truncate moves the cursor back without erasing the bytes past it.
package msgbuf

import "fmt"

// Buffer is an auto-expanding byte buffer. The zero value is an empty
// buffer ready to use; storage is allocated on the first write.
type Buffer struct {
	data   []byte // one byte longer than size when allocated
	size   int    // capacity available to writes
	cursor int    // offset of the next write
}

// New returns an empty buffer. No storage is allocated until the first
// write.
func New() *Buffer {
	return &Buffer{}
}

// From returns a buffer seeded with a copy of s. The capacity equals the
// seed length with no extra headroom and the cursor sits at the end, so
// the next write grows the buffer.
func From(s string) *Buffer {
	buf := &Buffer{
		data:   make([]byte, len(s)+1),
		size:   len(s),
		cursor: len(s),
	}
	copy(buf.data, s)
	return buf
}

// grow makes room for n more bytes plus the terminator at the cursor.
// The capacity never shrinks: it increases by 128 bytes or by the exact
// amount the write needs, whichever is larger.
func (buf *Buffer) grow(n int) {
	remaining := buf.size - buf.cursor - 1
	if n <= remaining {
		return
	}
	inc := n + 1 - remaining
	if inc < 128 {
		inc = 128
	}
	buf.size += inc
	data := make([]byte, buf.size+1)
	copy(data, buf.data)
	buf.data = data
}

// Append appends b at the cursor, expanding the buffer if necessary.
// It is a no-op on a nil buffer or empty input.
func (buf *Buffer) Append(b []byte) {
	if buf == nil || len(b) == 0 {
		return
	}
	buf.grow(len(b))
	copy(buf.data[buf.cursor:], b)
	buf.cursor += len(b)
	buf.data[buf.cursor] = 0
}

// AppendString appends s at the cursor.
func (buf *Buffer) AppendString(s string) {
	if buf == nil || len(s) == 0 {
		return
	}
	buf.grow(len(s))
	copy(buf.data[buf.cursor:], s)
	buf.cursor += len(s)
	buf.data[buf.cursor] = 0
}

// AppendByte appends a single byte at the cursor.
func (buf *Buffer) AppendByte(c byte) {
	if buf == nil {
		return
	}
	buf.grow(1)
	buf.data[buf.cursor] = c
	buf.cursor++
	buf.data[buf.cursor] = 0
}

// Printf formats according to a fmt format specifier, appends the result
// at the cursor and returns the number of bytes written. When nothing is
// written the cursor does not move.
func (buf *Buffer) Printf(format string, args ...interface{}) int {
	if buf == nil {
		return 0
	}
	s := fmt.Sprintf(format, args...)
	if len(s) == 0 {
		return 0
	}
	buf.grow(len(s))
	copy(buf.data[buf.cursor:], s)
	buf.cursor += len(s)
	buf.data[buf.cursor] = 0
	return len(s)
}

// Truncate moves the cursor back to off and writes the terminator there.
// Storage is neither released nor reallocated, and the bytes past off+1
// stay in place. Truncate panics if off is negative or beyond the cursor.
func (buf *Buffer) Truncate(off int) {
	if buf == nil {
		return
	}
	if off < 0 || off > buf.cursor {
		panic("msgbuf: truncation out of range")
	}
	buf.cursor = off
	if buf.data != nil {
		buf.data[off] = 0
	}
}

// Release drops the storage and resets the buffer to its zero state.
// Releasing an already-released buffer is a no-op.
func (buf *Buffer) Release() {
	if buf == nil || buf.data == nil {
		return
	}
	buf.data = nil
	buf.size = 0
	buf.cursor = 0
}

// Len returns the number of bytes written so far.
func (buf *Buffer) Len() int {
	if buf == nil {
		return 0
	}
	return buf.cursor
}

// Cap returns the buffer capacity. The underlying storage holds one
// extra byte for the terminator.
func (buf *Buffer) Cap() int {
	if buf == nil {
		return 0
	}
	return buf.size
}

// String returns the written bytes as a string.
func (buf *Buffer) String() string {
	if buf == nil {
		return ""
	}
	return string(buf.data[:buf.cursor])
}

// Bytes returns the written bytes. The slice is only valid until the
// next mutation of the buffer.
func (buf *Buffer) Bytes() []byte {
	if buf == nil {
		return nil
	}
	return buf.data[:buf.cursor]
}
