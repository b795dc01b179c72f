// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package runes implements a bidirectional UTF-8 rune cursor over a seekable
// byte source.
package runes

import (
	"io"
	"strings"
)

// A Cursor decodes UTF-8 sequences on demand from a seekable byte source,
// forward and backward. Each rune is returned as its raw UTF-8 byte span.
//
// The cursor does not validate strict UTF-8: a sequence truncated at the end
// of the input is returned short rather than reported as an error, and a
// stray continuation byte is returned as a single-byte span. Callers only
// ever compare decoded spans against known delimiters, for which best-effort
// decoding is sufficient.
type Cursor struct {
	rs  io.ReadSeeker
	pos int64
}

// New constructs a cursor reading from rs, which must be positioned at the
// start of its input.
func New(rs io.ReadSeeker) *Cursor { return &Cursor{rs: rs} }

// NewString constructs a cursor reading from the contents of s.
func NewString(s string) *Cursor { return New(strings.NewReader(s)) }

// Pos reports the current byte offset of c in its input.
func (c *Cursor) Pos() int64 { return c.pos }

// Seek repositions c to the given absolute byte offset. Seeking to an offset
// recorded by Pos exactly restores the cursor, which is how speculative
// reads are undone.
func (c *Cursor) Seek(pos int64) {
	if _, err := c.rs.Seek(pos, io.SeekStart); err == nil {
		c.pos = pos
	}
}

// Read returns the raw UTF-8 encoding of the next rune and advances the
// cursor past it. It reports false at the end of the input.
func (c *Cursor) Read() (string, bool) {
	var buf [4]byte
	if !c.readByte(&buf[0]) {
		return "", false
	}

	// Single-byte fast path.
	if buf[0] < 0x80 {
		return string(buf[:1]), true
	}

	n := sequenceLength(buf[0])
	got := 1
	for got < n {
		if !c.readByte(&buf[got]) {
			break // truncated sequence at end of input
		}
		got++
	}
	return string(buf[:got]), true
}

// Peek returns the raw UTF-8 encoding of the next rune without advancing the
// cursor. It reports false at the end of the input.
func (c *Cursor) Peek() (string, bool) {
	pos := c.pos
	next, ok := c.Read()
	c.Seek(pos)
	return next, ok
}

// ReadOne consumes the next rune and reports true if it equals option;
// otherwise the cursor is left unmoved.
func (c *Cursor) ReadOne(option string) bool {
	if next, ok := c.Peek(); ok && next == option {
		c.Read()
		return true
	}
	return false
}

// ReadAny consumes and returns the next rune if it equals one of options;
// otherwise the cursor is left unmoved and ReadAny reports false.
func (c *Cursor) ReadAny(options ...string) (string, bool) {
	next, ok := c.Peek()
	if !ok {
		return "", false
	}
	for _, option := range options {
		if next == option {
			c.Read()
			return next, true
		}
	}
	return "", false
}

// ReadReverse returns the raw UTF-8 encoding of the rune immediately before
// the cursor and moves the cursor to its first byte. It reports false at the
// start of the input. The JSONH reader is forward-only and does not
// currently call the reverse methods.
func (c *Cursor) ReadReverse() (string, bool) {
	var buf [4]byte
	n := 0
	for n < len(buf) {
		if c.pos == 0 {
			break
		}
		c.Seek(c.pos - 1)
		var b byte
		if !c.readByte(&b) {
			return "", false
		}
		c.Seek(c.pos - 1)

		buf[n] = b
		n++
		if !isContinuation(b) {
			break
		}
	}
	if n == 0 {
		return "", false
	}

	// Bytes were collected back to front.
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf[:n]), true
}

// PeekReverse is ReadReverse without moving the cursor.
func (c *Cursor) PeekReverse() (string, bool) {
	pos := c.pos
	prev, ok := c.ReadReverse()
	c.Seek(pos)
	return prev, ok
}

func (c *Cursor) readByte(p *byte) bool {
	var buf [1]byte
	n, _ := c.rs.Read(buf[:])
	if n == 0 {
		return false
	}
	*p = buf[0]
	c.pos++
	return true
}

// sequenceLength reports the byte length of a UTF-8 sequence from the high
// bits of its leading byte. Invalid leading bytes map to 1 so the cursor
// always makes forward progress.
func sequenceLength(first byte) int {
	switch {
	case first&0xE0 == 0xC0:
		return 2
	case first&0xF0 == 0xE0:
		return 3
	case first&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func isContinuation(b byte) bool { return b&0xC0 == 0x80 }
