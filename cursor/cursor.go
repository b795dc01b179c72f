// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a parsed JSONH
// value.
package cursor

import (
	"fmt"

	"github.com/creachadair/jsonh/ast"
)

// Path traverses a sequential path into the structure of v where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its value.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
type Cursor struct {
	org ast.Value
	stk []ast.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor. If the cursor is on an
// object member, the member's value is reported.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from
// the current value, where path elements are strings (denoting object
// member names) or integers (denoting offsets into arrays or objects).
// Negative integers count backward from the end (-1 is last). If the path
// cannot be completely consumed, traversal stops and an error is recorded;
// use Err to recover it. Down returns c to permit chaining.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(ast.Object)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, t)
			}
			m := obj.Find(t)
			if m == nil {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(m.Value)

		case int:
			switch e := cur.(type) {
			case ast.Array:
				i, ok := fixBound(len(e), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, len(e))
				}
				cur = c.push(e[i])
			case ast.Object:
				i, ok := fixBound(len(e), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, len(e))
				}
				cur = c.push(e[i].Value)
			default:
				return c.setErrorf("cannot traverse %T with %v", cur, t)
			}

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v ast.Value) ast.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
