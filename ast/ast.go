// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the generic value tree produced by parsing JSONH
// source: null, Boolean, string, and number leaves, arrays, and objects
// whose members preserve insertion order.
package ast

import (
	"math"
	"strconv"
	"strings"
)

// A Value is an arbitrary parsed value. The concrete type is one of Null,
// Bool, String, Number, Array, or Object.
type Value interface {
	// JSON renders the value as compact standard JSON.
	JSON() string
}

// An Object is an ordered collection of key-value members. Members preserve
// the order in which they were inserted.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(String(m.Key).JSON())
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Array is a sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A String is a string value. Its contents are fully decoded; quoting and
// escaping belong to the encoded forms only.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return Quote(string(s)) }

// A Number is a numeric value.
type Number float64

// JSON satisfies the Value interface. Formatting follows encoding/json:
// fixed notation unless the magnitude requires an exponent.
func (n Number) JSON() string {
	f := float64(n)
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		if i := len(s) - 4; i >= 0 && s[i] == 'e' && s[i+1] == '-' && s[i+2] == '0' {
			s = s[:i+2] + s[i+3:]
		}
	}
	return s
}

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Null represents the null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }
