// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/creachadair/jsonh/ast"
)

// Parse parses and returns a single JSONH element from r, and verifies that
// only comments and whitespace follow it.
func Parse(r io.Reader) (ast.Value, error) {
	opts := Options{ParseSingleElement: true}
	rd, err := NewReader(r, &opts)
	if err != nil {
		return nil, err
	}
	return rd.ParseElement()
}

// ParseString parses and returns a single JSONH element from s, and
// verifies that only comments and whitespace follow it.
func ParseString(s string) (ast.Value, error) {
	opts := Options{ParseSingleElement: true}
	return NewReaderString(s, &opts).ParseElement()
}

// MustParse is ParseString for static inputs. It panics if s does not parse.
func MustParse(s string) ast.Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("jsonh: parse: %v", err))
	}
	return v
}

// Unmarshal parses data as JSONH and stores the result into v using the
// conventions of encoding/json. The typed decoding itself is delegated to
// the standard JSON package: the parsed tree is rendered as plain JSON
// first, which JSONH values always admit.
func Unmarshal(data []byte, v any) error {
	val, err := ParseString(string(data))
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val.JSON()), v)
}
