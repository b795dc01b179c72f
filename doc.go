// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jsonh implements a reader for JSONH, a human-friendly superset of
// JSON that adds comments, quoteless strings, optional braces on objects,
// multi-quoted strings with automatic indentation stripping, and numbers
// with base prefixes, digit separators, and signed fractional exponents.
//
// # Reading tokens
//
// A Reader consumes one JSONH element from its input. ReadElement returns a
// lazy sequence of tokens; the sequence ends at the first error:
//
//	r := jsonh.NewReaderString(input, nil)
//	for tok, err := range r.ReadElement() {
//	   if err != nil {
//	      log.Fatalf("Read failed: %v", err)
//	   }
//	   log.Printf("Next token: %v %q", tok.Kind, tok.Text)
//	}
//
// # Parsing values
//
// ParseElement folds the token sequence into a generic value tree of type
// ast.Value. Objects preserve insertion order and duplicate keys overwrite:
//
//	v, err := jsonh.ParseString(`greeting: "hello"`)
//
// Syntax errors have concrete type [*SyntaxError] and wrap one of the
// package's sentinel errors, so errors.Is can classify a failure.
//
// # Finding a value
//
// FindPropertyValue scans the token stream for a top-level property without
// building a tree, leaving the reader positioned to parse its value:
//
//	r := jsonh.NewReaderString(input, nil)
//	if r.FindPropertyValue("version") {
//	   v, err := r.ParseElement()
//	   ...
//	}
package jsonh
