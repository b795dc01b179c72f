// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jsonh"
	"github.com/google/go-cmp/cmp"
)

func readAll(t *testing.T, r *jsonh.Reader) []jsonh.Token {
	t.Helper()
	var got []jsonh.Token
	for tok, err := range r.ReadElement() {
		if err != nil {
			t.Fatalf("ReadElement failed: %v", err)
		}
		got = append(got, tok)
	}
	return got
}

func TestReadElement(t *testing.T) {
	tok := func(k jsonh.Kind, text string) jsonh.Token { return jsonh.Token{Kind: k, Text: text} }
	mark := func(k jsonh.Kind) jsonh.Token { return jsonh.Token{Kind: k} }

	tests := []struct {
		input string
		want  []jsonh.Token
	}{
		// Constants
		{"true", []jsonh.Token{tok(jsonh.True, "true")}},
		{"  false ", []jsonh.Token{tok(jsonh.False, "false")}},
		{"null", []jsonh.Token{tok(jsonh.Null, "null")}},

		// Quoteless strings and literal disambiguation
		{"hello world", []jsonh.Token{tok(jsonh.String, "hello world")}},
		{"nulla", []jsonh.Token{tok(jsonh.String, "nulla")}},
		{`nul\l`, []jsonh.Token{tok(jsonh.String, "null")}}, // escape defeats the literal

		// Quoted strings
		{`"a b"`, []jsonh.Token{tok(jsonh.String, "a b")}},
		{`'a b'`, []jsonh.Token{tok(jsonh.String, "a b")}},
		{`""`, []jsonh.Token{tok(jsonh.String, "")}},
		{`''`, []jsonh.Token{tok(jsonh.String, "")}},
		{`"""a"b"""`, []jsonh.Token{tok(jsonh.String, `a"b`)}},

		// Numbers
		{"25", []jsonh.Token{tok(jsonh.Number, "25")}},
		{"-3.9", []jsonh.Token{tok(jsonh.Number, "-3.9")}},
		{"0x5e3", []jsonh.Token{tok(jsonh.Number, "0x5e3")}},
		{"100__000", []jsonh.Token{tok(jsonh.Number, "100__000")}},

		// Numbers degrading into quoteless strings
		{"4 5", []jsonh.Token{tok(jsonh.String, "4 5")}},
		{"12abc", []jsonh.Token{tok(jsonh.String, "12abc")}},
		{"1_", []jsonh.Token{tok(jsonh.String, "1_")}},

		// Comments
		{"# note\n1", []jsonh.Token{tok(jsonh.Comment, " note"), tok(jsonh.Number, "1")}},
		{"// note\n1", []jsonh.Token{tok(jsonh.Comment, " note"), tok(jsonh.Number, "1")}},
		{"/* note */1", []jsonh.Token{tok(jsonh.Comment, " note "), tok(jsonh.Number, "1")}},

		// Objects
		{"{}", []jsonh.Token{mark(jsonh.StartObject), mark(jsonh.EndObject)}},
		{`{"a": 1}`, []jsonh.Token{
			mark(jsonh.StartObject), tok(jsonh.PropertyName, "a"), tok(jsonh.Number, "1"),
			mark(jsonh.EndObject),
		}},
		{"{a: 1, b: [x, y], c: {d: e}}", []jsonh.Token{
			mark(jsonh.StartObject),
			tok(jsonh.PropertyName, "a"), tok(jsonh.Number, "1"),
			tok(jsonh.PropertyName, "b"),
			mark(jsonh.StartArray), tok(jsonh.String, "x"), tok(jsonh.String, "y"), mark(jsonh.EndArray),
			tok(jsonh.PropertyName, "c"),
			mark(jsonh.StartObject), tok(jsonh.PropertyName, "d"), tok(jsonh.String, "e"), mark(jsonh.EndObject),
			mark(jsonh.EndObject),
		}},
		{"{a:1,}", []jsonh.Token{ // trailing comma
			mark(jsonh.StartObject), tok(jsonh.PropertyName, "a"), tok(jsonh.Number, "1"),
			mark(jsonh.EndObject),
		}},

		// Arrays
		{"[]", []jsonh.Token{mark(jsonh.StartArray), mark(jsonh.EndArray)}},
		{"[1\n2]", []jsonh.Token{ // commas are optional
			mark(jsonh.StartArray), tok(jsonh.Number, "1"), tok(jsonh.Number, "2"), mark(jsonh.EndArray),
		}},
		{"[1 2]", []jsonh.Token{ // space-joined runs degrade to one string
			mark(jsonh.StartArray), tok(jsonh.String, "1 2"), mark(jsonh.EndArray),
		}},
		{"[1 # h\n2]", []jsonh.Token{
			mark(jsonh.StartArray), tok(jsonh.Number, "1"), tok(jsonh.Comment, " h"),
			tok(jsonh.Number, "2"), mark(jsonh.EndArray),
		}},

		// Braceless objects
		{"a: b\nc : d", []jsonh.Token{
			mark(jsonh.StartObject),
			tok(jsonh.PropertyName, "a"), tok(jsonh.String, "b"),
			tok(jsonh.PropertyName, "c"), tok(jsonh.String, "d"),
			mark(jsonh.EndObject),
		}},
		{`"key": value`, []jsonh.Token{
			mark(jsonh.StartObject),
			tok(jsonh.PropertyName, "key"), tok(jsonh.String, "value"),
			mark(jsonh.EndObject),
		}},
		{"a /*x*/: 1", []jsonh.Token{
			mark(jsonh.StartObject), tok(jsonh.Comment, "x"),
			tok(jsonh.PropertyName, "a"), tok(jsonh.Number, "1"),
			mark(jsonh.EndObject),
		}},
	}

	for _, test := range tests {
		r := jsonh.NewReaderString(test.input, nil)
		got := readAll(t, r)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestReadElement_comments(t *testing.T) {
	input := "\n// line comment\n/* block comment */\n/* multiline\nblock comment */\naaa"
	r := jsonh.NewReaderString(input, nil)
	got := readAll(t, r)
	want := []jsonh.Token{
		{Kind: jsonh.Comment, Text: " line comment"},
		{Kind: jsonh.Comment, Text: " block comment "},
		{Kind: jsonh.Comment, Text: " multiline\nblock comment "},
		{Kind: jsonh.String, Text: "aaa"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens: (-want, +got)\n%s", diff)
	}
}

func TestReadElement_nestedBlockComments(t *testing.T) {
	input := "/=* a */ inside *=/ 1"
	r := jsonh.NewReaderString(input, nil)
	got := readAll(t, r)
	want := []jsonh.Token{
		{Kind: jsonh.Comment, Text: " a */ inside "},
		{Kind: jsonh.Number, Text: "1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens: (-want, +got)\n%s", diff)
	}

	// The nested form is a V2 extension.
	r = jsonh.NewReaderString(input, &jsonh.Options{Version: jsonh.V1})
	var err error
	for _, err = range r.ReadElement() {
		if err != nil {
			break
		}
	}
	if !errors.Is(err, jsonh.ErrUnexpectedChar) {
		t.Errorf("V1 nested comment: got error %v, want %v", err, jsonh.ErrUnexpectedChar)
	}
}

func TestReadElement_errors(t *testing.T) {
	tests := []struct {
		input string
		opts  *jsonh.Options
		want  error
	}{
		{"", nil, jsonh.ErrUnexpectedEnd},
		{"   \n\t", nil, jsonh.ErrUnexpectedEnd},
		{"{a:1", nil, jsonh.ErrUnexpectedEnd},
		{"[1", nil, jsonh.ErrUnexpectedEnd},
		{`"abc`, nil, jsonh.ErrUnexpectedEnd},
		{`"ab\`, nil, jsonh.ErrUnexpectedEnd},
		{"/* open", nil, jsonh.ErrUnexpectedEnd},
		{"{a 1}", nil, jsonh.ErrMissingDelimiter},
		{"{,}", nil, jsonh.ErrEmptyQuoteless},
		{"[,1]", nil, jsonh.ErrEmptyQuoteless},
		{"/w", nil, jsonh.ErrUnexpectedChar},
		{`"\uZZZZ"`, nil, jsonh.ErrInvalidEscape},
		{`"\u12"`, nil, jsonh.ErrInvalidEscape}, // the closing quote is not a hex digit
		{`"\u1`, nil, jsonh.ErrUnexpectedEnd},
		{`"\UFFFFFFFF"`, nil, jsonh.ErrInvalidEscape},
		{`"\uD800x"`, nil, jsonh.ErrInvalidEscape},
		{`"\uDC00"`, nil, jsonh.ErrInvalidEscape},
		{"@x", nil, jsonh.ErrUnexpectedChar},
	}

	for _, test := range tests {
		r := jsonh.NewReaderString(test.input, test.opts)
		var got error
		for _, err := range r.ReadElement() {
			if err != nil {
				got = err
				break
			}
		}
		if got == nil {
			t.Errorf("Input %#q: no error, want %v", test.input, test.want)
			continue
		}
		if !errors.Is(got, test.want) {
			t.Errorf("Input %#q: got error %v, want %v", test.input, got, test.want)
		}
		var serr *jsonh.SyntaxError
		if !errors.As(got, &serr) {
			t.Errorf("Input %#q: error %v is not a *SyntaxError", test.input, got)
		}
	}
}

func TestIncompleteInputs(t *testing.T) {
	const input = "a: {"

	if _, err := jsonh.ParseString(input); !errors.Is(err, jsonh.ErrUnexpectedEnd) {
		t.Errorf("ParseString: got error %v, want %v", err, jsonh.ErrUnexpectedEnd)
	}

	r := jsonh.NewReaderString(input, &jsonh.Options{IncompleteInputs: true})
	v, err := r.ParseElement()
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}
	if got, want := v.JSON(), `{"a":{}}`; got != want {
		t.Errorf("ParseElement: got %s, want %s", got, want)
	}
}

func TestFindPropertyValue(t *testing.T) {
	r := jsonh.NewReaderString(`{"a":1,"b":{"c":2},"c":3}`, nil)
	if !r.FindPropertyValue("c") {
		t.Fatal("FindPropertyValue: property c not found")
	}
	v, err := r.ParseElement()
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}
	if got, want := v.JSON(), "3"; got != want {
		t.Errorf("Value after find: got %s, want %s", got, want)
	}
}

func TestFindPropertyValue_missing(t *testing.T) {
	r := jsonh.NewReaderString(`{"a":1,"b":2}`, nil)
	if r.FindPropertyValue("z") {
		t.Error("FindPropertyValue: unexpectedly found property z")
	}
}

func TestMaxDepth(t *testing.T) {
	deep := strings.Repeat("[", 80) + strings.Repeat("]", 80)
	if _, err := jsonh.ParseString(deep); !errors.Is(err, jsonh.ErrMaxDepth) {
		t.Errorf("Deep input: got error %v, want %v", err, jsonh.ErrMaxDepth)
	}

	r := jsonh.NewReaderString("[[[1]]]", &jsonh.Options{MaxDepth: 2})
	if _, err := r.ParseElement(); !errors.Is(err, jsonh.ErrMaxDepth) {
		t.Errorf("MaxDepth 2: got error %v, want %v", err, jsonh.ErrMaxDepth)
	}
}

func TestParseSingleElement(t *testing.T) {
	if _, err := jsonh.ParseString("[1] extra"); !errors.Is(err, jsonh.ErrExtraInput) {
		t.Errorf("Trailing content: got error %v, want %v", err, jsonh.ErrExtraInput)
	}
	if _, err := jsonh.ParseString("[1] # comment\n\n"); err != nil {
		t.Errorf("Trailing comment: unexpected error %v", err)
	}

	// Without the option, trailing content is left unread.
	r := jsonh.NewReaderString("1\n2", nil)
	v, err := r.ParseElement()
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}
	if got, want := v.JSON(), "1"; got != want {
		t.Errorf("First element: got %s, want %s", got, want)
	}
}

func TestVersions(t *testing.T) {
	// Verbatim strings are V2 only; under V1 the "@" is quoteless content.
	v, err := jsonh.ParseString(`@"C:\dir\file"`)
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}
	if got, want := v.JSON(), `"C:\\dir\\file"`; got != want {
		t.Errorf("Verbatim string: got %s, want %s", got, want)
	}

	r := jsonh.NewReaderString("user@host", &jsonh.Options{Version: jsonh.V1})
	v, err = r.ParseElement()
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}
	if got, want := v.JSON(), `"user@host"`; got != want {
		t.Errorf("V1 quoteless: got %s, want %s", got, want)
	}

	// Under V2 the "@" is reserved and terminates the quoteless string.
	r = jsonh.NewReaderString("user@host", nil)
	v, err = r.ParseElement()
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}
	if got, want := v.JSON(), `"user"`; got != want {
		t.Errorf("V2 quoteless: got %s, want %s", got, want)
	}
}
