// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/creachadair/jsonh"
	"github.com/creachadair/jsonh/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		input string
		want  string // compact JSON
	}{
		// Plain JSON passes through unchanged.
		{`{"a":[1,2.5,true,null],"b":"x"}`, `{"a":[1,2.5,true,null],"b":"x"}`},
		{`[[],{},""]`, `[[],{},""]`},

		// Quoteless strings and braceless objects.
		{"a: b\nc : d", `{"a":"b","c":"d"}`},
		{"[nulla, null b, null]", `["nulla","null b",null]`},
		{"key: [1, 2]\nother: yes", `{"key":[1,2],"other":"yes"}`},

		// Comments are not part of the element.
		{"[1 # h\n2]", `[1,2]`},
		{"/* lead */ {a: 1} // trail", `{"a":1}`},

		// Duplicate properties: the last value wins, position is kept.
		{"{a:1, b:2, a:3}", `{"a":3,"b":2}`},

		// Multi-quoted strings with dedenting.
		{"\"\"\"\n    line one\n    line two\n    \"\"\"", `"line one\nline two"`},
		{"'''\n  a\n    b\n  '''", `"a\n  b"`},

		// Escape sequences.
		{`"tab\there"`, `"tab\there"`},
		{`"A\x42"`, `"AB"`},
		{`"😀"`, `"😀"`},               // non-ASCII passes through
		{`"a\` + "\n" + `b"`, `"ab"`}, // escaped newline is elided

		// A UTF-16 surrogate pair of escapes joins into one code point,
		// whichever escape form spells each half.
		{`"\uD83D\uDE00"`, `"😀"`},
		{`"\uD83D\U0000DE00"`, `"😀"`},
		{`"\U0000D83D\uDE00"`, `"😀"`},

		// Numbers in assorted bases.
		{"[0x10, 0b101, 0o17, -12, +4]", `[16,5,15,-12,4]`},
		{"1_000_000", `1000000`},
		{"0x5e+3", `5000`},
	}

	for _, test := range tests {
		v, err := jsonh.ParseString(test.input)
		if err != nil {
			t.Errorf("Input %#q: unexpected error: %v", test.input, err)
			continue
		}
		if got := v.JSON(); got != test.want {
			t.Errorf("Input %#q: got %s, want %s", test.input, got, test.want)
		}
	}
}

func TestParse(t *testing.T) {
	v, err := jsonh.Parse(strings.NewReader(`{list: [a, b, c]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := ast.Object{
		{Key: "list", Value: ast.Array{ast.String("a"), ast.String("b"), ast.String("c")}},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Parse result: (-want, +got)\n%s", diff)
	}
}

func TestMustParse(t *testing.T) {
	v := jsonh.MustParse(`{ok: true}`)
	if got, want := v.JSON(), `{"ok":true}`; got != want {
		t.Errorf("MustParse: got %s, want %s", got, want)
	}
	mtest.MustPanic(t, func() { jsonh.MustParse("{") })
}

func TestUnmarshal(t *testing.T) {
	type config struct {
		Name  string `json:"name"`
		Port  int    `json:"port"`
		Tags  []string
		Debug bool
	}
	const input = `
# Server settings
name: web-1
port: 0x1f90
Tags: [alpha, beta]
Debug: true
`
	var got config
	if err := jsonh.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	want := config{Name: "web-1", Port: 8080, Tags: []string{"alpha", "beta"}, Debug: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unmarshal result: (-want, +got)\n%s", diff)
	}
}

// JSONH admits JSON with comments and trailing commas, so a document that
// hujson can standardize must parse to the same value either way.
func TestStandardizeAgreement(t *testing.T) {
	const input = `{
  // enabled services
  "svc": ["dns", "http",],
  "limits": {"rps": 100, "burst": 250},
  /* reserved */
  "extra": null,
}`
	std, err := hujson.Standardize([]byte(input))
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}

	var fromStd, fromJSONH any
	if err := json.Unmarshal(std, &fromStd); err != nil {
		t.Fatalf("Unmarshal standardized: %v", err)
	}
	if err := jsonh.Unmarshal([]byte(input), &fromJSONH); err != nil {
		t.Fatalf("Unmarshal JSONH: %v", err)
	}
	if diff := cmp.Diff(fromStd, fromJSONH); diff != "" {
		t.Errorf("Values disagree: (-hujson, +jsonh)\n%s", diff)
	}
}
