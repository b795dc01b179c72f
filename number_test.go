// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/jsonh"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"25", 25},
		{"-3.9", -3.9},
		{"+4", 4},
		{"1e3", 1000},
		{"2E+2", 200},
		{"+5.2e3.0", 5200},
		{"1.2e3.4", 1.2 * math.Pow(10, 3.4)},

		// Underscore separators are stripped wherever they appear.
		{"1_000_000", 1000000},
		{"100__000", 100000},

		// Base prefixes.
		{"0x10", 16},
		{"0XFF", 255},
		{"0b101", 5},
		{"0o17", 15},
		{"-0x10", -16},

		// In hexadecimal, "e" is a digit unless a sign follows it.
		{"0x5e3", 1507},
		{"0x5e+3", 5000},
		{"0x5e-1", 0.5},

		// Fractional parts in non-decimal bases, leading zeros preserved.
		{"0b101.01", 5.01},
		{"0x1.8", 1.8},
		{"0o7.07", 7.07},
	}

	for _, test := range tests {
		got, err := jsonh.ParseNumber(test.input)
		if err != nil {
			t.Errorf("ParseNumber(%q): unexpected error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseNumber(%q): got %v, want %v", test.input, got, test.want)
		}
	}
}

func TestParseNumber_errors(t *testing.T) {
	tests := []string{
		"",      // no digits
		"abc",   // not a number at all
		"0b102", // digit outside the base
		"0o18",  // likewise
		"0x",    // prefix without digits
		"12g4",
	}
	for _, input := range tests {
		got, err := jsonh.ParseNumber(input)
		if !errors.Is(err, jsonh.ErrMalformedNumber) {
			t.Errorf("ParseNumber(%q): got %v, %v; want %v", input, got, err, jsonh.ErrMalformedNumber)
		}
	}
}
