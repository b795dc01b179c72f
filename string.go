// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go4.org/mem"
)

// readQuotedString reads a string opened by a run of identical quote
// characters. One quote is an ordinary string; exactly two is the empty
// string; three or more open a multi-quoted string whose closing delimiter
// is a run of the same length and whose contents are dedented. In a
// verbatim string (V2, "@"-prefixed) backslashes are copied literally.
func (r *Reader) readQuotedString(verbatim bool) (Token, error) {
	quote, _ := r.rc.Read()
	open := 1
	for r.rc.ReadOne(quote) {
		open++
	}
	if open == 2 {
		return Token{Kind: String, Text: ""}, nil
	}

	var sb strings.Builder
	run := 0
	for {
		next, ok := r.rc.Read()
		if !ok {
			return Token{}, r.failf(ErrUnexpectedEnd, "expected end of string, got end of input")
		}
		if next == quote {
			run++
			if run == open {
				break
			}
			continue
		}
		// A shorter quote run is literal content.
		for range run {
			sb.WriteString(quote)
		}
		run = 0
		if next == `\` && !verbatim {
			if err := r.readEscape(&sb); err != nil {
				return Token{}, err
			}
			continue
		}
		sb.WriteString(next)
	}

	text := sb.String()
	if open > 1 {
		text = dedent(text)
	}
	return Token{Kind: String, Text: text}, nil
}

// readQuotelessString reads a bare-word string terminated by an unescaped
// reserved character or newline, trimming surrounding whitespace. prefix is
// prepended to the result; the number reader passes its partially consumed
// lexeme here when a numeric-looking token degrades into a string. If no
// escape sequence was consumed and the trimmed text is exactly a bare
// null, true, or false, the corresponding literal token is produced.
func (r *Reader) readQuotelessString(prefix string) (Token, error) {
	var sb strings.Builder
	sb.WriteString(prefix)
	escaped := false
	for {
		next, ok := r.rc.Peek()
		if !ok || isNewline(next) {
			break
		}
		// A backslash is reserved, but within a quoteless string it starts
		// an escape rather than terminating the token.
		if next == `\` {
			r.rc.Read()
			if err := r.readEscape(&sb); err != nil {
				return Token{}, err
			}
			escaped = true
			continue
		}
		if r.isReserved(next) {
			break
		}
		r.rc.Read()
		sb.WriteString(next)
	}

	text := strings.TrimFunc(sb.String(), unicode.IsSpace)
	if text == "" {
		return Token{}, r.failf(ErrEmptyQuoteless, "empty quoteless string")
	}
	if !escaped {
		switch got := mem.S(text); {
		case got.Equal(mem.S("null")):
			return Token{Kind: Null, Text: text}, nil
		case got.Equal(mem.S("true")):
			return Token{Kind: True, Text: text}, nil
		case got.Equal(mem.S("false")):
			return Token{Kind: False, Text: text}, nil
		}
	}
	return Token{Kind: String, Text: text}, nil
}

// readEscape decodes one escape sequence after a consumed backslash,
// appending the result to sb. An escaped literal newline is elided, which
// continues a string across lines; an escaped "\r" also absorbs a following
// "\n". Any character without a defined meaning is copied through.
func (r *Reader) readEscape(sb *strings.Builder) error {
	next, ok := r.rc.Read()
	if !ok {
		return r.failf(ErrUnexpectedEnd, "expected escape character, got end of input")
	}
	switch next {
	case "b":
		sb.WriteByte('\b')
	case "f":
		sb.WriteByte('\f')
	case "n":
		sb.WriteByte('\n')
	case "r":
		sb.WriteByte('\r')
	case "t":
		sb.WriteByte('\t')
	case "v":
		sb.WriteByte('\v')
	case "0":
		sb.WriteByte(0)
	case "a":
		sb.WriteByte('\a')
	case "e":
		sb.WriteByte(0x1B)
	case "x":
		return r.readHexEscape(sb, 2)
	case "u":
		return r.readHexEscape(sb, 4)
	case "U":
		return r.readHexEscape(sb, 8)
	default:
		if isNewline(next) {
			if next == "\r" {
				r.rc.ReadOne("\n") // normalize CRLF
			}
			return nil // escaped newline is elided
		}
		sb.WriteString(next)
	}
	return nil
}

// readHexEscape decodes a hex escape of the given digit count. A high
// UTF-16 surrogate must be immediately followed by another hex escape whose
// value is the low surrogate; the pair is combined into a single code
// point. The speculative read of the second escape is rewound before
// reporting an unpaired surrogate, so the error offset names the first.
func (r *Reader) readHexEscape(sb *strings.Builder, digits int) error {
	v, err := r.readHexValue(digits)
	if err != nil {
		return err
	}
	switch {
	case v > unicode.MaxRune:
		return r.failf(ErrInvalidEscape, "escaped code point %#x out of range", v)
	case isLowSurrogate(v):
		return r.failf(ErrInvalidEscape, "unexpected low surrogate %#x", v)
	case isHighSurrogate(v):
		pos := r.rc.Pos()
		if low, ok := r.readLowSurrogate(); ok {
			sb.WriteRune(0x10000 + (rune(v)-0xD800)<<10 + (low - 0xDC00))
			return nil
		}
		r.rc.Seek(pos)
		return r.failf(ErrInvalidEscape, "unpaired high surrogate %#x", v)
	}
	sb.WriteRune(rune(v))
	return nil
}

// readLowSurrogate speculatively reads a following \x, \u, or \U escape and
// reports whether it decoded to a low surrogate. The caller rewinds on
// failure.
func (r *Reader) readLowSurrogate() (rune, bool) {
	if !r.rc.ReadOne(`\`) {
		return 0, false
	}
	var digits int
	switch kind, _ := r.rc.Read(); kind {
	case "x":
		digits = 2
	case "u":
		digits = 4
	case "U":
		digits = 8
	default:
		return 0, false
	}
	v, err := r.readHexValue(digits)
	if err != nil || !isLowSurrogate(v) {
		return 0, false
	}
	return rune(v), true
}

func (r *Reader) readHexValue(digits int) (int64, error) {
	var v int64
	for range digits {
		next, ok := r.rc.Read()
		if !ok {
			return 0, r.failf(ErrUnexpectedEnd, "expected hex digit, got end of input")
		}
		d := hexDigitValue(next)
		if d < 0 {
			return 0, r.failf(ErrInvalidEscape, "not a hex digit: %q", next)
		}
		v = v<<4 | int64(d)
	}
	return v, nil
}

func hexDigitValue(s string) int {
	if len(s) != 1 {
		return -1
	}
	switch b := s[0]; {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b - 'a' + 10)
	case b >= 'A' && b <= 'F':
		return int(b - 'A' + 10)
	}
	return -1
}

func isHighSurrogate(v int64) bool { return v >= 0xD800 && v <= 0xDBFF }
func isLowSurrogate(v int64) bool  { return v >= 0xDC00 && v <= 0xDFFF }

// dedent strips block indentation from a multi-quoted string. It runs five
// early-exiting passes on rune boundaries: detect a leading whitespace+
// newline run, detect a trailing newline+whitespace run of width W, remove
// the trailing run, remove the leading run, then strip up to W leading
// whitespace characters from every remaining line. A buffer not shaped like
// an indented block is returned untouched.
func dedent(s string) string {
	// Pass 1: the buffer must begin with optional non-newline whitespace
	// followed by a newline.
	leadEnd := -1
	for i := 0; i < len(s); {
		c, n := utf8.DecodeRuneInString(s[i:])
		if isNewlineRune(c) {
			leadEnd = i + n
			if c == '\r' && strings.HasPrefix(s[leadEnd:], "\n") {
				leadEnd++
			}
			break
		}
		if !unicode.IsSpace(c) {
			return s
		}
		i += n
	}
	if leadEnd < 0 {
		return s
	}

	// Pass 2: the buffer must end with a newline followed by a run of W
	// non-newline whitespace characters.
	tail := len(s)
	width := 0
	for tail > leadEnd {
		c, n := utf8.DecodeLastRuneInString(s[:tail])
		if isNewlineRune(c) || !unicode.IsSpace(c) {
			break
		}
		tail -= n
		width++
	}
	c, n := utf8.DecodeLastRuneInString(s[:tail])
	if tail <= leadEnd || !isNewlineRune(c) {
		return s
	}
	tail -= n
	if c == '\n' && strings.HasSuffix(s[:tail], "\r") {
		tail--
	}

	// Passes 3 and 4: drop the trailing and leading runs.
	body := s[leadEnd:tail]

	// Pass 5: strip up to width leading whitespace characters per line. A
	// shorter whitespace run before content is still fully stripped.
	var sb strings.Builder
	sb.Grow(len(body))
	stripped := 0
	atStart := true
	for i := 0; i < len(body); {
		c, n := utf8.DecodeRuneInString(body[i:])
		i += n
		switch {
		case isNewlineRune(c):
			sb.WriteRune(c)
			stripped = 0
			atStart = true
		case atStart && stripped < width && unicode.IsSpace(c):
			stripped++
		default:
			sb.WriteRune(c)
			atStart = false
		}
	}
	return sb.String()
}
