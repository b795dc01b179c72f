// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Base digit alphabets. The alphabet length is the base; input digits are
// case-folded before lookup.
const (
	decimalDigits = "0123456789"
	hexDigits     = "0123456789abcdef"
	binaryDigits  = "01"
	octalDigits   = "01234567"
)

// readNumberOrQuoteless reads a numeric-looking token. A lexeme that fails
// the number grammar partway, or that is followed by further content on the
// same line, degrades into a quoteless string beginning with the partially
// consumed text; numbers never produce a hard error here.
func (r *Reader) readNumberOrQuoteless() (Token, error) {
	text, ok := r.lexNumber()
	if !ok {
		return r.readQuotelessString(text)
	}

	// A complete number must be followed by the end of its context: end of
	// input, a newline, or a reserved character, possibly after trailing
	// whitespace. Whitespace followed by more content makes the whole run a
	// quoteless string ("4 5" is the string "4 5").
	next, ok := r.rc.Peek()
	if ok && !isNewline(next) && !r.isReserved(next) {
		if !isWhitespace(next) {
			return r.readQuotelessString(text)
		}
		pos := r.rc.Pos()
		r.skipWhitespace()
		after, ok := r.rc.Peek()
		r.rc.Seek(pos)
		if ok && !isNewline(after) && !r.isReserved(after) {
			return r.readQuotelessString(text)
		}
	}
	return Token{Kind: Number, Text: text}, nil
}

// lexNumber consumes a number lexeme: optional sign, optional base prefix
// after a bare 0, digits with at most one "." per part, "_" separators, and
// an optional exponent applying the same grammar again. It reports false
// when the consumed text is not a well-formed number; the caller then
// degrades it into a quoteless string.
func (r *Reader) lexNumber() (string, bool) {
	var sb strings.Builder
	if s, ok := r.rc.ReadAny("-", "+"); ok {
		sb.WriteString(s)
	}

	// Per-part state, reset when the exponent begins.
	var hasDigit, hasDot, lastUnderscore, inExponent bool

	baseDigits := decimalDigits
	if r.rc.ReadOne("0") {
		sb.WriteString("0")
		if p, ok := r.rc.ReadAny("x", "X", "b", "B", "o", "O"); ok {
			sb.WriteString(p)
			switch p {
			case "x", "X":
				baseDigits = hexDigits
			case "b", "B":
				baseDigits = binaryDigits
			case "o", "O":
				baseDigits = octalDigits
			}
		} else {
			hasDigit = true // a bare leading 0
		}
	}
	hex := baseDigits == hexDigits

scan:
	for {
		next, ok := r.rc.Peek()
		if !ok {
			break
		}
		switch {
		case isBaseDigit(next, baseDigits):
			// In hexadecimal an "e" is only an exponent marker when a sign
			// immediately follows; otherwise it is a digit, handled below.
			if hex && (next == "e" || next == "E") {
				pos := r.rc.Pos()
				r.rc.Read()
				if sign, ok := r.rc.ReadAny("+", "-"); ok {
					if inExponent || !hasDigit || lastUnderscore {
						r.rc.Seek(pos)
						return sb.String(), false
					}
					sb.WriteString(next)
					sb.WriteString(sign)
					hasDigit, hasDot, lastUnderscore, inExponent = false, false, false, true
					continue
				}
				r.rc.Seek(pos)
			}
			r.rc.Read()
			sb.WriteString(next)
			hasDigit, lastUnderscore = true, false
		case next == "_":
			if !hasDigit {
				return sb.String(), false // leading separator
			}
			r.rc.Read()
			sb.WriteString(next)
			lastUnderscore = true
		case next == ".":
			if hasDot || lastUnderscore {
				return sb.String(), false
			}
			r.rc.Read()
			sb.WriteString(next)
			hasDot, lastUnderscore = true, false
		case !hex && (next == "e" || next == "E"):
			if inExponent || !hasDigit || lastUnderscore {
				return sb.String(), false
			}
			r.rc.Read()
			sb.WriteString(next)
			if sign, ok := r.rc.ReadAny("+", "-"); ok {
				sb.WriteString(sign)
			}
			hasDigit, hasDot, lastUnderscore, inExponent = false, false, false, true
		default:
			break scan
		}
	}
	if !hasDigit || lastUnderscore {
		return sb.String(), false
	}
	return sb.String(), true
}

func isBaseDigit(s string, baseDigits string) bool {
	if len(s) != 1 {
		return false
	}
	b := s[0]
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	return strings.IndexByte(baseDigits, b) >= 0
}

// ParseNumber converts a JSONH number lexeme into a base-10 real value.
// For example, "+5.2e3.0" yields 5200. The lexeme's sign and base prefix
// are removed, underscores are stripped, and the remainder is split on the
// base-appropriate exponent marker into mantissa and exponent, each parsed
// by the same fractional-number algorithm; the result is
// mantissa * 10**exponent.
//
// ParseNumber trusts its caller to supply a well-formed lexeme as produced
// by the reader; its own validation is limited to rejecting digits outside
// the base alphabet.
func ParseNumber(lexeme string) (float64, error) {
	digits := lexeme
	sign := 1.0
	if strings.HasPrefix(digits, "-") {
		sign = -1.0
		digits = digits[1:]
	} else if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}

	baseDigits := decimalDigits
	if len(digits) >= 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			baseDigits = hexDigits
			digits = digits[2:]
		case 'b', 'B':
			baseDigits = binaryDigits
			digits = digits[2:]
		case 'o', 'O':
			baseDigits = octalDigits
			digits = digits[2:]
		}
	}

	digits = strings.ReplaceAll(digits, "_", "")

	v, err := parseFractionalWithExponent(digits, baseDigits)
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}

// parseFractionalWithExponent splits digits on the first exponent marker
// appropriate to the base and combines the recursively parsed parts. In
// hexadecimal the marker must be followed by an explicit sign, since a bare
// "e" is a digit.
func parseFractionalWithExponent(digits, baseDigits string) (float64, error) {
	expIndex := -1
	for i := 0; i < len(digits); i++ {
		if digits[i] != 'e' && digits[i] != 'E' {
			continue
		}
		if baseDigits == hexDigits {
			if i+1 < len(digits) && (digits[i+1] == '+' || digits[i+1] == '-') {
				expIndex = i
				break
			}
			continue
		}
		expIndex = i
		break
	}
	if expIndex < 0 {
		return parseFractional(digits, baseDigits)
	}

	mantissa, err := parseFractional(digits[:expIndex], baseDigits)
	if err != nil {
		return 0, err
	}
	exponent, err := parseFractional(digits[expIndex+1:], baseDigits)
	if err != nil {
		return 0, err
	}
	return mantissa * math.Pow(10, exponent), nil
}

// parseFractional converts a fractional number such as "123.45" from the
// given base to a base-10 real. The whole and fractional digit runs are
// converted separately and recombined as a decimal string, preserving the
// fractional part's leading zeros so its magnitude is kept. Decimal input
// short-circuits to the native conversion.
func parseFractional(digits, baseDigits string) (float64, error) {
	if baseDigits == decimalDigits {
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, digits)
		}
		return v, nil
	}

	sign := 1.0
	if strings.HasPrefix(digits, "-") {
		sign = -1.0
		digits = digits[1:]
	} else if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}

	whole, frac, hasDot := strings.Cut(digits, ".")
	if whole == "" && hasDot {
		whole = "0" // ".5" has an implied zero whole part
	}
	wholeInt, err := parseWhole(whole, baseDigits)
	if err != nil {
		return 0, err
	}
	if !hasDot || frac == "" {
		v, _ := new(big.Float).SetInt(wholeInt).Float64()
		return sign * v, nil
	}

	fracInt, err := parseWhole(frac, baseDigits)
	if err != nil {
		return 0, err
	}
	leadZeros := 0
	for leadZeros < len(frac) && frac[leadZeros] == '0' {
		leadZeros++
	}
	combined := wholeInt.String() + "." + strings.Repeat("0", leadZeros) + fracInt.String()
	v, err := strconv.ParseFloat(combined, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, digits)
	}
	return sign * v, nil
}

// parseWhole converts a run of digits in the given base to an integer by
// column accumulation. The accumulator is arbitrary precision, so long
// digit runs in non-decimal bases cannot overflow.
func parseWhole(digits, baseDigits string) (*big.Int, error) {
	if digits == "" {
		return nil, fmt.Errorf("%w: empty digit run", ErrMalformedNumber)
	}
	base := big.NewInt(int64(len(baseDigits)))
	v := new(big.Int)
	for i := 0; i < len(digits); i++ {
		b := digits[i]
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		d := strings.IndexByte(baseDigits, b)
		if d < 0 {
			return nil, fmt.Errorf("%w: invalid digit %q", ErrMalformedNumber, digits[i])
		}
		v.Mul(v, base)
		v.Add(v, big.NewInt(int64(d)))
	}
	return v, nil
}
