// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the kinds of syntax failure. A *SyntaxError
// wraps exactly one of these, so errors.Is can classify a failed parse.
var (
	ErrUnexpectedEnd    = errors.New("unexpected end of input")
	ErrUnexpectedChar   = errors.New("unexpected character")
	ErrMissingDelimiter = errors.New("missing delimiter")
	ErrMalformedNumber  = errors.New("malformed number")
	ErrInvalidEscape    = errors.New("invalid escape sequence")
	ErrEmptyQuoteless   = errors.New("empty quoteless string")
	ErrMaxDepth         = errors.New("exceeded max depth")
	ErrExtraInput       = errors.New("unexpected input after element")
)

// SyntaxError is the concrete type of errors reported by the reader.
type SyntaxError struct {
	Offset  int64  // byte offset in the input where the error was detected
	Message string

	err error // the sentinel kind
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", s.Message, s.Offset)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

func (r *Reader) failf(kind error, msg string, args ...any) error {
	return &SyntaxError{Offset: r.rc.Pos(), Message: fmt.Sprintf(msg, args...), err: kind}
}
