// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"go4.org/mem"

	"github.com/creachadair/jsonh/internal/escape"
)

// Quote encodes s as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(s string) string {
	enc := escape.Quote(mem.S(s))
	buf := make([]byte, 0, len(enc)+2)
	buf = append(buf, '"')
	buf = append(buf, enc...)
	buf = append(buf, '"')
	return string(buf)
}
