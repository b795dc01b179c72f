// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh

// Version selects the major version of the JSONH grammar.
type Version int

const (
	// V1 is the base grammar.
	V1 Version = 1

	// V2 extends V1 with verbatim ("@"-prefixed) strings, nested block
	// comments, and "@" as a reserved character.
	V2 Version = 2

	// Latest is the most recent grammar version.
	Latest = V2
)

// Options control how a Reader interprets its input. The zero value is ready
// for use and selects the latest grammar version.
type Options struct {
	// Version selects the grammar version. Zero means Latest.
	Version Version

	// IncompleteInputs tolerates end of input in place of a closing "}" or
	// "]", closing any open containers implicitly. Useful for consuming
	// truncated streams, such as model output cut off mid-element.
	IncompleteInputs bool

	// ParseSingleElement reports an error from ParseElement if anything other
	// than whitespace and comments follows the first element.
	ParseSingleElement bool

	// MaxDepth bounds container nesting during ParseElement. Zero means the
	// default of 64.
	MaxDepth int
}

// DefaultMaxDepth is the nesting limit applied when Options.MaxDepth is 0.
const DefaultMaxDepth = 64

func (o *Options) version() Version {
	if o.Version == 0 {
		return Latest
	}
	return o.Version
}

func (o *Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
