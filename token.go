// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh

// Kind is the type of a lexical token in the JSONH grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid      Kind = iota // invalid token
	StartObject              // start of object "{"
	EndObject                // end of object "}"
	StartArray               // start of array "["
	EndArray                 // end of array "]"
	PropertyName             // object property name
	Comment                  // comment
	String                   // string
	Number                   // number
	True                     // constant: true
	False                    // constant: false
	Null                     // constant: null
)

var kindStr = [...]string{
	Invalid:      "invalid token",
	StartObject:  `"{"`,
	EndObject:    `"}"`,
	StartArray:   `"["`,
	EndArray:     `"]"`,
	PropertyName: "property name",
	Comment:      "comment",
	String:       "string",
	Number:       "number",
	True:         "true",
	False:        "false",
	Null:         "null",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Token is a single lexical unit read from JSONH source. Text holds the
// decoded payload: the contents of a string or comment, the lexeme of a
// number, the name of a property, or the word of a named literal. It is
// empty for the structural kinds.
type Token struct {
	Kind Kind
	Text string
}
