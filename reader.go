// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/creachadair/jsonh/ast"
	"github.com/creachadair/jsonh/internal/runes"
)

// A Reader reads JSONH tokens and elements from an input stream. A Reader is
// exhausted by a single top-level element read and is not safe for
// concurrent use; it owns its input source for its lifetime.
type Reader struct {
	rc   *runes.Cursor
	opts Options
}

// NewReader constructs a Reader that consumes input from r with the given
// options. A nil opts is equivalent to the zero Options. If r is not an
// io.ReadSeeker, its contents are buffered in memory: the grammar requires
// byte-exact rewind for speculative reads.
func NewReader(r io.Reader, opts *Options) (*Reader, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		rs = bytes.NewReader(data)
	}
	var o Options
	if opts != nil {
		o = *opts
	}
	return &Reader{rc: runes.New(rs), opts: o}, nil
}

// NewReaderString constructs a Reader that consumes input from s with the
// given options. A nil opts is equivalent to the zero Options.
func NewReaderString(s string, opts *Options) *Reader {
	var o Options
	if opts != nil {
		o = *opts
	}
	return &Reader{rc: runes.NewString(s), opts: o}
}

// errStop terminates a token walk early without reporting an error to the
// caller. It never escapes this package.
var errStop = errors.New("stop reading")

// An emitFunc receives each token as it is decided. Returning an error stops
// the walk.
type emitFunc func(Token) error

// ReadElement returns an iterator over the tokens of exactly one JSONH
// element, including any leading comments. The sequence yields each token
// with a nil error; if the input is malformed, the final pair carries the
// error and the sequence ends. Abandoning the sequence early leaves the
// cursor positioned after the last consumed token.
func (r *Reader) ReadElement() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		stopped := false
		err := r.readElement(func(tok Token) error {
			if !yield(tok, nil) {
				stopped = true
				return errStop
			}
			return nil
		})
		if err != nil && err != errStop && !stopped {
			yield(Token{}, err)
		}
	}
}

// ParseElement reads one element and folds its tokens into a value tree.
// If ParseSingleElement is set in the options, anything other than comments
// and whitespace remaining after the element is reported as an error
// wrapping ErrExtraInput.
func (r *Reader) ParseElement() (ast.Value, error) {
	b := &treeBuilder{r: r, maxDepth: r.opts.maxDepth()}
	err := r.readElement(func(tok Token) error {
		done, err := b.handle(tok)
		if err != nil {
			return err
		}
		if done {
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return nil, err
	}
	if !b.done {
		return nil, r.failf(ErrUnexpectedEnd, "incomplete element")
	}
	if r.opts.ParseSingleElement {
		if err := r.readCommentsAndWhitespace(discardToken); err != nil {
			return nil, err
		}
		if next, ok := r.rc.Peek(); ok {
			return nil, r.failf(ErrExtraInput, "expected single element, got %q", next)
		}
	}
	return b.root, nil
}

// FindPropertyValue scans tokens until it sees a property at nesting depth 1
// whose name equals name, and reports whether one was found. On success the
// cursor is left positioned to parse that property's value; ParseElement can
// then be called to read it without building the enclosing tree. On failure
// the input is exhausted.
func (r *Reader) FindPropertyValue(name string) bool {
	depth := 0
	found := false
	r.readElement(func(tok Token) error {
		switch tok.Kind {
		case StartObject, StartArray:
			depth++
		case EndObject, EndArray:
			depth--
		case PropertyName:
			if depth == 1 && tok.Text == name {
				found = true
				return errStop
			}
		}
		return nil
	})
	return found
}

func discardToken(Token) error { return nil }

// readElement reads one complete element, emitting its tokens in order.
func (r *Reader) readElement(emit emitFunc) error {
	if err := r.readCommentsAndWhitespace(emit); err != nil {
		return err
	}
	next, ok := r.rc.Peek()
	if !ok {
		return r.failf(ErrUnexpectedEnd, "expected element, got end of input")
	}
	switch next {
	case "{":
		return r.readBracedObject(emit)
	case "[":
		return r.readArray(emit)
	default:
		return r.readPrimitiveElement(emit)
	}
}

func (r *Reader) readBracedObject(emit emitFunc) error {
	r.rc.Read() // consume "{"
	if err := emit(Token{Kind: StartObject}); err != nil {
		return err
	}
	for {
		if err := r.readCommentsAndWhitespace(emit); err != nil {
			return err
		}
		next, ok := r.rc.Peek()
		if !ok {
			if r.opts.IncompleteInputs {
				return emit(Token{Kind: EndObject})
			}
			return r.failf(ErrUnexpectedEnd, "expected `}` to close object, got end of input")
		}
		if next == "}" {
			r.rc.Read()
			return emit(Token{Kind: EndObject})
		}
		if err := r.readProperty(emit); err != nil {
			return err
		}
		if err := r.readCommentsAndWhitespace(emit); err != nil {
			return err
		}
		r.rc.ReadOne(",") // property separators are optional
	}
}

func (r *Reader) readArray(emit emitFunc) error {
	r.rc.Read() // consume "["
	if err := emit(Token{Kind: StartArray}); err != nil {
		return err
	}
	for {
		if err := r.readCommentsAndWhitespace(emit); err != nil {
			return err
		}
		next, ok := r.rc.Peek()
		if !ok {
			if r.opts.IncompleteInputs {
				return emit(Token{Kind: EndArray})
			}
			return r.failf(ErrUnexpectedEnd, "expected `]` to close array, got end of input")
		}
		if next == "]" {
			r.rc.Read()
			return emit(Token{Kind: EndArray})
		}
		if err := r.readElement(emit); err != nil {
			return err
		}
		if err := r.readCommentsAndWhitespace(emit); err != nil {
			return err
		}
		r.rc.ReadOne(",") // element separators are optional
	}
}

// readPrimitiveElement reads a single primitive token. A string may turn out
// to be the first property name of a braceless object: the reader looks
// ahead through comments and whitespace for a ":", and rewinds exactly to
// the end of the string if none is found. The lookahead keeps no state
// outside the cursor position, so a failed speculation is fully undone.
func (r *Reader) readPrimitiveElement(emit emitFunc) error {
	tok, err := r.readPrimitive()
	if err != nil {
		return err
	}
	if tok.Kind == String {
		pos := r.rc.Pos()
		buffered, err := r.collectCommentsAndWhitespace()
		if err == nil && r.rc.ReadOne(":") {
			return r.readBracelessObject(emit, tok.Text, buffered)
		}
		r.rc.Seek(pos)
	}
	return emit(tok)
}

// readBracelessObject reads an object whose properties are not wrapped in
// braces. The first property name has already been consumed along with its
// ":" and any interleaved comments. The object is terminated by the end of
// the input or, when nested in an array, by the enclosing "]".
func (r *Reader) readBracelessObject(emit emitFunc, first string, buffered []Token) error {
	if err := emit(Token{Kind: StartObject}); err != nil {
		return err
	}
	for _, tok := range buffered {
		if err := emit(tok); err != nil {
			return err
		}
	}
	if err := emit(Token{Kind: PropertyName, Text: first}); err != nil {
		return err
	}
	if err := r.readElement(emit); err != nil {
		return err
	}
	for {
		if err := r.readCommentsAndWhitespace(emit); err != nil {
			return err
		}
		r.rc.ReadOne(",") // property separators are optional
		if err := r.readCommentsAndWhitespace(emit); err != nil {
			return err
		}
		next, ok := r.rc.Peek()
		if !ok || next == "]" {
			return emit(Token{Kind: EndObject})
		}
		if err := r.readProperty(emit); err != nil {
			return err
		}
	}
}

// readProperty reads one name: value pair. The name is a quoted or
// quoteless string; comments may separate it from the ":".
func (r *Reader) readProperty(emit emitFunc) error {
	name, err := r.readString()
	if err != nil {
		return err
	}
	buffered, err := r.collectCommentsAndWhitespace()
	if err != nil {
		return err
	}
	if !r.rc.ReadOne(":") {
		return r.failf(ErrMissingDelimiter, "expected `:` after property name")
	}
	for _, tok := range buffered {
		if err := emit(tok); err != nil {
			return err
		}
	}
	if err := emit(Token{Kind: PropertyName, Text: name.Text}); err != nil {
		return err
	}
	return r.readElement(emit)
}

// readPrimitive reads one string, number, or named-literal token.
func (r *Reader) readPrimitive() (Token, error) {
	next, ok := r.rc.Peek()
	if !ok {
		return Token{}, r.failf(ErrUnexpectedEnd, "expected element, got end of input")
	}
	switch {
	case next == `"` || next == "'":
		return r.readQuotedString(false)
	case next == "@" && r.opts.version() >= V2:
		r.rc.Read()
		if q, ok := r.rc.Peek(); !ok || q != `"` && q != "'" {
			return Token{}, r.failf(ErrUnexpectedChar, "expected string after `@`")
		}
		return r.readQuotedString(true)
	case next == "-" || next == "+" || isASCIIDigit(next):
		return r.readNumberOrQuoteless()
	default:
		return r.readQuotelessString("")
	}
}

// readString reads a quoted or quoteless string token, as used for property
// names and as the first step of the primitive path.
func (r *Reader) readString() (Token, error) {
	next, ok := r.rc.Peek()
	if !ok {
		return Token{}, r.failf(ErrUnexpectedEnd, "expected property name, got end of input")
	}
	if next == `"` || next == "'" {
		return r.readQuotedString(false)
	}
	if next == "@" && r.opts.version() >= V2 {
		r.rc.Read()
		if q, ok := r.rc.Peek(); !ok || q != `"` && q != "'" {
			return Token{}, r.failf(ErrUnexpectedChar, "expected string after `@`")
		}
		return r.readQuotedString(true)
	}
	return r.readQuotelessString("")
}

// readCommentsAndWhitespace skips whitespace and emits any comment tokens
// until the next rune is neither.
func (r *Reader) readCommentsAndWhitespace(emit emitFunc) error {
	for {
		r.skipWhitespace()
		next, ok := r.rc.Peek()
		if !ok || next != "#" && next != "/" {
			return nil
		}
		tok, err := r.readComment()
		if err != nil {
			return err
		}
		if err := emit(tok); err != nil {
			return err
		}
	}
}

// collectCommentsAndWhitespace is readCommentsAndWhitespace into a slice,
// used where comment tokens cannot be emitted until a lookahead resolves.
func (r *Reader) collectCommentsAndWhitespace() ([]Token, error) {
	var toks []Token
	err := r.readCommentsAndWhitespace(func(tok Token) error {
		toks = append(toks, tok)
		return nil
	})
	return toks, err
}

func (r *Reader) skipWhitespace() {
	for {
		next, ok := r.rc.Peek()
		if !ok || !isWhitespace(next) {
			return
		}
		r.rc.Read()
	}
}

// readComment reads a line comment ("#..." or "//...", terminated by a
// newline or end of input) or a block comment ("/*...*/"; under V2 also the
// nested form "/=*...*=/" with a matching count of "=" signs). The token
// text is the comment interior without its markers.
func (r *Reader) readComment() (Token, error) {
	block := false
	nesting := 0
	if !r.rc.ReadOne("#") {
		r.rc.Read() // consume "/"
		switch {
		case r.rc.ReadOne("/"):
			// line comment
		default:
			if r.opts.version() >= V2 {
				for r.rc.ReadOne("=") {
					nesting++
				}
			}
			if !r.rc.ReadOne("*") {
				return Token{}, r.failf(ErrUnexpectedChar, "unexpected `/`")
			}
			block = true
		}
	}

	var sb strings.Builder
	for {
		next, ok := r.rc.Read()
		if block {
			if !ok {
				return Token{}, r.failf(ErrUnexpectedEnd, "expected end of block comment, got end of input")
			}
			if next == "*" && r.readBlockCommentClose(nesting) {
				return Token{Kind: Comment, Text: sb.String()}, nil
			}
		} else if !ok || isNewline(next) {
			return Token{Kind: Comment, Text: sb.String()}, nil
		}
		sb.WriteString(next)
	}
}

// readBlockCommentClose consumes "="*nesting followed by "/" after a "*",
// restoring the cursor if the full closing run is not present.
func (r *Reader) readBlockCommentClose(nesting int) bool {
	pos := r.rc.Pos()
	for range nesting {
		if !r.rc.ReadOne("=") {
			r.rc.Seek(pos)
			return false
		}
	}
	if !r.rc.ReadOne("/") {
		r.rc.Seek(pos)
		return false
	}
	return true
}

// reservedRunes terminate quoteless strings and numbers. V2 additionally
// reserves "@".
const reservedRunes = "\\,:[]{}/#\"'"

func (r *Reader) isReserved(s string) bool {
	c, _ := utf8.DecodeRuneInString(s)
	if c == '@' && r.opts.version() >= V2 {
		return true
	}
	return strings.ContainsRune(reservedRunes, c)
}

func isWhitespace(s string) bool {
	c, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(c)
}

func isNewline(s string) bool {
	c, _ := utf8.DecodeRuneInString(s)
	return isNewlineRune(c)
}

func isNewlineRune(c rune) bool {
	return c == '\n' || c == '\r' || c == '\u2028' || c == '\u2029'
}

func isASCIIDigit(s string) bool { return len(s) == 1 && s[0] >= '0' && s[0] <= '9' }
