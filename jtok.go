// Package jtok provides a single-pass, allocation-free JSON tokenizer.
// Created by dhawalhost (2025-09-14 09:22:41)
//
// The tokenizer splits a JSON document held in a caller-owned byte buffer
// into a flat sequence of tokens written into a caller-owned pool. It never
// copies input bytes, never builds a tree, and never allocates on its own:
// every byte of memory it touches belongs to the caller. A parse that runs
// out of pool space can be resumed with a larger pool without re-scanning
// the input processed so far.
package jtok

import "errors"

// Error definitions for tokenizer operations
var (
	ErrNoMemory = errors.New("jtok: not enough tokens in pool")
	ErrInvalid  = errors.New("jtok: invalid character in JSON input")
	ErrPartial  = errors.New("jtok: unexpected end of JSON input")
)

// None marks an index or byte offset that has not been assigned.
const None = -1

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindObject
	KindArray
	KindString
	KindPrimitive
)

// String returns the name of the kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindString:
		return "String"
	case KindPrimitive:
		return "Primitive"
	default:
		return "Undefined"
	}
}

// Token describes one lexical unit of the input buffer.
//
// Start and End are half-open byte offsets [Start, End) into the buffer the
// token was parsed from. For strings the span covers the content between the
// quotes; for primitives it covers the raw unquoted text; for objects and
// arrays it covers the whole value including the brackets.
//
// Size counts immediate children: key/value pairs for an object, elements
// for an array. For a string in key position, Size is 1 once the key has a
// value bound to it and 0 otherwise. Primitives always have Size 0.
//
// Parent holds the pool index of the enclosing container (or the key token
// a value is bound to) when the parser was built with ParentLinks; it is
// None otherwise.
type Token struct {
	Kind   Kind
	Start  int
	End    int
	Size   int
	Parent int
}

// HasParent reports whether a parent link was recorded for the token.
func (t Token) HasParent() bool { return t.Parent != None }

// Bytes returns the token's span of the source buffer. The returned slice
// aliases data; it is valid as long as the buffer is.
func (t Token) Bytes(data []byte) []byte { return data[t.Start:t.End] }

// EqualString reports whether the token is a string whose content equals s
// byte for byte. Escape sequences are not resolved.
func (t Token) EqualString(data []byte, s string) bool {
	return t.Kind == KindString && t.End-t.Start == len(s) &&
		string(data[t.Start:t.End]) == s
}

// Options selects the tokenizer's behavior variants.
type Options struct {
	// Strict restricts primitives to numbers, booleans and null, rejects
	// bytes that cannot start a value, and rejects structural or primitive
	// values in object key position.
	Strict bool

	// ParentLinks records each token's enclosing token index in
	// Token.Parent. Costs nothing but the writes; useful for consumers
	// that walk the token sequence as a tree.
	ParentLinks bool
}

// openScope is one entry of the parser's open-container stack. tok is the
// pool index of the container, or None during a dry run.
type openScope struct {
	tok  int
	kind Kind
}

// Parser is a resumable tokenizing cursor over a single input buffer.
//
// The zero value is not ready for use; construct with NewParser. A Parser
// is single-threaded: concurrent calls need one Parser each. After
// ErrNoMemory the Parser may be handed a larger pool (holding the same
// tokens written so far) to continue where it stopped; after any other
// error, or to tokenize a different buffer, call Reset first.
type Parser struct {
	opts  Options
	pos   int
	next  int
	super int
	stack []openScope
}

// NewParser returns a parser configured with opts, ready to Parse.
func NewParser(opts Options) *Parser {
	p := &Parser{
		opts:  opts,
		stack: make([]openScope, 0, 16),
	}
	p.Reset()
	return p
}

// Reset rewinds the parser to its initial state, keeping its options. Any
// in-flight resume position is discarded.
func (p *Parser) Reset() {
	p.pos = 0
	p.next = 0
	p.super = None
	p.stack = p.stack[:0]
}

// alloc claims the next free token slot. The claimed token is cleared so a
// reused pool cannot leak stale fields.
func (p *Parser) alloc(tokens []Token) (int, bool) {
	if p.next >= len(tokens) {
		return 0, false
	}
	idx := p.next
	p.next++
	tokens[idx] = Token{Start: None, End: None, Parent: None}
	return idx, true
}
