// Top-level key lookup over a tokenized buffer. This is a consumer of the
// tokenizer, not part of it: a thin linear scan that fetches one first-level
// value and hands back an owned copy of its bytes.

package jtok

import (
	"errors"
	"unsafe"
)

// Error definitions for lookup operations
var (
	ErrKeyNotFound  = errors.New("jtok: key not found")
	ErrNoRootObject = errors.New("jtok: root element is not an object")
)

// Lookup scans the first-level keys of a tokenized object for key and
// returns a copy of the matching value's raw bytes. For string values the
// copy excludes the quotes; for objects and arrays it spans the whole
// value. Nested levels are skipped, not descended into.
//
// data must be the buffer tokens were parsed from. The returned slice is
// newly allocated and owned by the caller.
func Lookup(data []byte, tokens []Token, key string) ([]byte, bool) {
	if len(tokens) == 0 || tokens[0].Kind != KindObject {
		return nil, false
	}

	i := 1
	for i < len(tokens) {
		k := tokens[i]
		if k.Kind != KindString || k.Size != 1 || i+1 >= len(tokens) {
			// Not a bound key; the token layout is not a plain object.
			return nil, false
		}
		val := tokens[i+1]
		if k.EqualString(data, key) {
			out := make([]byte, val.End-val.Start)
			copy(out, data[val.Start:val.End])
			return out, true
		}

		// Skip the value and everything nested inside its span.
		i += 2
		for i < len(tokens) && tokens[i].Start < val.End {
			i++
		}
	}
	return nil, false
}

// Get tokenizes data (sizing the pool with a dry run) and returns a copy of
// the named first-level value of the root object. It reports ErrNoRootObject
// when the document's root is not an object and ErrKeyNotFound when the key
// is absent; tokenizer errors pass through unchanged.
func Get(data []byte, key string) ([]byte, error) {
	tokens, err := Tokenize(data, Options{})
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 || tokens[0].Kind != KindObject {
		return nil, ErrNoRootObject
	}
	value, ok := Lookup(data, tokens, key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

// GetString is like Get but accepts and returns Go strings.
func GetString(json string, key string) (string, error) {
	value, err := Get(stringToBytes(json), key)
	if err != nil {
		return "", err
	}
	return bytesToString(value), nil
}

// stringToBytes converts a string to a byte slice without allocation
func stringToBytes(s string) []byte {
	return *(*[]byte)(unsafe.Pointer(
		&struct {
			string
			Cap int
		}{s, len(s)},
	))
}

// bytesToString converts a byte slice to a string without allocation
func bytesToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
