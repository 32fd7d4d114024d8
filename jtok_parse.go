package jtok

//------------------------------------------------------------------------------
// CORE TOKENIZER STATE MACHINE
//------------------------------------------------------------------------------

// Parse scans data from the parser's current position and appends one token
// per syntactic node (object, array, string, primitive) to the pool. It
// returns the total number of tokens identified since the parser was last
// Reset, so a resumed parse reports a cumulative count.
//
// A nil pool puts the parse in dry-run mode: the input is scanned and
// counted, structural and lexical errors are still reported, but nothing is
// written. Dry runs are the intended way to size a pool before a real pass.
//
// On ErrNoMemory the position is left at the start of the pending lexical
// unit, so calling Parse again with a grown pool (containing the tokens
// already written) continues the parse without losing or duplicating
// tokens. On ErrInvalid and ErrPartial the position is rewound to the start
// of the offending unit; the parse cannot be resumed.
func (p *Parser) Parse(data []byte, tokens []Token) (int, error) {
	count := p.next
	writing := tokens != nil

	for ; p.pos < len(data); p.pos++ {
		c := data[p.pos]
		switch c {
		case '{', '[':
			count++
			kind := KindObject
			if c == '[' {
				kind = KindArray
			}
			if !writing {
				p.stack = append(p.stack, openScope{tok: None, kind: kind})
				continue
			}
			idx, ok := p.alloc(tokens)
			if !ok {
				return 0, ErrNoMemory
			}
			if p.super != None {
				t := &tokens[p.super]
				// In strict mode an object or array cannot be a key.
				if p.opts.Strict && t.Kind == KindObject {
					return 0, ErrInvalid
				}
				t.Size++
				if p.opts.ParentLinks {
					tokens[idx].Parent = p.super
				}
			}
			tokens[idx].Kind = kind
			tokens[idx].Start = p.pos
			p.stack = append(p.stack, openScope{tok: idx, kind: kind})
			p.super = idx

		case '}', ']':
			kind := KindObject
			if c == ']' {
				kind = KindArray
			}
			if len(p.stack) == 0 {
				return 0, ErrInvalid
			}
			top := p.stack[len(p.stack)-1]
			if top.kind != kind {
				return 0, ErrInvalid
			}
			p.stack = p.stack[:len(p.stack)-1]
			if writing {
				tokens[top.tok].End = p.pos + 1
			}
			if n := len(p.stack); n > 0 {
				p.super = p.stack[n-1].tok
			} else {
				p.super = None
			}

		case '"':
			if err := p.scanString(data, tokens); err != nil {
				return 0, err
			}
			count++
			if writing && p.super != None {
				tokens[p.super].Size++
			}

		case '\t', '\r', '\n', ' ':
			// Whitespace between tokens.

		case ':':
			// The token just produced is a key; everything up to the next
			// comma or closer is its value.
			p.super = p.next - 1

		case ',':
			// A finished value inside a container: re-anchor the superior
			// to the nearest enclosing container so the next item attaches
			// to it.
			if writing && p.super != None &&
				tokens[p.super].Kind != KindArray && tokens[p.super].Kind != KindObject {
				if n := len(p.stack); n > 0 {
					p.super = p.stack[n-1].tok
				} else {
					p.super = None
				}
			}

		default:
			if p.opts.Strict {
				if !strictPrimitiveStart(c) {
					return 0, ErrInvalid
				}
				// Primitives cannot be object keys.
				if writing && p.super != None {
					t := tokens[p.super]
					if t.Kind == KindObject || (t.Kind == KindString && t.Size != 0) {
						return 0, ErrInvalid
					}
				}
			}
			if err := p.scanPrimitive(data, tokens); err != nil {
				return 0, err
			}
			count++
			if writing && p.super != None {
				tokens[p.super].Size++
			}
		}
	}

	// Input exhausted with a container still open: well-formed so far but
	// truncated.
	if len(p.stack) > 0 {
		return 0, ErrPartial
	}
	return count, nil
}

// scanString consumes a string token starting at the opening quote. The
// produced token spans the content between the quotes. Escape sequences are
// validated but not resolved.
func (p *Parser) scanString(data []byte, tokens []Token) error {
	start := p.pos

	// Skip the opening quote.
	p.pos++

	for ; p.pos < len(data); p.pos++ {
		c := data[p.pos]

		// Closing quote: emit the token.
		if c == '"' {
			if tokens == nil {
				return nil
			}
			idx, ok := p.alloc(tokens)
			if !ok {
				p.pos = start
				return ErrNoMemory
			}
			tokens[idx].Kind = KindString
			tokens[idx].Start = start + 1
			tokens[idx].End = p.pos
			if p.opts.ParentLinks {
				tokens[idx].Parent = p.super
			}
			return nil
		}

		if c == '\\' && p.pos+1 < len(data) {
			p.pos++
			switch data[p.pos] {
			case '"', '/', '\\', 'b', 'f', 'r', 'n', 't':
				// Allowed escapes.
			case 'u':
				p.pos++
				for i := 0; i < 4 && p.pos < len(data); i++ {
					if !isHexDigit(data[p.pos]) {
						p.pos = start
						return ErrInvalid
					}
					p.pos++
				}
				p.pos--
			default:
				p.pos = start
				return ErrInvalid
			}
		}
	}

	p.pos = start
	return ErrPartial
}

// scanPrimitive consumes an unquoted primitive token. In non-strict mode a
// colon terminates the primitive (so bare words can act as keys); in strict
// mode it does not, since strict primitives are numbers, booleans and null.
// Non-strict mode also accepts end of input as a terminator, strict mode
// reports ErrPartial instead.
func (p *Parser) scanPrimitive(data []byte, tokens []Token) error {
	start := p.pos

scan:
	for ; p.pos < len(data); p.pos++ {
		c := data[p.pos]
		switch c {
		case '\t', '\r', '\n', ' ', ',', ']', '}':
			break scan
		case ':':
			if !p.opts.Strict {
				break scan
			}
		}
		if c < 0x20 || c >= 0x7f {
			p.pos = start
			return ErrInvalid
		}
	}

	if p.opts.Strict && p.pos >= len(data) {
		// Strict primitives must be followed by a terminator.
		p.pos = start
		return ErrPartial
	}

	if tokens == nil {
		p.pos--
		return nil
	}
	idx, ok := p.alloc(tokens)
	if !ok {
		p.pos = start
		return ErrNoMemory
	}
	tokens[idx].Kind = KindPrimitive
	tokens[idx].Start = start
	tokens[idx].End = p.pos
	if p.opts.ParentLinks {
		tokens[idx].Parent = p.super
	}

	// Leave the terminator for the main loop.
	p.pos--
	return nil
}

// strictPrimitiveStart reports whether c can begin a strict-mode primitive:
// a number, true, false or null.
func strictPrimitiveStart(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9') || c == 't' || c == 'f' || c == 'n'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

//------------------------------------------------------------------------------
// CONVENIENCE ENTRY POINTS
//------------------------------------------------------------------------------

// Count runs a dry-run parse over data and returns the number of tokens a
// real parse would produce. Use it to size a pool before calling Parse.
func Count(data []byte, opts Options) (int, error) {
	p := NewParser(opts)
	return p.Parse(data, nil)
}

// Tokenize parses data into a freshly allocated pool sized by a dry run.
// It is the only entry point in the package that allocates; callers that
// manage their own pools should use Parser directly.
func Tokenize(data []byte, opts Options) ([]Token, error) {
	p := NewParser(opts)
	n, err := p.Parse(data, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	tokens := make([]Token, n)
	p.Reset()
	if _, err := p.Parse(data, tokens); err != nil {
		// The dry run cannot see strict-mode key-position violations, so a
		// second-pass ErrInvalid is still possible.
		return nil, err
	}
	return tokens, nil
}

// Valid reports whether data holds at least one complete JSON value under
// strict tokenization rules.
func Valid(data []byte) bool {
	tokens, err := Tokenize(data, Options{Strict: true})
	return err == nil && len(tokens) > 0
}
