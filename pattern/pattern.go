// Package pattern compiles human-readable byte signatures and searches byte
// buffers for them. Signatures locate code or data whose absolute address
// varies across builds but whose surrounding byte sequence is stable.
package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPattern is returned when a signature string contains a token
// that is neither a two-digit hex byte nor a wildcard marker, or when the
// string yields no tokens at all.
var ErrMalformedPattern = errors.New("malformed pattern")

// Token is a single position in a compiled signature: either an exact byte
// value or a wildcard that matches any byte.
type Token struct {
	Value    byte
	Wildcard bool
}

// Pattern is a compiled signature. It is immutable after Compile.
type Pattern []Token

// Compile parses a space-separated signature string such as
// "89 0D ? ? ? ? 8B 0D" into a Pattern. Each token is two case-insensitive
// hex digits or a wildcard marker ("?" or "??"). Repeated, leading and
// trailing whitespace is tolerated.
func Compile(s string) (Pattern, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty signature %q", ErrMalformedPattern, s)
	}

	p := make(Pattern, 0, len(fields))
	for _, f := range fields {
		if f == "?" || f == "??" {
			p = append(p, Token{Wildcard: true})
			continue
		}
		if len(f) != 2 {
			return nil, fmt.Errorf("%w: token %q", ErrMalformedPattern, f)
		}
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: token %q", ErrMalformedPattern, f)
		}
		p = append(p, Token{Value: byte(v)})
	}
	return p, nil
}

// MustCompile is like Compile but panics on error. Use it for signature
// constants known to be well formed.
func MustCompile(s string) Pattern {
	p, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the pattern back in signature form, e.g. "89 0D ? FF".
func (p Pattern) String() string {
	var sb strings.Builder
	for i, tok := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if tok.Wildcard {
			sb.WriteByte('?')
		} else {
			fmt.Fprintf(&sb, "%02X", tok.Value)
		}
	}
	return sb.String()
}
