// Package jsonpointer implements RFC 6901 JSON Pointers over documents
// built from the JSON value domain (map[string]any, []any, string,
// float64, bool, nil). Besides plain resolution it provides the
// copy-on-write mutation primitives the patch engine is built on: every
// write rebuilds only the spine from the root to the touched node and
// shares all untouched siblings with the input document.
package jsonpointer

import (
	"strings"
)

// Pointer is a parsed JSON Pointer: a sequence of unescaped reference
// tokens. The empty Pointer addresses the document root.
type Pointer []string

// New parses an RFC 6901 pointer string. The empty string is the root
// pointer; any other pointer must start with '/'. Escape sequences are
// decoded (`~1` -> `/`, `~0` -> `~`); a '~' followed by anything else
// is a *SyntaxError.
func New(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return nil, &SyntaxError{Pointer: s, Reason: "must be empty or start with '/'"}
	}
	raw := strings.Split(s[1:], "/")
	tokens := make(Pointer, len(raw))
	for i, tok := range raw {
		decoded, err := unescape(tok)
		if err != nil {
			return nil, &SyntaxError{Pointer: s, Reason: err.Error()}
		}
		tokens[i] = decoded
	}
	return tokens, nil
}

func unescape(token string) (string, error) {
	if !strings.ContainsRune(token, '~') {
		return token, nil
	}
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(token) {
			return "", errDanglingTilde
		}
		switch token[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", errBadEscape
		}
		i++
	}
	return b.String(), nil
}

// Escape encodes a single reference token for inclusion in a pointer
// string. The '~' character must be escaped before '/'.
func Escape(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// Append extends a pointer string with one more (unescaped) token.
func Append(ptr, token string) string {
	return ptr + "/" + Escape(token)
}

// String renders the pointer back to its canonical RFC 6901 form.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(Escape(tok))
	}
	return b.String()
}

// IsRoot reports whether the pointer addresses the document itself.
func (p Pointer) IsRoot() bool {
	return len(p) == 0
}

// Parent returns the pointer with the last token removed. Parent of
// the root is the root.
func (p Pointer) Parent() Pointer {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// Last returns the final reference token. It must not be called on the
// root pointer.
func (p Pointer) Last() string {
	return p[len(p)-1]
}

// IsPrefixOf reports whether p is a strict, token-wise prefix of other:
// "/a" is a prefix of "/a/b" but not of "/ab" and not of "/a" itself.
func (p Pointer) IsPrefixOf(other Pointer) bool {
	if len(p) >= len(other) {
		return false
	}
	for i, tok := range p {
		if other[i] != tok {
			return false
		}
	}
	return true
}

// ParseArrayIndex validates and parses an array index token. Only "0"
// or a sequence of digits without a leading zero is accepted; anything
// else (including "-") is an *IndexError no matter the array length.
func ParseArrayIndex(token string) (int, error) {
	if token == "" {
		return 0, &IndexError{Token: token, Index: -1}
	}
	if len(token) > 1 && token[0] == '0' {
		return 0, &IndexError{Token: token, Index: -1}
	}
	idx := 0
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < '0' || c > '9' {
			return 0, &IndexError{Token: token, Index: -1}
		}
		idx = idx*10 + int(c-'0')
		if idx < 0 {
			// overflow
			return 0, &IndexError{Token: token, Index: -1}
		}
	}
	return idx, nil
}
