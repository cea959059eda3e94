// Package jsonpointer implements RFC 6901 JSON Pointer construction and
// parsing, used by the $ref resolver (dereferencing pointer targets).
// Adapted from goskema's PathRef path builder.
package jsonpointer

import (
	"strconv"
	"strings"
)

// Escape applies RFC 6901 escaping: '~' -> '~0', '/' -> '~1'.
func Escape(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// Unescape reverses Escape: '~1' -> '/', '~0' -> '~'.
func Unescape(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

// Pointer is a parsed, unescaped sequence of JSON Pointer reference tokens.
type Pointer []string

// Parse splits a JSON Pointer (optionally prefixed with a fragment "#") into
// unescaped tokens. "", "/" and "#" all parse to the root (empty) pointer.
func Parse(raw string) Pointer {
	raw = strings.TrimPrefix(raw, "#")
	if raw == "" || raw == "/" {
		return Pointer{}
	}
	raw = strings.TrimPrefix(raw, "/")
	parts := strings.Split(raw, "/")
	out := make(Pointer, 0, len(parts))
	for _, p := range parts {
		out = append(out, Unescape(p))
	}
	return out
}

// Append returns a new Pointer with tok appended (escaping is applied on String()).
func (p Pointer) Append(tok string) Pointer {
	out := make(Pointer, len(p)+1)
	copy(out, p)
	out[len(p)] = tok
	return out
}

// AppendIndex returns a new Pointer with an array index appended.
func (p Pointer) AppendIndex(i int) Pointer {
	return p.Append(strconv.Itoa(i))
}

// String renders the pointer using RFC 6901 escaping, "/" for the root.
func (p Pointer) String() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(Escape(tok))
	}
	return b.String()
}

// IsRoot reports whether p addresses the document root.
func (p Pointer) IsRoot() bool { return len(p) == 0 }
