// Package shellcmd turns nested command token lists from a session manifest
// into a single shell command line.
package shellcmd

import "strings"

// Kind tags the variant held by a Token.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindLiteral
	KindGroup
)

// Token is either a literal command fragment or a group of nested tokens.
// Tokens decoded from values that are neither keep the source type name so the
// serializer can report it.
type Token struct {
	kind     Kind
	literal  string
	group    []Token
	typeName string
}

// Literal is a fragment appended verbatim.
func Literal(s string) Token {
	return Token{kind: KindLiteral, literal: s}
}

// Group is a sub-command whose elements are shell-quoted and joined into one fragment.
func Group(tokens ...Token) Token {
	return Token{kind: KindGroup, group: tokens}
}

// Invalid records a value of an unsupported type.
func Invalid(typeName string) Token {
	if strings.TrimSpace(typeName) == "" {
		typeName = "unknown"
	}
	return Token{kind: KindInvalid, typeName: typeName}
}

// Literals is a convenience for a flat token list.
func Literals(words ...string) []Token {
	out := make([]Token, 0, len(words))
	for _, w := range words {
		out = append(out, Literal(w))
	}
	return out
}

func (t Token) Kind() Kind        { return t.kind }
func (t Token) Text() string      { return t.literal }
func (t Token) Children() []Token { return t.group }
func (t Token) TypeName() string {
	switch t.kind {
	case KindLiteral:
		return "string"
	case KindGroup:
		return "array"
	default:
		return t.typeName
	}
}
