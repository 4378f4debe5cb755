package shellcmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// MaxDepth bounds list nesting, counting the top-level token list as level 1.
const MaxDepth = 5

var (
	ErrTooDeep   = errors.New("too much recursion")
	ErrTokenType = errors.New("unexpected token type")
)

// TokenTypeError names the offending value type.
type TokenTypeError struct {
	Type string
}

func (e *TokenTypeError) Error() string {
	return fmt.Sprintf("unexpected token type %q", e.Type)
}

func (e *TokenTypeError) Is(target error) bool {
	return target == ErrTokenType
}

// Serialize joins tokens with single spaces. Literals are appended as-is;
// groups become one shell-quoted fragment.
func Serialize(tokens []Token) (string, error) {
	return serialize(tokens, 1)
}

func serialize(tokens []Token, level int) (string, error) {
	if level > MaxDepth {
		return "", tooDeep()
	}
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.kind {
		case KindLiteral:
			parts = append(parts, tok.literal)
		case KindGroup:
			quoted, err := quoteGroup(tok.group, level+1)
			if err != nil {
				return "", err
			}
			parts = append(parts, quoted)
		default:
			return "", &TokenTypeError{Type: tok.TypeName()}
		}
	}
	return strings.Join(parts, " "), nil
}

// quoteGroup quotes each element; nested groups are serialized first and then
// quoted as a single word.
func quoteGroup(group []Token, level int) (string, error) {
	if level > MaxDepth {
		return "", tooDeep()
	}
	words := make([]string, 0, len(group))
	for _, tok := range group {
		switch tok.kind {
		case KindLiteral:
			words = append(words, tok.literal)
		case KindGroup:
			inner, err := serialize(tok.group, level+1)
			if err != nil {
				return "", err
			}
			words = append(words, inner)
		default:
			return "", &TokenTypeError{Type: tok.TypeName()}
		}
	}
	return shellquote.Join(words...), nil
}

func tooDeep() error {
	return fmt.Errorf("%w: command nesting exceeds %d levels", ErrTooDeep, MaxDepth)
}
