package dialog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ValidateChoice accepts value when it is one of known or when known is empty.
// Unknown values get a "did you mean" hint from the closest fuzzy match.
func ValidateChoice(value string, known []string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("value cannot be empty")
	}
	if len(known) == 0 {
		return nil
	}
	for _, k := range known {
		if k == value {
			return nil
		}
	}
	if best, ok := Closest(value, known); ok {
		return fmt.Errorf("unknown entry %q, did you mean %q?", value, best)
	}
	return fmt.Errorf("unknown entry %q", value)
}

// Closest returns the best fuzzy match for pattern among candidates.
func Closest(pattern string, candidates []string) (string, bool) {
	matches := fuzzy.Find(pattern, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
