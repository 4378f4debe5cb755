package kitten

import (
	"errors"
	"fmt"
	"strings"
)

const (
	TypeFlag  = "-type"
	BuildFlag = "-build"
	// InputSentinel in place of a flag value asks the user instead.
	InputSentinel = "input"
	// minArgs counts the command name itself.
	minArgs = 3
)

// ErrUsage reports a kitten invoked without enough arguments.
var ErrUsage = errors.New("missing arguments")

// UsageError carries the arguments the kitten received.
type UsageError struct {
	Args []string
}

func (e *UsageError) Error() string {
	quoted := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		quoted = append(quoted, fmt.Sprintf("%q", a))
	}
	return fmt.Sprintf("Call to kitten missing arguments [%s].", strings.Join(quoted, ", "))
}

func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// Answer is the value selected by a kitten's flag.
type Answer struct {
	Value string
	// Prompt is set when the value was the input sentinel.
	Prompt bool
}

func flagValue(args []string, flag string) (string, bool) {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func answerFor(value string) Answer {
	if value == InputSentinel {
		return Answer{Prompt: true}
	}
	return Answer{Value: value}
}

// ParseLayoutArgs reads -type. A missing flag selects the single layout.
func ParseLayoutArgs(args []string) (Answer, error) {
	if len(args) < minArgs {
		return Answer{}, &UsageError{Args: args}
	}
	value, ok := flagValue(args, TypeFlag)
	if !ok {
		return Answer{Value: "single"}, nil
	}
	return answerFor(value), nil
}

// ParseRunArgs reads -build, which is required.
func ParseRunArgs(args []string) (Answer, error) {
	if len(args) < minArgs {
		return Answer{}, &UsageError{Args: args}
	}
	value, ok := flagValue(args, BuildFlag)
	if !ok {
		return Answer{}, &UsageError{Args: args}
	}
	return answerFor(value), nil
}
