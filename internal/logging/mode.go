package logging

import "strings"

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	// ModeKitten is used for the commands kitty launches from a key mapping.
	ModeKitten
)

var kittenCommands = map[string]bool{"layout": true, "run": true}

// valueFlags are the global flags whose value is the next argument.
var valueFlags = map[string]bool{"--config": true, "--kitty": true, "--to": true, "--window-id": true}

// ModeFromArgs picks the mode from the first non-flag argument.
func ModeFromArgs(args []string) Mode {
	skip := false
	for _, arg := range args[min(1, len(args)):] {
		arg = strings.TrimSpace(arg)
		if skip {
			skip = false
			continue
		}
		if arg == "" {
			continue
		}
		if strings.HasPrefix(arg, "-") {
			skip = valueFlags["--"+strings.TrimLeft(arg, "-")]
			continue
		}
		if kittenCommands[strings.ToLower(arg)] {
			return ModeKitten
		}
		return ModeCLI
	}
	return ModeCLI
}

func (m Mode) String() string {
	switch m {
	case ModeKitten:
		return "kitten"
	default:
		return "cli"
	}
}
