package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/regenrek/kitproj/internal/atomicfile"
)

const defaultContent = `# kitproj - Global Configuration

kitty:
  # kitten or kitty binary; looked up in PATH when empty
  # bin: /Applications/kitty.app/Contents/MacOS/kitten
  # remote control address; defaults to $KITTY_LISTEN_ON
  # socket: unix:/tmp/kitty
  timeout: 5s

manifest:
  # per-project manifest, resolved in the pane's working directory
  file: .kitty-session.json

dispatch:
  # signal sent to the foreground job of a role pane before a new command
  signal: SIGTERM
  # how many times the signal is sent
  signal_retries: 2
  # clear screen and scrollback before injecting the command
  clear: true

# logging:
#   level: error      # debug | info | warn | error
#   format: text      # text | json
#   sink: stderr      # stderr | file | none
#   file: ~/.local/state/kitproj/kitproj.log
#   include_payloads: false
`

// DefaultContent returns the commented default config.
func DefaultContent() string {
	return defaultContent
}

// EnsureDefault writes the default config to path unless a file exists there.
// It reports whether a file was written.
func EnsureDefault(path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, fmt.Errorf("config path is empty")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return false, fmt.Errorf("config path %q is a directory", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := atomicfile.SaveNew(path, []byte(defaultContent), 0o644); err != nil {
		if errors.Is(err, atomicfile.ErrExists) {
			return false, nil
		}
		return false, fmt.Errorf("write config %q: %w", path, err)
	}
	return true, nil
}
