package root

import (
	"io"
	"os"

	"github.com/regenrek/kitproj/internal/config"
	"github.com/regenrek/kitproj/internal/dialog"
	"github.com/regenrek/kitproj/internal/identity"
	"github.com/regenrek/kitproj/internal/kitten"
	"github.com/regenrek/kitproj/internal/kittyctl"
)

// UI is the modal and prompt surface handlers talk to.
type UI interface {
	dialog.Reporter
	dialog.Prompter
}

// Dependencies provides external services for CLI handlers.
type Dependencies struct {
	Version string
	AppName string
	WorkDir string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	LoadConfig func(path string) (*config.Config, error)
	Kitty      func(opts kittyctl.Options) (kitten.Host, error)
	UI         func() UI
}

// DefaultDependencies returns dependencies wired to production services.
func DefaultDependencies(version string) Dependencies {
	return Dependencies{
		Version:    version,
		AppName:    identity.CLIName,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		LoadConfig: config.Load,
		Kitty: func(opts kittyctl.Options) (kitten.Host, error) {
			return kittyctl.NewClient(opts)
		},
		UI: func() UI { return dialog.NewTerminal() },
	}
}
