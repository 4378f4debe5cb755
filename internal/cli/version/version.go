package version

import (
	"fmt"
	"runtime"

	"github.com/regenrek/kitproj/internal/cli/root"
	"github.com/regenrek/kitproj/internal/identity"
)

// Register registers version handler.
func Register(reg *root.Registry) {
	reg.Register("version", runVersion)
}

func runVersion(ctx root.CommandContext) error {
	name := ctx.Deps.AppName
	if name == "" {
		name = identity.CLIName
	}
	_, err := fmt.Fprintf(ctx.Out, "%s %s (%s %s/%s)\n", name, ctx.Deps.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}
