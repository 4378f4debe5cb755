package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/kitproj/internal/cli/spec"
)

// BuildApp constructs a CLI app from the spec and registry.
func BuildApp(specDoc *spec.Spec, deps Dependencies, reg *Registry) (*cli.Command, error) {
	if specDoc == nil {
		return nil, fmt.Errorf("spec is nil")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if err := reg.EnsureHandlers(specDoc); err != nil {
		return nil, err
	}
	app := &cli.Command{
		Name:        specDoc.App.Name,
		Usage:       specDoc.App.Summary,
		Description: specDoc.App.Summary,
		Commands:    []*cli.Command{},
		Writer:      deps.Stdout,
		ErrWriter:   deps.Stderr,
		// Exit codes are mapped by the caller so deferred cleanup still runs.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	app.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd != nil && cmd.Bool("version") {
			out := deps.Stdout
			if out == nil {
				out = io.Discard
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", specDoc.App.Name, deps.Version)
			return ctx, cli.Exit("", 0)
		}
		return ctx, nil
	}
	globalFlags, err := buildFlags(specDoc.GlobalFlags)
	if err != nil {
		return nil, err
	}
	app.Flags = globalFlags
	for _, cmdSpec := range specDoc.Commands {
		cmd, err := buildCommand(cmdSpec, deps, reg)
		if err != nil {
			return nil, err
		}
		app.Commands = append(app.Commands, cmd)
	}
	return app, nil
}

func buildCommand(cmdSpec spec.Command, deps Dependencies, reg *Registry) (*cli.Command, error) {
	cmd := &cli.Command{
		Name:            cmdSpec.Name,
		Aliases:         cmdSpec.Aliases,
		Usage:           cmdSpec.Summary,
		Description:     strings.TrimSpace(cmdSpec.Description),
		Hidden:          cmdSpec.Hidden,
		SkipFlagParsing: cmdSpec.SkipFlagParsing,
		ArgsUsage:       argsUsage(cmdSpec.Args),
	}
	flags, err := buildFlags(cmdSpec.Flags)
	if err != nil {
		return nil, fmt.Errorf("flags for %s: %w", cmdSpec.ID, err)
	}
	cmd.Flags = flags
	if handler, ok := reg.HandlerFor(cmdSpec.ID); ok {
		cmd.Action = func(ctx context.Context, cliCmd *cli.Command) error {
			return runHandler(ctx, cliCmd, cmdSpec, deps, handler)
		}
	}
	return cmd, nil
}

func runHandler(ctx context.Context, cliCmd *cli.Command, cmdSpec spec.Command, deps Dependencies, handler Handler) error {
	if handler == nil {
		return nil
	}
	args := []string{}
	if cliCmd != nil {
		if parsed := cliCmd.Args(); parsed != nil {
			args = parsed.Slice()
		}
	}
	commandCtx := CommandContext{
		Context: ctx,
		Args:    args,
		Spec:    cmdSpec,
		Cmd:     cliCmd,
		Deps:    deps,
		JSON:    cmdSpec.JSON && cliCmd.Bool("json"),
		Out:     deps.Stdout,
		ErrOut:  deps.Stderr,
		Stdin:   deps.Stdin,
		WorkDir: deps.WorkDir,
	}
	if err := validateArgs(cmdSpec, args); err != nil {
		return err
	}
	return handler(commandCtx)
}

// validateArgs enforces required positional arguments. Commands that skip
// flag parsing validate their own arguments.
func validateArgs(cmdSpec spec.Command, args []string) error {
	if cmdSpec.SkipFlagParsing {
		return nil
	}
	for i, argSpec := range cmdSpec.Args {
		if !argSpec.Required {
			continue
		}
		if i >= len(args) || strings.TrimSpace(args[i]) == "" {
			return fmt.Errorf("missing argument %q", argSpec.Name)
		}
	}
	return nil
}

func argsUsage(args []spec.Arg) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		name := strings.ToUpper(arg.Name)
		if arg.Variadic {
			name += "..."
		}
		if arg.Required {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("[%s]", name))
		}
	}
	return strings.Join(parts, " ")
}
