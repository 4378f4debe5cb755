package entry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/kitproj/internal/cli/app"
	"github.com/regenrek/kitproj/internal/cli/root"
	"github.com/regenrek/kitproj/internal/config"
	"github.com/regenrek/kitproj/internal/identity"
	"github.com/regenrek/kitproj/internal/logging"
)

// Run starts the CLI and returns the process exit code.
func Run(args []string, version string) int {
	return run(args, version, root.DefaultDependencies(version))
}

func run(args []string, version string, deps root.Dependencies) int {
	appName := identity.ResolveBinaryName(args)
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	mode := logging.ModeFromArgs(args)
	logCfg := logging.Config{}
	if configPath, err := globalConfigPath(); err == nil && configPath != "" {
		if _, err := config.EnsureDefault(configPath); err != nil {
			fmt.Fprintf(stderr, "%s: init config: %v\n", appName, err)
			return 1
		}
		if cfg, err := config.Load(configPath); err == nil && cfg != nil {
			logCfg = cfg.Logging
		} else if err != nil && mode != logging.ModeKitten {
			// Kittens report config errors in a modal once they load it.
			fmt.Fprintf(stderr, "%s: load config: %v\n", appName, err)
			return 1
		}
	}
	closeLogger, err := logging.Init(context.Background(), logCfg, logging.InitOptions{
		App:     identity.AppSlug,
		Version: version,
		Mode:    mode,
		Stderr:  stderr,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	deps.AppName = appName
	runner, err := app.NewRunner(deps)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	if err := runner.Run(context.Background(), args); err != nil {
		return exitCode(stderr, appName, err)
	}
	return 0
}

func exitCode(w io.Writer, appName string, err error) int {
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(exitErr.Error()); msg != "" {
			fmt.Fprintf(w, "%s: %s\n", appName, msg)
		}
		return exitErr.ExitCode()
	}
	fmt.Fprintf(w, "%s: %v\n", appName, err)
	return 1
}

// globalConfigPath honors KITPROJ_CONFIG ahead of the default location.
func globalConfigPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv("KITPROJ_CONFIG")); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}
