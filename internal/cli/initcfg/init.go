// Package initcfg implements the `init` command.
package initcfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/regenrek/kitproj/internal/atomicfile"
	"github.com/regenrek/kitproj/internal/cli/output"
	"github.com/regenrek/kitproj/internal/cli/root"
	"github.com/regenrek/kitproj/internal/config"
	"github.com/regenrek/kitproj/internal/identity"
	"github.com/regenrek/kitproj/internal/manifest"
	"github.com/regenrek/kitproj/internal/roles"
)

// ErrDeclined is returned when the user refuses to overwrite a manifest.
var ErrDeclined = errors.New("overwrite declined")

// Register registers init handler.
func Register(reg *root.Registry) {
	reg.Register("init", runInit)
}

type result struct {
	Manifest        string
	ManifestWritten bool
	Config          string
	ConfigWritten   bool
}

func runInit(ctx root.CommandContext) error {
	start := time.Now()
	meta := output.NewMeta("init", ctx.Deps.Version)
	dir, err := root.ResolveWorkDir(ctx)
	if err != nil {
		return fmt.Errorf("cannot determine current directory: %w", err)
	}
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}
	entry := strings.TrimSpace(ctx.Cmd.String("entry"))
	if entry == "" {
		entry = filepath.Base(dir)
	}
	res := result{Manifest: manifest.PathIn(dir, cfg.Manifest.File)}
	res.ManifestWritten, err = writeManifest(ctx, res.Manifest, entry)
	if err != nil {
		return err
	}
	if res.Config, err = configPath(ctx); err != nil {
		return err
	}
	if res.Config != "" {
		if res.ConfigWritten, err = config.EnsureDefault(res.Config); err != nil {
			return err
		}
	}
	if ctx.JSON {
		meta = output.WithDuration(meta, start)
		return output.WriteSuccess(ctx.Out, meta, output.ActionResult{
			Action: "init",
			Status: "ok",
			Details: map[string]any{
				"manifest":         res.Manifest,
				"manifest_written": res.ManifestWritten,
				"config":           res.Config,
				"config_written":   res.ConfigWritten,
				"entry":            entry,
			},
		})
	}
	return printResult(ctx, res, entry)
}

// StarterManifest returns a manifest with one entry whose build and log
// commands are placeholders.
func StarterManifest(entry string) ([]byte, error) {
	doc := map[string]map[string][]string{
		entry: {
			string(roles.Build): {"make"},
			string(roles.Log):   {"tail", "-f", "build.log"},
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeManifest(ctx root.CommandContext, path, entry string) (bool, error) {
	data, err := StarterManifest(entry)
	if err != nil {
		return false, fmt.Errorf("encode manifest: %w", err)
	}
	if !ctx.Cmd.Bool("force") {
		if err := atomicfile.SaveNew(path, data, 0o644); err != nil {
			if errors.Is(err, atomicfile.ErrExists) {
				return false, fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			return false, fmt.Errorf("write %s: %w", path, err)
		}
		return true, nil
	}
	if _, err := os.Stat(path); err == nil && !ctx.Cmd.Bool("yes") {
		ok, err := root.PromptConfirm(ctx.Stdin, ctx.ErrOut, fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return false, fmt.Errorf("confirm overwrite: %w", err)
		}
		if !ok {
			return false, ErrDeclined
		}
	}
	if err := atomicfile.Save(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

func configPath(ctx root.CommandContext) (string, error) {
	if path := strings.TrimSpace(ctx.Cmd.String("config")); path != "" {
		return path, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("cannot determine config path: %w", err)
	}
	return path, nil
}

func printResult(ctx root.CommandContext, res result, entry string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Created %s with entry %q\n", res.Manifest, entry)
	switch {
	case res.ConfigWritten:
		fmt.Fprintf(&b, "Created %s\n", res.Config)
	case res.Config != "":
		fmt.Fprintf(&b, "Config already exists: %s\n", res.Config)
	}
	fmt.Fprintf(&b, "\nEdit the build and log commands, then map keys in kitty.conf:\n")
	fmt.Fprintf(&b, "  map f5 launch --type=overlay %s --window-id @active-kitty-window-id run -build %s\n", identity.CLIName, entry)
	fmt.Fprintf(&b, "  map f6 launch --type=overlay %s --window-id @active-kitty-window-id layout -type input\n", identity.CLIName)
	_, err := fmt.Fprint(ctx.Out, b.String())
	return err
}
