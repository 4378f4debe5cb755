// Package kittens registers the handlers kitty key mappings invoke.
package kittens

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/kitproj/internal/cli/root"
	"github.com/regenrek/kitproj/internal/dialog"
	"github.com/regenrek/kitproj/internal/kitten"
	"github.com/regenrek/kitproj/internal/manifest"
)

const (
	configTitle = "Config Load Failed"
	kittyTitle  = "Kitty Remote Control Failed"
)

type entryPoint func(k *kitten.Kittens, ctx context.Context, args []string) error

// Register registers the layout and run handlers.
func Register(reg *root.Registry) {
	reg.Register("layout", func(ctx root.CommandContext) error {
		return runKitten(ctx, "layout", (*kitten.Kittens).Layout)
	})
	reg.Register("run", func(ctx root.CommandContext) error {
		return runKitten(ctx, "run", (*kitten.Kittens).Run)
	})
}

func runKitten(ctx root.CommandContext, name string, entry entryPoint) error {
	ui := newUI(ctx)
	cfg, err := ctx.Config()
	if err != nil {
		ui.Report(configTitle, err.Error())
		return cli.Exit("", 1)
	}
	kitty, err := ctx.Kitty(cfg)
	if err != nil {
		ui.Report(kittyTitle, err.Error())
		return cli.Exit("", 1)
	}
	k := &kitten.Kittens{
		Host:         kitty,
		Reporter:     ui,
		Prompter:     ui,
		Manifest:     manifest.Resolver{File: cfg.Manifest.File},
		Policy:       cfg.DispatchPolicy(),
		OriginPaneID: ctx.WindowID(),
	}
	runCtx := ctx.Context
	if runCtx == nil {
		runCtx = context.Background()
	}
	args := append([]string{name}, ctx.Args...)
	slog.Debug("kitten: start", slog.String("kitten", name), slog.Any("args", ctx.Args), slog.Int("window_id", k.OriginPaneID))
	if err := entry(k, runCtx, args); err != nil {
		if errors.Is(err, kitten.ErrReported) {
			return cli.Exit("", 1)
		}
		return err
	}
	return nil
}

func newUI(ctx root.CommandContext) root.UI {
	if ctx.Deps.UI != nil {
		if ui := ctx.Deps.UI(); ui != nil {
			return ui
		}
	}
	return dialog.NewTerminal()
}
