package root

import (
	"fmt"
	"strings"

	"github.com/regenrek/kitproj/internal/config"
	"github.com/regenrek/kitproj/internal/kitten"
	"github.com/regenrek/kitproj/internal/kittyctl"
)

// Config loads the config named by --config, or the default one.
func (ctx CommandContext) Config() (*config.Config, error) {
	path := ""
	if ctx.Cmd != nil {
		path = strings.TrimSpace(ctx.Cmd.String("config"))
	}
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
	}
	load := ctx.Deps.LoadConfig
	if load == nil {
		load = config.Load
	}
	return load(path)
}

// KittyOptions merges --kitty and --to over the config file.
func (ctx CommandContext) KittyOptions(cfg *config.Config) kittyctl.Options {
	opts := kittyctl.Options{}
	if cfg != nil {
		opts = kittyctl.Options{Bin: cfg.Kitty.Bin, Socket: cfg.Kitty.Socket, Timeout: cfg.Kitty.Timeout}
	}
	if ctx.Cmd == nil {
		return opts
	}
	if bin := strings.TrimSpace(ctx.Cmd.String("kitty")); bin != "" {
		opts.Bin = bin
	}
	if to := strings.TrimSpace(ctx.Cmd.String("to")); to != "" {
		opts.Socket = to
	}
	return opts
}

// Kitty connects to kitty using cfg and the global flags.
func (ctx CommandContext) Kitty(cfg *config.Config) (kitten.Host, error) {
	if ctx.Deps.Kitty == nil {
		return nil, fmt.Errorf("kitty client is not configured")
	}
	return ctx.Deps.Kitty(ctx.KittyOptions(cfg))
}

// WindowID is the kitty window the command acts from (--window-id or KITTY_WINDOW_ID).
func (ctx CommandContext) WindowID() int {
	if ctx.Cmd == nil {
		return 0
	}
	return ctx.Cmd.Int("window-id")
}
