// Package panes implements the `panes` command.
package panes

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/regenrek/kitproj/internal/cli/output"
	"github.com/regenrek/kitproj/internal/cli/root"
	"github.com/regenrek/kitproj/internal/host"
	"github.com/regenrek/kitproj/internal/roles"
	"github.com/regenrek/kitproj/internal/userpath"
)

// Register registers the panes handler.
func Register(reg *root.Registry) {
	reg.Register("panes", runPanes)
}

func runPanes(ctx root.CommandContext) error {
	start := time.Now()
	meta := output.NewMeta("panes", ctx.Deps.Version)
	tree, err := snapshot(ctx)
	if err != nil {
		if ctx.JSON {
			if werr := output.WriteError(ctx.Out, meta, "kitty_unavailable", err.Error(), nil); werr != nil {
				return werr
			}
		}
		return err
	}
	if ctx.JSON {
		meta = output.WithDuration(meta, start)
		return output.WriteSuccess(ctx.Out, meta, output.PaneList{Tree: tree, Roles: RolePanes(tree)})
	}
	return WriteTree(ctx.Out, tree, ctx.WindowID())
}

func snapshot(ctx root.CommandContext) (host.Tree, error) {
	cfg, err := ctx.Config()
	if err != nil {
		return host.Tree{}, err
	}
	kitty, err := ctx.Kitty(cfg)
	if err != nil {
		return host.Tree{}, err
	}
	runCtx := ctx.Context
	if runCtx == nil {
		runCtx = context.Background()
	}
	return kitty.Snapshot(runCtx)
}

// RolePanes lists every pane carrying a role title in dispatch lookup order.
func RolePanes(tree host.Tree) []output.RolePane {
	out := []output.RolePane{}
	for _, w := range tree.OSWindows {
		for _, tab := range w.Tabs {
			for _, p := range tab.Panes {
				role, ok := roles.FromTitle(p.Title)
				if !ok {
					continue
				}
				out = append(out, output.RolePane{Role: string(role), PaneID: p.ID, TabID: tab.ID, OSWindowID: w.ID, Cwd: p.Cwd})
			}
		}
	}
	return out
}

// WriteTree prints tree as an indented outline. current marks the pane the
// command was started from.
func WriteTree(w io.Writer, tree host.Tree, current int) error {
	if len(tree.OSWindows) == 0 {
		_, err := fmt.Fprintln(w, "no kitty OS-windows")
		return err
	}
	var b strings.Builder
	for _, osw := range tree.OSWindows {
		fmt.Fprintf(&b, "os-window %d%s\n", osw.ID, flag(osw.Focused, " (focused)"))
		for _, tab := range osw.Tabs {
			fmt.Fprintf(&b, "  tab %d %q%s\n", tab.ID, tab.Title, flag(tab.Active, " (active)"))
			for _, p := range tab.Panes {
				fmt.Fprintf(&b, "    %s pane %d %q", marker(p.ID == current), p.ID, p.Title)
				if p.Cwd != "" {
					fmt.Fprintf(&b, " %s", userpath.ShortenUser(p.Cwd))
				}
				if role, ok := roles.FromTitle(p.Title); ok {
					fmt.Fprintf(&b, " [%s]", role)
				}
				b.WriteByte('\n')
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func flag(on bool, text string) string {
	if on {
		return text
	}
	return ""
}

func marker(current bool) string {
	if current {
		return "*"
	}
	return "-"
}
