package kittyctl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/regenrek/kitproj/internal/host"
)

type lsOSWindow struct {
	ID        int     `json:"id"`
	IsFocused bool    `json:"is_focused"`
	Tabs      []lsTab `json:"tabs"`
}

type lsTab struct {
	ID       int        `json:"id"`
	Title    string     `json:"title"`
	IsActive bool       `json:"is_active"`
	Windows  []lsWindow `json:"windows"`
}

type lsWindow struct {
	ID                  int               `json:"id"`
	Title               string            `json:"title"`
	IsActive            bool              `json:"is_active"`
	Cwd                 string            `json:"cwd"`
	Cmdline             []string          `json:"cmdline"`
	Env                 map[string]string `json:"env"`
	UserVars            map[string]string `json:"user_vars"`
	ForegroundProcesses []lsProcess       `json:"foreground_processes"`
}

type lsProcess struct {
	PID     int      `json:"pid"`
	Cwd     string   `json:"cwd"`
	Cmdline []string `json:"cmdline"`
}

// Snapshot returns the current OS-window tree.
func (c *Client) Snapshot(ctx context.Context) (host.Tree, error) {
	out, err := c.remote(ctx, "", "ls")
	if err != nil {
		return host.Tree{}, err
	}
	return parseLS(out)
}

// Pane returns the pane with id from a fresh snapshot.
func (c *Client) Pane(ctx context.Context, id int) (host.Pane, error) {
	tree, err := c.Snapshot(ctx)
	if err != nil {
		return host.Pane{}, err
	}
	pane, _, ok := tree.PaneByID(id)
	if !ok {
		return host.Pane{}, fmt.Errorf("kitty window %d not found", id)
	}
	return pane, nil
}

func parseLS(data []byte) (host.Tree, error) {
	var raw []lsOSWindow
	if err := json.Unmarshal(data, &raw); err != nil {
		return host.Tree{}, fmt.Errorf("parse kitten @ ls: %w", err)
	}
	tree := host.Tree{OSWindows: make([]host.OSWindow, 0, len(raw))}
	for _, osw := range raw {
		out := host.OSWindow{ID: osw.ID, Focused: osw.IsFocused, Tabs: make([]host.Tab, 0, len(osw.Tabs))}
		for _, tab := range osw.Tabs {
			t := host.Tab{ID: tab.ID, Title: tab.Title, Active: tab.IsActive, Panes: make([]host.Pane, 0, len(tab.Windows))}
			for _, win := range tab.Windows {
				t.Panes = append(t.Panes, toPane(win))
			}
			out.Tabs = append(out.Tabs, t)
		}
		tree.OSWindows = append(tree.OSWindows, out)
	}
	return tree, nil
}

// toPane reports the foreground process cwd and cmdline when kitty knows them.
func toPane(win lsWindow) host.Pane {
	pane := host.Pane{
		ID:      win.ID,
		Title:   win.Title,
		Cwd:     win.Cwd,
		Env:     host.CloneEnv(win.Env),
		Cmdline: append([]string(nil), win.Cmdline...),
		Active:  win.IsActive,
	}
	if n := len(win.ForegroundProcesses); n > 0 {
		fg := win.ForegroundProcesses[n-1]
		if fg.Cwd != "" {
			pane.Cwd = fg.Cwd
		}
		if len(fg.Cmdline) > 0 {
			pane.Cmdline = append([]string(nil), fg.Cmdline...)
		}
	}
	return pane
}
