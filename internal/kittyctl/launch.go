package kittyctl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/regenrek/kitproj/internal/host"
	"github.com/regenrek/kitproj/internal/identity"
)

// NewOSWindow allocates a handle. kitty cannot open an empty OS-window, so the
// window is realized by the first NewTab on the handle.
func (c *Client) NewOSWindow(context.Context) (host.OSWindowHandle, error) {
	handle := host.OSWindowHandle(uuid.NewString())
	c.osWindows[handle] = false
	return handle, nil
}

func osWindowMatch(osw host.OSWindowHandle) string {
	return "var:" + identity.OSWindowVar + "=" + string(osw)
}

func osWindowVar(osw host.OSWindowHandle) string {
	return identity.OSWindowVar + "=" + string(osw)
}

// NewTab opens a tab in osw. It returns a nil tab when kitty launched a window
// that does not show up in the following snapshot.
func (c *Client) NewTab(ctx context.Context, osw host.OSWindowHandle, opts host.TabOptions) (*host.Tab, error) {
	realized, ok := c.osWindows[osw]
	if !ok {
		return nil, fmt.Errorf("unknown os window handle %q", osw)
	}
	args := []string{"launch"}
	if realized {
		args = append(args, "--type=tab", "--match", osWindowMatch(osw))
	} else {
		args = append(args, "--type=os-window")
	}
	if cwd := strings.TrimSpace(opts.CwdFrom.Cwd); cwd != "" {
		args = append(args, "--cwd", cwd)
	}
	args = append(args, "--var", osWindowVar(osw))
	windowID, err := c.launch(ctx, args)
	if err != nil {
		return nil, err
	}
	c.osWindows[osw] = true

	tree, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	tab, _, ok := tree.TabContaining(windowID)
	if !ok {
		slog.Warn("kittyctl: launched window has no tab", slog.Int("window", windowID))
		return nil, nil
	}
	c.tabOwner[tab.ID] = osw
	return &tab, nil
}

// NewPane opens a window inside tabID.
func (c *Client) NewPane(ctx context.Context, tabID int, opts host.PaneOptions) (host.Pane, error) {
	if err := opts.Location.Validate(); err != nil {
		return host.Pane{}, err
	}
	args := []string{"launch", "--type=window", "--match", matchID(tabID)}
	if opts.Location != host.LocationDefault {
		args = append(args, "--location", string(opts.Location))
	}
	if opts.NextTo > 0 {
		args = append(args, "--next-to", matchID(opts.NextTo))
	}
	if opts.Cwd != "" {
		args = append(args, "--cwd", opts.Cwd)
	}
	if opts.Title != "" {
		args = append(args, "--title", opts.Title)
	}
	args = append(args, envArgs(opts.Env)...)
	if osw, ok := c.tabOwner[tabID]; ok {
		args = append(args, "--var", osWindowVar(osw))
	}
	id, err := c.launch(ctx, args)
	if err != nil {
		return host.Pane{}, err
	}
	return host.Pane{ID: id, Title: opts.Title, Cwd: opts.Cwd, Env: host.CloneEnv(opts.Env)}, nil
}

// MarkOSWindowForClose closes every window tagged with the handle. Unrealized
// handles are dropped without talking to kitty.
func (c *Client) MarkOSWindowForClose(ctx context.Context, osw host.OSWindowHandle) error {
	realized, ok := c.osWindows[osw]
	delete(c.osWindows, osw)
	if !ok || !realized {
		return nil
	}
	for tabID, owner := range c.tabOwner {
		if owner == osw {
			delete(c.tabOwner, tabID)
		}
	}
	_, err := c.remote(ctx, "", "close-window", "--match", osWindowMatch(osw), "--ignore-no-match")
	return err
}

func (c *Client) launch(ctx context.Context, args []string) (int, error) {
	out, err := c.remote(ctx, "", args...)
	if err != nil {
		return 0, err
	}
	raw := strings.TrimSpace(string(out))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("kitten @ launch returned no window id")
	}
	return id, nil
}

// envArgs renders env as sorted --env flags.
func envArgs(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, "--env", k+"="+env[k])
	}
	return out
}
