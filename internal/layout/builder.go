// Package layout builds the fixed project window arrangements.
package layout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/regenrek/kitproj/internal/host"
	"github.com/regenrek/kitproj/internal/roles"
)

// Kind selects one of the supported arrangements.
type Kind string

const (
	// Single is one OS-window: the seeded pane, a build pane split beside it and
	// a log pane split next to the build pane.
	Single Kind = "single"
	// Double is a "main" OS-window plus a "debug" OS-window holding build and log panes.
	Double Kind = "double"
)

// Kinds lists the supported kinds in prompt order.
var Kinds = []Kind{Single, Double}

var (
	ErrUnsupportedKind = errors.New("unsupported layout type")
	ErrTabCreate       = errors.New("tab creation failed")
)

// ParseKind validates a user-supplied kind.
func ParseKind(raw string) (Kind, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, k := range Kinds {
		if string(k) == value {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: kitten does not support %q", ErrUnsupportedKind, raw)
}

// Host is the subset of the terminal host the builder drives.
type Host interface {
	NewOSWindow(ctx context.Context) (host.OSWindowHandle, error)
	// NewTab returns a nil tab when the host could not create one.
	NewTab(ctx context.Context, osw host.OSWindowHandle, opts host.TabOptions) (*host.Tab, error)
	NewPane(ctx context.Context, tabID int, opts host.PaneOptions) (host.Pane, error)
	SetTabTitle(ctx context.Context, tabID int, title string) error
	SetPaneTitle(ctx context.Context, paneID int, title string) error
	MarkOSWindowForClose(ctx context.Context, osw host.OSWindowHandle) error
	// FocusOSWindow raises the OS-window that contains paneID.
	FocusOSWindow(ctx context.Context, paneID int) error
}

// Result describes what a successful build created.
type Result struct {
	Kind      Kind
	OSWindows []host.OSWindowHandle
	// Panes holds every pane the build created or retitled, in creation order.
	Panes []host.Pane
}

// Builder creates layouts through a Host. It keeps no state between builds.
type Builder struct {
	Host Host
}

// Build parses kind and lays it out starting from source. On failure every
// OS-window created so far is marked for closure.
func (b *Builder) Build(ctx context.Context, kind string, source host.Pane) (Result, error) {
	if b == nil || b.Host == nil {
		return Result{}, errors.New("layout: host is required")
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Result{}, err
	}
	run := &build{host: b.Host, source: source, res: Result{Kind: k}}
	switch k {
	case Single:
		err = run.single(ctx)
	case Double:
		err = run.double(ctx)
	}
	if err != nil {
		run.rollback(ctx)
		return Result{}, err
	}
	if err := b.Host.FocusOSWindow(ctx, source.ID); err != nil {
		slog.Warn("layout: refocus source window failed", slog.Int("pane", source.ID), slog.Any("err", err))
	}
	return run.res, nil
}

type build struct {
	host   Host
	source host.Pane
	res    Result
}

func (r *build) newOSWindow(ctx context.Context) (host.OSWindowHandle, error) {
	osw, err := r.host.NewOSWindow(ctx)
	if err != nil {
		return "", fmt.Errorf("create os window: %w", err)
	}
	r.res.OSWindows = append(r.res.OSWindows, osw)
	return osw, nil
}

// newTab returns the tab and its initial pane.
func (r *build) newTab(ctx context.Context, osw host.OSWindowHandle) (*host.Tab, host.Pane, error) {
	tab, err := r.host.NewTab(ctx, osw, host.TabOptions{CwdFrom: r.source})
	if err != nil {
		return nil, host.Pane{}, fmt.Errorf("%w: %w", ErrTabCreate, err)
	}
	if tab == nil {
		return nil, host.Pane{}, ErrTabCreate
	}
	first, ok := tab.LastPane()
	if !ok {
		return nil, host.Pane{}, fmt.Errorf("%w: tab %d has no panes", ErrTabCreate, tab.ID)
	}
	return tab, first, nil
}

func (r *build) newPane(ctx context.Context, tabID int, opts host.PaneOptions) (host.Pane, error) {
	pane, err := r.host.NewPane(ctx, tabID, opts)
	if err != nil {
		return host.Pane{}, fmt.Errorf("create %s pane: %w", opts.Title, err)
	}
	if pane.Title == "" {
		pane.Title = opts.Title
	}
	r.res.Panes = append(r.res.Panes, pane)
	return pane, nil
}

func (r *build) retitle(ctx context.Context, pane host.Pane, title string) (host.Pane, error) {
	if err := r.host.SetPaneTitle(ctx, pane.ID, title); err != nil {
		return host.Pane{}, fmt.Errorf("set pane title %s: %w", title, err)
	}
	pane.Title = title
	r.res.Panes = append(r.res.Panes, pane)
	return pane, nil
}

func (r *build) single(ctx context.Context) error {
	osw, err := r.newOSWindow(ctx)
	if err != nil {
		return err
	}
	tab, main, err := r.newTab(ctx, osw)
	if err != nil {
		return err
	}
	cwd := r.source.Cwd
	buildPane, err := r.newPane(ctx, tab.ID, host.PaneOptions{
		Title:    roles.Build.Title(),
		Env:      host.CloneEnv(main.Env),
		Cwd:      cwd,
		Location: host.LocationVSplit,
	})
	if err != nil {
		return err
	}
	_, err = r.newPane(ctx, tab.ID, host.PaneOptions{
		Title:    roles.Log.Title(),
		Env:      host.CloneEnv(buildPane.Env),
		Cwd:      cwd,
		Location: host.LocationHSplit,
		NextTo:   buildPane.ID,
	})
	return err
}

func (r *build) double(ctx context.Context) error {
	mainOSW, err := r.newOSWindow(ctx)
	if err != nil {
		return err
	}
	debugOSW, err := r.newOSWindow(ctx)
	if err != nil {
		return err
	}
	mainTab, mainPane, err := r.newTab(ctx, mainOSW)
	if err != nil {
		return err
	}
	debugTab, debugPane, err := r.newTab(ctx, debugOSW)
	if err != nil {
		return err
	}
	if err := r.host.SetTabTitle(ctx, mainTab.ID, roles.MainTitle); err != nil {
		return fmt.Errorf("set tab title: %w", err)
	}
	if err := r.host.SetTabTitle(ctx, debugTab.ID, roles.DebugTabTitle); err != nil {
		return fmt.Errorf("set tab title: %w", err)
	}
	if _, err := r.retitle(ctx, mainPane, roles.MainTitle); err != nil {
		return err
	}
	buildPane, err := r.retitle(ctx, debugPane, roles.Build.Title())
	if err != nil {
		return err
	}
	_, err = r.newPane(ctx, debugTab.ID, host.PaneOptions{
		Title:    roles.Log.Title(),
		Env:      host.CloneEnv(buildPane.Env),
		Cwd:      r.source.Cwd,
		Location: host.LocationVSplit,
		NextTo:   buildPane.ID,
	})
	return err
}

func (r *build) rollback(ctx context.Context) {
	for _, osw := range r.res.OSWindows {
		if err := r.host.MarkOSWindowForClose(ctx, osw); err != nil {
			slog.Warn("layout: close os window failed", slog.String("os_window", string(osw)), slog.Any("err", err))
		}
	}
}
