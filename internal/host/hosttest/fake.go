// Package hosttest provides an in-memory host for layout and dispatch tests.
package hosttest

import (
	"context"
	"fmt"

	"github.com/regenrek/kitproj/internal/host"
)

// Call records one host operation.
type Call struct {
	Op     string
	Target int
	Handle host.OSWindowHandle
	Arg    string
}

// Fake is a mutable host tree that records every operation.
type Fake struct {
	Tree  host.Tree
	Calls []Call

	// BaseEnv is the environment given to the first pane of new tabs.
	BaseEnv map[string]string
	// NilTabOn makes the n-th NewTab call (1-based) return a nil tab.
	NilTabOn int
	// PaneErr fails every NewPane call.
	PaneErr error
	// SnapshotErr fails Snapshot.
	SnapshotErr error

	nextID  int
	tabs    int
	handles map[host.OSWindowHandle]int
}

// New returns a fake seeded with tree.
func New(tree host.Tree) *Fake {
	f := &Fake{Tree: tree, nextID: 1000, handles: make(map[host.OSWindowHandle]int)}
	f.BaseEnv = map[string]string{"SHELL": "/bin/zsh"}
	return f
}

func (f *Fake) id() int {
	f.nextID++
	return f.nextID
}

func (f *Fake) record(c Call) {
	f.Calls = append(f.Calls, c)
}

// Ops returns the recorded operation names in order.
func (f *Fake) Ops() []string {
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.Op)
	}
	return out
}

// CallsFor returns the calls that targeted a pane.
func (f *Fake) CallsFor(paneID int) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Target == paneID {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls used op.
func (f *Fake) Count(op string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (f *Fake) Snapshot(context.Context) (host.Tree, error) {
	f.record(Call{Op: "snapshot"})
	if f.SnapshotErr != nil {
		return host.Tree{}, f.SnapshotErr
	}
	out := host.Tree{OSWindows: make([]host.OSWindow, 0, len(f.Tree.OSWindows))}
	for _, osw := range f.Tree.OSWindows {
		cp := osw
		cp.Tabs = make([]host.Tab, 0, len(osw.Tabs))
		for _, tab := range osw.Tabs {
			tc := tab
			tc.Panes = append([]host.Pane(nil), tab.Panes...)
			cp.Tabs = append(cp.Tabs, tc)
		}
		out.OSWindows = append(out.OSWindows, cp)
	}
	return out, nil
}

func (f *Fake) NewOSWindow(context.Context) (host.OSWindowHandle, error) {
	id := f.id()
	handle := host.OSWindowHandle(fmt.Sprintf("osw-%d", id))
	f.handles[handle] = id
	f.Tree.OSWindows = append(f.Tree.OSWindows, host.OSWindow{ID: id})
	f.record(Call{Op: "new_os_window", Handle: handle})
	return handle, nil
}

func (f *Fake) osWindow(handle host.OSWindowHandle) *host.OSWindow {
	id, ok := f.handles[handle]
	if !ok {
		return nil
	}
	for i := range f.Tree.OSWindows {
		if f.Tree.OSWindows[i].ID == id {
			return &f.Tree.OSWindows[i]
		}
	}
	return nil
}

func (f *Fake) tab(tabID int) *host.Tab {
	for i := range f.Tree.OSWindows {
		for j := range f.Tree.OSWindows[i].Tabs {
			if f.Tree.OSWindows[i].Tabs[j].ID == tabID {
				return &f.Tree.OSWindows[i].Tabs[j]
			}
		}
	}
	return nil
}

func (f *Fake) pane(paneID int) *host.Pane {
	for i := range f.Tree.OSWindows {
		for j := range f.Tree.OSWindows[i].Tabs {
			tab := &f.Tree.OSWindows[i].Tabs[j]
			for k := range tab.Panes {
				if tab.Panes[k].ID == paneID {
					return &tab.Panes[k]
				}
			}
		}
	}
	return nil
}

func (f *Fake) NewTab(_ context.Context, osw host.OSWindowHandle, opts host.TabOptions) (*host.Tab, error) {
	f.tabs++
	f.record(Call{Op: "new_tab", Handle: osw, Arg: opts.CwdFrom.Cwd})
	if f.NilTabOn == f.tabs {
		return nil, nil
	}
	win := f.osWindow(osw)
	if win == nil {
		return nil, fmt.Errorf("unknown os window %s", osw)
	}
	tab := host.Tab{ID: f.id()}
	tab.Panes = []host.Pane{{ID: f.id(), Cwd: opts.CwdFrom.Cwd, Env: host.CloneEnv(f.BaseEnv)}}
	win.Tabs = append(win.Tabs, tab)
	out := tab
	return &out, nil
}

func (f *Fake) NewPane(_ context.Context, tabID int, opts host.PaneOptions) (host.Pane, error) {
	f.record(Call{Op: "new_pane", Target: tabID, Arg: opts.Title})
	if f.PaneErr != nil {
		return host.Pane{}, f.PaneErr
	}
	tab := f.tab(tabID)
	if tab == nil {
		return host.Pane{}, fmt.Errorf("unknown tab %d", tabID)
	}
	pane := host.Pane{ID: f.id(), Title: opts.Title, Cwd: opts.Cwd, Env: host.CloneEnv(opts.Env)}
	tab.Panes = append(tab.Panes, pane)
	return pane, nil
}

func (f *Fake) SetTabTitle(_ context.Context, tabID int, title string) error {
	f.record(Call{Op: "set_tab_title", Target: tabID, Arg: title})
	tab := f.tab(tabID)
	if tab == nil {
		return fmt.Errorf("unknown tab %d", tabID)
	}
	tab.Title = title
	return nil
}

func (f *Fake) SetPaneTitle(_ context.Context, paneID int, title string) error {
	f.record(Call{Op: "set_pane_title", Target: paneID, Arg: title})
	pane := f.pane(paneID)
	if pane == nil {
		return fmt.Errorf("unknown pane %d", paneID)
	}
	pane.Title = title
	return nil
}

func (f *Fake) MarkOSWindowForClose(_ context.Context, osw host.OSWindowHandle) error {
	f.record(Call{Op: "close_os_window", Handle: osw})
	id, ok := f.handles[osw]
	if !ok {
		return nil
	}
	kept := f.Tree.OSWindows[:0]
	for _, win := range f.Tree.OSWindows {
		if win.ID != id {
			kept = append(kept, win)
		}
	}
	f.Tree.OSWindows = kept
	return nil
}

func (f *Fake) FocusOSWindow(_ context.Context, paneID int) error {
	f.record(Call{Op: "focus", Target: paneID})
	return nil
}

func (f *Fake) SignalChild(_ context.Context, paneID int, signal string) error {
	f.record(Call{Op: "signal", Target: paneID, Arg: signal})
	return nil
}

func (f *Fake) ClearScreen(_ context.Context, paneID int) error {
	f.record(Call{Op: "clear", Target: paneID})
	return nil
}

func (f *Fake) SendText(_ context.Context, paneID int, text string) error {
	f.record(Call{Op: "send_text", Target: paneID, Arg: text})
	return nil
}

// Pane returns a pane from the current tree.
func (f *Fake) Pane(_ context.Context, id int) (host.Pane, error) {
	pane, _, ok := f.Tree.PaneByID(id)
	if !ok {
		return host.Pane{}, fmt.Errorf("unknown pane %d", id)
	}
	return pane, nil
}
