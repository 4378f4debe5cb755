// Package host models the terminal's OS-window -> tab -> pane graph as a
// read-only snapshot that core operations query per call.
package host

// Tree is a snapshot of every open OS-window in host order.
type Tree struct {
	OSWindows []OSWindow `json:"os_windows"`
}

// OSWindow is a top-level window and its tabs.
type OSWindow struct {
	ID      int   `json:"id"`
	Focused bool  `json:"focused,omitempty"`
	Tabs    []Tab `json:"tabs"`
}

// Tab is an ordered group of panes.
type Tab struct {
	ID     int    `json:"id"`
	Title  string `json:"title,omitempty"`
	Active bool   `json:"active,omitempty"`
	Panes  []Pane `json:"panes"`
}

// Pane is a terminal surface. Cwd, Env and Cmdline describe its foreground process.
type Pane struct {
	ID      int               `json:"id"`
	Title   string            `json:"title,omitempty"`
	Cwd     string            `json:"cwd,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Cmdline []string          `json:"cmdline,omitempty"`
	Active  bool              `json:"active,omitempty"`
}

// FindPane returns the first pane titled title, scanning OS-windows, then tabs,
// then panes in order. A miss is a normal outcome.
func (t Tree) FindPane(title string) (Pane, bool) {
	for _, osw := range t.OSWindows {
		if pane, ok := osw.FindPane(title); ok {
			return pane, true
		}
	}
	return Pane{}, false
}

// FindPane searches this OS-window's tabs in order.
func (w OSWindow) FindPane(title string) (Pane, bool) {
	for _, tab := range w.Tabs {
		if pane, ok := tab.FindPane(title); ok {
			return pane, true
		}
	}
	return Pane{}, false
}

// FindPane searches this tab's panes in order.
func (t Tab) FindPane(title string) (Pane, bool) {
	if title == "" {
		return Pane{}, false
	}
	for _, pane := range t.Panes {
		if pane.Title == title {
			return pane, true
		}
	}
	return Pane{}, false
}

// PaneByID locates a pane and the OS-window that owns it.
func (t Tree) PaneByID(id int) (Pane, OSWindow, bool) {
	for _, osw := range t.OSWindows {
		for _, tab := range osw.Tabs {
			for _, pane := range tab.Panes {
				if pane.ID == id {
					return pane, osw, true
				}
			}
		}
	}
	return Pane{}, OSWindow{}, false
}

// TabContaining returns the tab holding the pane with the given id.
func (t Tree) TabContaining(paneID int) (Tab, OSWindow, bool) {
	for _, osw := range t.OSWindows {
		for _, tab := range osw.Tabs {
			for _, pane := range tab.Panes {
				if pane.ID == paneID {
					return tab, osw, true
				}
			}
		}
	}
	return Tab{}, OSWindow{}, false
}

// LastPane returns the most recently added pane of the tab.
func (t Tab) LastPane() (Pane, bool) {
	if len(t.Panes) == 0 {
		return Pane{}, false
	}
	return t.Panes[len(t.Panes)-1], true
}

// CloneEnv copies an environment map so callers can hand it to the host without aliasing.
func CloneEnv(env map[string]string) map[string]string {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
