package host

import "fmt"

// Location says where a new pane is placed relative to its anchor.
type Location string

const (
	LocationDefault Location = ""
	LocationVSplit  Location = "vsplit"
	LocationHSplit  Location = "hsplit"
)

// Validate rejects locations the host does not understand.
func (l Location) Validate() error {
	switch l {
	case LocationDefault, LocationVSplit, LocationHSplit:
		return nil
	default:
		return fmt.Errorf("unsupported pane location %q", string(l))
	}
}

// OSWindowHandle identifies an OS-window created during one command. It is
// opaque to the core; hosts may realize the window lazily.
type OSWindowHandle string

// TabOptions configures a new tab.
type TabOptions struct {
	// CwdFrom seeds the tab's first pane from this pane's working directory.
	CwdFrom Pane
}

// PaneOptions configures a new pane inside an existing tab.
type PaneOptions struct {
	Title    string
	Env      map[string]string
	Cwd      string
	Location Location
	// NextTo anchors the split on this pane id; zero means the tab's active pane.
	NextTo int
}
