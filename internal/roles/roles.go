// Package roles names the semantic panes a project layout creates and the
// dispatcher later looks up by title.
package roles

// Role identifies a pane's purpose and doubles as the manifest key holding its command.
type Role string

const (
	Build Role = "build"
	Log   Role = "log"
)

const (
	titlePrefix = "project-"

	// MainTitle tags the main pane and tab of the double layout.
	MainTitle = titlePrefix + "main"
	// DebugTabTitle tags the tab holding the build/log panes in the double layout.
	DebugTabTitle = titlePrefix + "debug"
)

// All lists the dispatched roles in dispatch order.
var All = []Role{Build, Log}

// Title is the pane title that marks a pane as holding this role.
func (r Role) Title() string {
	return titlePrefix + string(r)
}

// Label is the capitalized role name used in user-facing messages.
func (r Role) Label() string {
	switch r {
	case Build:
		return "Build"
	case Log:
		return "Log"
	default:
		return string(r)
	}
}

// FromTitle maps a pane title back to its role.
func FromTitle(title string) (Role, bool) {
	for _, r := range All {
		if r.Title() == title {
			return r, true
		}
	}
	return "", false
}
