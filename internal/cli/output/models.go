package output

import "github.com/regenrek/kitproj/internal/host"

type ActionResult struct {
	Action   string         `json:"action"`
	Status   string         `json:"status"`
	Message  string         `json:"message,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// RolePane locates a pane carrying a role title.
type RolePane struct {
	Role       string `json:"role"`
	PaneID     int    `json:"pane_id"`
	TabID      int    `json:"tab_id"`
	OSWindowID int    `json:"os_window_id"`
	Cwd        string `json:"cwd,omitempty"`
}

// PaneList is the payload of `panes --json`.
type PaneList struct {
	Tree  host.Tree  `json:"tree"`
	Roles []RolePane `json:"roles"`
}
