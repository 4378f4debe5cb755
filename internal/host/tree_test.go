package host

import "testing"

func sampleTree() Tree {
	return Tree{OSWindows: []OSWindow{
		{ID: 1, Tabs: []Tab{
			{ID: 10, Panes: []Pane{{ID: 100, Title: "zsh"}, {ID: 101, Title: "project-log"}}},
		}},
		{ID: 2, Tabs: []Tab{
			{ID: 20, Panes: []Pane{{ID: 200, Title: "project-build"}}},
			{ID: 21, Panes: []Pane{{ID: 210, Title: "project-build"}, {ID: 211, Title: "project-log"}}},
		}},
	}}
}

func TestFindPaneReturnsFirstInHostOrder(t *testing.T) {
	tree := sampleTree()
	cases := []struct {
		title string
		want  int
		found bool
	}{
		{title: "project-build", want: 200, found: true},
		{title: "project-log", want: 101, found: true},
		{title: "project-main", found: false},
		{title: "", found: false},
	}
	for _, tt := range cases {
		t.Run(tt.title, func(t *testing.T) {
			pane, ok := tree.FindPane(tt.title)
			if ok != tt.found {
				t.Fatalf("FindPane(%q) found=%v, want %v", tt.title, ok, tt.found)
			}
			if ok && pane.ID != tt.want {
				t.Fatalf("FindPane(%q) = %d, want %d", tt.title, pane.ID, tt.want)
			}
		})
	}
}

func TestOSWindowFindPaneScopesToWindow(t *testing.T) {
	tree := sampleTree()
	if _, ok := tree.OSWindows[0].FindPane("project-build"); ok {
		t.Fatalf("first OS-window has no build pane")
	}
	pane, ok := tree.OSWindows[1].FindPane("project-log")
	if !ok || pane.ID != 211 {
		t.Fatalf("FindPane(project-log) = %+v, %v", pane, ok)
	}
}

func TestEmptyTree(t *testing.T) {
	if _, ok := (Tree{}).FindPane("project-build"); ok {
		t.Fatalf("expected miss on empty tree")
	}
}

func TestPaneByID(t *testing.T) {
	tree := sampleTree()
	pane, osw, ok := tree.PaneByID(210)
	if !ok || pane.Title != "project-build" || osw.ID != 2 {
		t.Fatalf("PaneByID(210) = %+v, %d, %v", pane, osw.ID, ok)
	}
	if _, _, ok := tree.PaneByID(999); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestTabContainingAndLastPane(t *testing.T) {
	tree := sampleTree()
	tab, osw, ok := tree.TabContaining(211)
	if !ok || tab.ID != 21 || osw.ID != 2 {
		t.Fatalf("TabContaining(211) = %d, %d, %v", tab.ID, osw.ID, ok)
	}
	last, ok := tab.LastPane()
	if !ok || last.ID != 211 {
		t.Fatalf("LastPane() = %+v, %v", last, ok)
	}
	if _, ok := (Tab{}).LastPane(); ok {
		t.Fatalf("expected empty tab to have no last pane")
	}
}

func TestCloneEnv(t *testing.T) {
	src := map[string]string{"A": "1"}
	dst := CloneEnv(src)
	dst["A"] = "2"
	if src["A"] != "1" {
		t.Fatalf("CloneEnv aliased the source map")
	}
	if CloneEnv(nil) != nil {
		t.Fatalf("CloneEnv(nil) should be nil")
	}
}

func TestLocationValidate(t *testing.T) {
	for _, loc := range []Location{LocationDefault, LocationVSplit, LocationHSplit} {
		if err := loc.Validate(); err != nil {
			t.Fatalf("Validate(%q) error: %v", loc, err)
		}
	}
	if err := Location("grid").Validate(); err == nil {
		t.Fatalf("expected error for unknown location")
	}
}
