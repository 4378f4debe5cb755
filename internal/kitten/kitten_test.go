package kitten

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/regenrek/kitproj/internal/dialog"
	"github.com/regenrek/kitproj/internal/dialog/dialogtest"
	"github.com/regenrek/kitproj/internal/dispatch"
	"github.com/regenrek/kitproj/internal/host"
	"github.com/regenrek/kitproj/internal/host/hosttest"
)

func newKittens(t *testing.T, tree host.Tree) (*Kittens, *hosttest.Fake, *dialogtest.Recorder) {
	t.Helper()
	fake := hosttest.New(tree)
	rec := &dialogtest.Recorder{}
	return &Kittens{
		Host:         fake,
		Reporter:     rec,
		Prompter:     rec,
		Policy:       dispatch.DefaultPolicy(),
		OriginPaneID: 1,
	}, fake, rec
}

func originTree(cwd string) host.Tree {
	return host.Tree{OSWindows: []host.OSWindow{{ID: 1, Tabs: []host.Tab{{ID: 1, Panes: []host.Pane{{ID: 1, Cwd: cwd}}}}}}}
}

func TestLayoutUsageWaitsAndDoesNothing(t *testing.T) {
	k, fake, rec := newKittens(t, originTree("/p"))
	if err := k.Layout(context.Background(), []string{"layout"}); err != nil {
		t.Fatalf("Layout err = %v", err)
	}
	if len(rec.Acknowledged) != 1 || len(rec.Reports) != 0 || len(fake.Calls) != 0 {
		t.Fatalf("ack=%v reports=%v calls=%v", rec.Acknowledged, rec.Reports, fake.Ops())
	}
}

func TestLayoutUnsupportedKindReportsOnce(t *testing.T) {
	k, fake, rec := newKittens(t, originTree("/p"))
	err := k.Layout(context.Background(), []string{"layout", "-type", "triple"})
	if !errors.Is(err, ErrReported) {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(rec.Titles(), []string{"Unsupported Type"}) {
		t.Fatalf("reports = %+v", rec.Reports)
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("no host calls expected: %v", fake.Ops())
	}
}

func TestLayoutPromptsForKind(t *testing.T) {
	k, fake, rec := newKittens(t, originTree("/p"))
	rec.Answers = []string{"double"}
	if err := k.Layout(context.Background(), []string{"layout", "-type", "input"}); err != nil {
		t.Fatalf("Layout err = %v", err)
	}
	if fake.Count("new_os_window") != 2 {
		t.Fatalf("os windows = %d, want 2", fake.Count("new_os_window"))
	}
}

func TestLayoutPromptAbortIsSilent(t *testing.T) {
	k, fake, rec := newKittens(t, originTree("/p"))
	rec.Err = dialog.ErrAborted
	if err := k.Layout(context.Background(), []string{"layout", "-type", "input"}); err != nil {
		t.Fatalf("Layout err = %v", err)
	}
	if len(fake.Calls) != 0 || len(rec.Reports) != 0 {
		t.Fatalf("calls=%v reports=%v", fake.Ops(), rec.Reports)
	}
}

func TestLayoutUnknownOrigin(t *testing.T) {
	k, _, rec := newKittens(t, host.Tree{})
	k.OriginPaneID = 0
	if err := k.Layout(context.Background(), []string{"layout", "-type", "single"}); !errors.Is(err, ErrReported) {
		t.Fatalf("err = %v", err)
	}
	if len(rec.Reports) != 1 {
		t.Fatalf("reports = %+v", rec.Reports)
	}
}

func TestRunDispatchesAndReportsMissingLog(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".kitty-session.json"), []byte(`{"demo": {"build": ["make"]}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tree := originTree(dir)
	tree.OSWindows = append(tree.OSWindows, host.OSWindow{ID: 2, Tabs: []host.Tab{{ID: 2, Panes: []host.Pane{{ID: 5, Title: "project-build", Cwd: dir}}}}})
	k, fake, rec := newKittens(t, tree)

	err := k.Run(context.Background(), []string{"run", "-build", "demo"})
	if !errors.Is(err, ErrReported) {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(rec.Titles(), []string{"Log Window Not Found"}) {
		t.Fatalf("reports = %+v", rec.Reports)
	}
	if !reflect.DeepEqual(rec.Acknowledged, []string{"Args Passed: [run, -build, demo]."}) {
		t.Fatalf("ack = %v", rec.Acknowledged)
	}
	calls := fake.CallsFor(5)
	if len(calls) != 4 || calls[3].Arg != "make\n" {
		t.Fatalf("build pane calls = %+v", calls)
	}
}

func TestRunPromptsForEntry(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".kitty-session.json"), []byte(`{"demo": {"build": "make", "log": "tail"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tree := originTree(dir)
	tree.OSWindows[0].Tabs[0].Panes = append(tree.OSWindows[0].Tabs[0].Panes,
		host.Pane{ID: 2, Title: "project-build", Cwd: dir},
		host.Pane{ID: 3, Title: "project-log", Cwd: dir},
	)
	k, fake, rec := newKittens(t, tree)
	rec.Answers = []string{"demo"}
	if err := k.Run(context.Background(), []string{"run", "-build", "input"}); err != nil {
		t.Fatalf("Run err = %v", err)
	}
	if len(rec.Questions) != 1 {
		t.Fatalf("questions = %v", rec.Questions)
	}
	if fake.Count("send_text") != 2 {
		t.Fatalf("send_text = %d", fake.Count("send_text"))
	}
}

func TestRunUsage(t *testing.T) {
	k, fake, rec := newKittens(t, originTree("/p"))
	if err := k.Run(context.Background(), []string{"run", "demo", "x"}); err != nil {
		t.Fatalf("Run err = %v", err)
	}
	if len(rec.Acknowledged) != 1 || len(fake.Calls) != 0 {
		t.Fatalf("ack=%v calls=%v", rec.Acknowledged, fake.Ops())
	}
}
