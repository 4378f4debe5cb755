package kittyctl

import (
	"context"
	"testing"

	"github.com/regenrek/kitproj/internal/host"
)

const launchedLS = `[{"id": 2, "tabs": [{"id": 40, "windows": [{"id": 77, "cwd": "/w"}]}]}]`

func TestNewTabRealizesOSWindowThenAddsTabs(t *testing.T) {
	client := newTestClient(newFakeRunner(t), "")
	ctx := context.Background()
	osw, err := client.NewOSWindow(ctx)
	if err != nil || osw == "" {
		t.Fatalf("NewOSWindow: %q %v", osw, err)
	}
	tag := "kitproj_osw=" + string(osw)
	runner := newFakeRunner(t,
		cmdSpec{args: []string{"@", "launch", "--type=os-window", "--cwd", "/w", "--var", tag}, stdout: "77\n"},
		cmdSpec{args: []string{"@", "ls"}, stdout: launchedLS},
		cmdSpec{args: []string{"@", "launch", "--type=tab", "--match", "var:" + tag, "--var", tag}, stdout: "78"},
		cmdSpec{args: []string{"@", "ls"}, stdout: `[{"id": 2, "tabs": [{"id": 40, "windows": [{"id": 77}]}, {"id": 41, "windows": [{"id": 78}]}]}]`},
	)
	client.run = runner.run

	tab, err := client.NewTab(ctx, osw, host.TabOptions{CwdFrom: host.Pane{ID: 5, Cwd: "/w"}})
	if err != nil || tab == nil || tab.ID != 40 {
		t.Fatalf("first tab = %+v, %v", tab, err)
	}
	tab, err = client.NewTab(ctx, osw, host.TabOptions{})
	if err != nil || tab == nil || tab.ID != 41 {
		t.Fatalf("second tab = %+v, %v", tab, err)
	}
	runner.assertDone()
}

func TestNewTabMissingFromSnapshotIsNil(t *testing.T) {
	client := newTestClient(newFakeRunner(t), "")
	osw, _ := client.NewOSWindow(context.Background())
	tag := "kitproj_osw=" + string(osw)
	runner := newFakeRunner(t,
		cmdSpec{args: []string{"@", "launch", "--type=os-window", "--var", tag}, stdout: "77"},
		cmdSpec{args: []string{"@", "ls"}, stdout: "[]"},
	)
	client.run = runner.run
	tab, err := client.NewTab(context.Background(), osw, host.TabOptions{})
	if err != nil || tab != nil {
		t.Fatalf("tab = %+v, err = %v; want nil, nil", tab, err)
	}
}

func TestNewTabUnknownHandle(t *testing.T) {
	client := newTestClient(newFakeRunner(t), "")
	if _, err := client.NewTab(context.Background(), "nope", host.TabOptions{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewPaneArgs(t *testing.T) {
	client := newTestClient(newFakeRunner(t), "")
	client.tabOwner[40] = "abc"
	runner := newFakeRunner(t, cmdSpec{
		args: []string{
			"@", "launch", "--type=window", "--match", "id:40",
			"--location", "hsplit", "--next-to", "id:77",
			"--cwd", "/w", "--title", "project-log",
			"--env", "PATH=/bin", "--var", "kitproj_osw=abc",
		},
		stdout: "79\n",
	})
	client.run = runner.run
	pane, err := client.NewPane(context.Background(), 40, host.PaneOptions{
		Title:    "project-log",
		Env:      map[string]string{"PATH": "/bin"},
		Cwd:      "/w",
		Location: host.LocationHSplit,
		NextTo:   77,
	})
	if err != nil {
		t.Fatalf("NewPane: %v", err)
	}
	runner.assertDone()
	if pane.ID != 79 || pane.Title != "project-log" || pane.Env["PATH"] != "/bin" {
		t.Fatalf("pane = %+v", pane)
	}
}

func TestNewPaneRequiresWindowID(t *testing.T) {
	runner := newFakeRunner(t, cmdSpec{args: []string{"@", "launch", "--type=window", "--match", "id:40"}, stdout: "ok"})
	client := newTestClient(runner, "")
	if _, err := client.NewPane(context.Background(), 40, host.PaneOptions{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMarkOSWindowForClose(t *testing.T) {
	client := newTestClient(newFakeRunner(t), "")
	ctx := context.Background()

	pending, _ := client.NewOSWindow(ctx)
	if err := client.MarkOSWindowForClose(ctx, pending); err != nil {
		t.Fatalf("unrealized close: %v", err)
	}

	client.osWindows["abc"] = true
	client.tabOwner[40] = "abc"
	runner := newFakeRunner(t, cmdSpec{args: []string{"@", "close-window", "--match", "var:kitproj_osw=abc", "--ignore-no-match"}})
	client.run = runner.run
	if err := client.MarkOSWindowForClose(ctx, "abc"); err != nil {
		t.Fatalf("close: %v", err)
	}
	runner.assertDone()
	if _, ok := client.tabOwner[40]; ok {
		t.Fatalf("tab owner should be dropped")
	}
}
