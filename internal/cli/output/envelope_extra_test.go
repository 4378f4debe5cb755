package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/regenrek/kitproj/internal/host"
)

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestNewMetaWithDuration(t *testing.T) {
	meta := NewMeta("panes", "1.2.3")
	if meta.Command != "panes" {
		t.Fatalf("expected command set, got %q", meta.Command)
	}
	if meta.SchemaVersion != SchemaVersion {
		t.Fatalf("expected schema version %q, got %q", SchemaVersion, meta.SchemaVersion)
	}
	if meta.Version != "1.2.3" {
		t.Fatalf("expected version set, got %q", meta.Version)
	}
	withDuration := WithDuration(meta, time.Now().Add(-2*time.Second))
	if withDuration.DurationMS <= 0 {
		t.Fatalf("expected duration > 0, got %f", withDuration.DurationMS)
	}
}

func TestWriteErrorDefaults(t *testing.T) {
	buf := &bytes.Buffer{}
	meta := NewMeta("panes", "1.2.3")
	if err := WriteError(buf, meta, "", "", nil); err != nil {
		t.Fatalf("WriteError: %v", err)
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Ok {
		t.Fatalf("expected ok=false")
	}
	if env.Error.Code != "unknown" || env.Error.Message != "unknown error" {
		t.Fatalf("unexpected defaults: %+v", env.Error)
	}
}

func TestWriteSuccessErrorPropagation(t *testing.T) {
	meta := NewMeta("panes", "1.2.3")
	err := WriteSuccess(errWriter{}, meta, map[string]string{"ok": "true"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "encode json") {
		t.Fatalf("expected encode json error, got %v", err)
	}
}

func TestWritePaneList(t *testing.T) {
	buf := &bytes.Buffer{}
	list := PaneList{
		Tree:  host.Tree{OSWindows: []host.OSWindow{{ID: 1, Tabs: []host.Tab{{ID: 2, Panes: []host.Pane{{ID: 3, Title: "project-build", Cwd: "/p"}}}}}}},
		Roles: []RolePane{{Role: "build", PaneID: 3, TabID: 2, OSWindowID: 1, Cwd: "/p"}},
	}
	if err := WriteSuccess(buf, NewMeta("panes", "test"), list); err != nil {
		t.Fatalf("WriteSuccess: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"os_windows":[{"id":1`, `"role":"build"`, `"pane_id":3`, `"cwd":"/p"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s: %s", want, out)
		}
	}
}
