package initcfg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/regenrek/kitproj/internal/cli/root"
	"github.com/regenrek/kitproj/internal/cli/spec"
	"github.com/regenrek/kitproj/internal/manifest"
	"github.com/regenrek/kitproj/internal/roles"
	"github.com/regenrek/kitproj/internal/shellcmd"
)

func runInitCmd(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	specDoc := &spec.Spec{
		App:         spec.AppSpec{Name: "kitproj"},
		GlobalFlags: []spec.Flag{{Name: "config", Type: "path"}},
		Commands: []spec.Command{{Name: "init", ID: "init", JSON: true, Flags: []spec.Flag{
			{Name: "entry", Type: "string"},
			{Name: "force", Type: "bool"},
			{Name: "yes", Type: "bool"},
			{Name: "json", Type: "bool"},
		}}},
	}
	reg := root.NewRegistry()
	Register(reg)
	var out bytes.Buffer
	deps := root.Dependencies{Version: "test", WorkDir: dir, Stdout: &out, Stderr: &out, Stdin: strings.NewReader(stdin)}
	app, err := root.BuildApp(specDoc, deps, reg)
	if err != nil {
		t.Fatalf("BuildApp() error: %v", err)
	}
	err = app.Run(context.Background(), append([]string{"kitproj"}, args...))
	return out.String(), err
}

func TestStarterManifestResolves(t *testing.T) {
	data, err := StarterManifest("demo")
	if err != nil {
		t.Fatalf("StarterManifest error: %v", err)
	}
	m, err := manifest.Parse("starter", data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	tokens, ok := m.Lookup("demo", roles.Log)
	if !ok {
		t.Fatalf("log role missing")
	}
	cmd, err := shellcmd.Serialize(tokens)
	if err != nil || cmd != "tail -f build.log" {
		t.Fatalf("log command = %q, %v", cmd, err)
	}
}

func TestInitWritesManifestAndConfig(t *testing.T) {
	t.Setenv("KITPROJ_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	out, err := runInitCmd(t, dir, "", "--config", cfgPath, "init", "--entry", "api")
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	m, err := manifest.Load(filepath.Join(dir, ".kitty-session.json"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(m.Entries(), []string{"api"}) {
		t.Fatalf("entries = %v", m.Entries())
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("expected config: %v", err)
	}
	if !strings.Contains(out, "run -build api") {
		t.Fatalf("out = %q", out)
	}
}

func TestInitRefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".kitty-session.json")
	if err := os.WriteFile(path, []byte(`{"keep": {}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	_, err := runInitCmd(t, dir, "", "--config", cfgPath, "init")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("err = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"keep": {}}` {
		t.Fatalf("manifest clobbered: %s", data)
	}
}

func TestInitForceAsksBeforeOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".kitty-session.json")
	if err := os.WriteFile(path, []byte(`{"keep": {}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	_, err := runInitCmd(t, dir, "n\n", "--config", cfgPath, "init", "--force")
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("err = %v", err)
	}
	if _, err := runInitCmd(t, dir, "", "--config", cfgPath, "init", "--force", "--yes", "--entry", "web"); err != nil {
		t.Fatalf("init --force --yes error: %v", err)
	}
	m, err := manifest.Load(path)
	if err != nil || !reflect.DeepEqual(m.Entries(), []string{"web"}) {
		t.Fatalf("entries = %v, %v", m, err)
	}
}

func TestInitJSON(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	out, err := runInitCmd(t, dir, "", "--config", cfgPath, "init", "--json")
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	var env struct {
		Ok   bool `json:"ok"`
		Data struct {
			Details map[string]any `json:"details"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, out)
	}
	if !env.Ok || env.Data.Details["entry"] != filepath.Base(dir) || env.Data.Details["config_written"] != true {
		t.Fatalf("payload = %+v", env)
	}
}
