package entry

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/kitproj/internal/cli/root"
)

func testDeps(out *bytes.Buffer) root.Dependencies {
	deps := root.DefaultDependencies("test")
	deps.Stdout = out
	deps.Stderr = out
	deps.Stdin = strings.NewReader("")
	return deps
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("KITPROJ_CONFIG_DIR", dir)
	t.Setenv("KITPROJ_CONFIG", "")
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("KITPROJ_LOG_SINK", "stderr")
	return dir
}

func TestRunVersionFlagExitsZero(t *testing.T) {
	dir := isolate(t)
	var out bytes.Buffer
	if code := run([]string{"kitproj", "--version"}, "test", testDeps(&out)); code != 0 {
		t.Fatalf("exit=%d out=%q", code, out.String())
	}
	if !strings.Contains(out.String(), "kitproj test") {
		t.Fatalf("out=%q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yml")); err != nil {
		t.Fatalf("expected default config: %v", err)
	}
}

func TestRunAliasName(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	if code := run([]string{"/usr/local/bin/kp", "version"}, "test", testDeps(&out)); code != 0 {
		t.Fatalf("exit=%d out=%q", code, out.String())
	}
	if !strings.HasPrefix(out.String(), "kp test") {
		t.Fatalf("out=%q", out.String())
	}
}

func TestRunBadConfigFailsCLI(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("dispatch:\n  signal: SIGNOPE\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	if code := run([]string{"kitproj", "version"}, "test", testDeps(&out)); code != 1 {
		t.Fatalf("exit=%d", code)
	}
	if !strings.Contains(out.String(), "load config") {
		t.Fatalf("out=%q", out.String())
	}
}

func TestExitCode(t *testing.T) {
	var out bytes.Buffer
	if code := exitCode(&out, "kitproj", cli.Exit("", 3)); code != 3 || out.Len() != 0 {
		t.Fatalf("code=%d out=%q", code, out.String())
	}
	if code := exitCode(&out, "kitproj", errors.New("boom")); code != 1 || out.String() != "kitproj: boom\n" {
		t.Fatalf("code=%d out=%q", code, out.String())
	}
}
