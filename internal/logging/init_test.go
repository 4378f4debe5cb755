package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestInitStderrTextUsesCharmHandler(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	level := "info"
	closeFn, err := Init(context.Background(), Config{Level: &level}, InitOptions{Stderr: &buf, Mode: ModeCLI})
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer closeFn()
	slog.Info("dispatched", slog.String("role", "build"))
	out := buf.String()
	if !strings.Contains(out, "dispatched") || !strings.Contains(out, "role=build") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInitFileSinkWritesJSON(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "kitproj.log")
	closeFn, err := Init(context.Background(), Config{File: &path}, InitOptions{Mode: ModeKitten})
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	slog.Info("layout built", slog.String("kind", "double"))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"double"`) || !strings.Contains(string(data), `"mode":"kitten"`) {
		t.Fatalf("unexpected log %q", data)
	}
}

func TestInitRejectsInvalidLevel(t *testing.T) {
	restoreDefault(t)
	level := "loud"
	if _, err := Init(context.Background(), Config{Level: &level}, InitOptions{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogCompress, "off")
	cfg := DefaultConfig(ModeCLI).WithEnv()
	cfg, err := cfg.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if *cfg.Level != "debug" || *cfg.Compress {
		t.Fatalf("level=%q compress=%v", *cfg.Level, *cfg.Compress)
	}
}

func TestModeFromArgs(t *testing.T) {
	cases := map[string]struct {
		args []string
		want Mode
	}{
		"empty":       {nil, ModeCLI},
		"layout":      {[]string{"kitproj", "layout", "-type", "single"}, ModeKitten},
		"global flag": {[]string{"kitproj", "--window-id", "5", "run", "-build", "dev"}, ModeKitten},
		"inline flag": {[]string{"kitproj", "--to=unix:/tmp/k", "layout"}, ModeKitten},
		"bool flag":   {[]string{"kitproj", "-v", "panes"}, ModeCLI},
		"panes":       {[]string{"kitproj", "panes"}, ModeCLI},
	}
	for name, tc := range cases {
		if got := ModeFromArgs(tc.args); got != tc.want {
			t.Fatalf("%s: ModeFromArgs = %v, want %v", name, got, tc.want)
		}
	}
}
