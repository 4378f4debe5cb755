package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/regenrek/kitproj/internal/appdirs"
	"github.com/regenrek/kitproj/internal/identity"
)

// LogFileName is the default file sink name inside the runtime dir.
const LogFileName = "kitproj.log"

type InitOptions struct {
	App     string
	Version string
	Mode    Mode
	// Stderr overrides the stderr sink; tests use it to capture output.
	Stderr io.Writer
}

type initResult struct {
	Logger *slog.Logger
	Close  func() error
}

// Init installs the default slog logger and returns its closer.
func Init(ctx context.Context, cfg Config, opts InitOptions) (func() error, error) {
	if opts.App == "" {
		opts.App = identity.AppSlug
	}
	if opts.Mode == 0 {
		opts.Mode = ModeCLI
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg = mergeConfig(DefaultConfig(opts.Mode), cfg)
	cfg = cfg.WithEnv()
	normalized, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	res, err := buildLogger(ctx, normalized, opts)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(res.Logger)
	setIncludePayloads(normalized.IncludePayloads != nil && *normalized.IncludePayloads)
	return res.Close, nil
}

func mergeConfig(base, override Config) Config {
	out := base
	pickString := func(dst **string, v *string) {
		if v != nil {
			*dst = v
		}
	}
	pickBool := func(dst **bool, v *bool) {
		if v != nil {
			*dst = v
		}
	}
	pickInt := func(dst **int, v *int) {
		if v != nil {
			*dst = v
		}
	}
	pickString(&out.Level, override.Level)
	pickString(&out.Format, override.Format)
	pickString(&out.Sink, override.Sink)
	pickString(&out.File, override.File)
	pickBool(&out.AddSource, override.AddSource)
	pickBool(&out.IncludePayloads, override.IncludePayloads)
	pickInt(&out.MaxSizeMB, override.MaxSizeMB)
	pickInt(&out.MaxBackups, override.MaxBackups)
	pickInt(&out.MaxAgeDays, override.MaxAgeDays)
	pickBool(&out.Compress, override.Compress)
	return out
}

func buildLogger(_ context.Context, cfg Config, opts InitOptions) (initResult, error) {
	level := parseLevel(cfg.Level)
	sink := SinkStderr
	if cfg.Sink != nil {
		sink = Sink(*cfg.Sink)
	}
	format := FormatText
	if cfg.Format != nil {
		format = Format(*cfg.Format)
	}
	addSource := cfg.AddSource != nil && *cfg.AddSource

	writer, closeFn, err := resolveWriter(cfg, sink, opts.Stderr)
	if err != nil {
		return initResult{}, err
	}
	var handler slog.Handler
	switch {
	case format == FormatJSON:
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level, AddSource: addSource})
	case sink == SinkStderr:
		// Human readable output for the terminal.
		handler = charmlog.NewWithOptions(writer, charmlog.Options{
			Level:           charmlog.Level(level.Level()),
			ReportCaller:    addSource,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          opts.App,
		})
	default:
		handler = slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level, AddSource: addSource})
	}

	logger := slog.New(handler).With(
		slog.String("version", opts.Version),
		slog.String("mode", opts.Mode.String()),
	)
	return initResult{Logger: logger, Close: closeFn}, nil
}

func parseLevel(value *string) slog.Leveler {
	if value == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(*value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveWriter(cfg Config, sink Sink, stderr io.Writer) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch sink {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr:
		return stderr, noop, nil
	case SinkFile:
		path := ""
		if cfg.File != nil {
			path = strings.TrimSpace(*cfg.File)
		}
		isOverride := path != ""
		if !isOverride {
			dir, err := appdirs.RuntimeDir()
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(dir, LogFileName)
		}
		if err := ensureLogDir(filepath.Dir(path), isOverride); err != nil {
			return nil, nil, err
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    derefInt(cfg.MaxSizeMB, 20),
			MaxBackups: derefInt(cfg.MaxBackups, 5),
			MaxAge:     derefInt(cfg.MaxAgeDays, 7),
			Compress:   derefBool(cfg.Compress, true),
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}
}

func derefInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func derefBool(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
