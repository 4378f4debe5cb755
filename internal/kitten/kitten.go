// Package kitten implements the two entry points kitty key mappings invoke:
// building a project layout and dispatching manifest commands. Every failure
// is shown as a modal; none escapes as a crash.
package kitten

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/regenrek/kitproj/internal/dialog"
	"github.com/regenrek/kitproj/internal/dispatch"
	"github.com/regenrek/kitproj/internal/host"
	"github.com/regenrek/kitproj/internal/identity"
	"github.com/regenrek/kitproj/internal/layout"
	"github.com/regenrek/kitproj/internal/manifest"
)

// Host is everything the kittens need from kitty.
type Host interface {
	layout.Host
	dispatch.Host
	Pane(ctx context.Context, id int) (host.Pane, error)
}

// Kittens binds the entry points to a host and a user interface.
type Kittens struct {
	Host     Host
	Reporter dialog.Reporter
	Prompter dialog.Prompter
	Manifest manifest.Resolver
	Policy   dispatch.Policy
	// OriginPaneID is the pane the key mapping was pressed in.
	OriginPaneID int
}

// Layout handles `layout -type single|double|input`. It returns ErrReported
// when a failure was shown to the user and nil otherwise.
func (k *Kittens) Layout(ctx context.Context, args []string) error {
	answer, err := ParseLayoutArgs(args)
	if err != nil {
		return k.usage(err)
	}
	kind := answer.Value
	if answer.Prompt {
		options := make([]string, 0, len(layout.Kinds))
		for _, kd := range layout.Kinds {
			options = append(options, string(kd))
		}
		kind, err = k.Prompter.Choose("Layout type", options)
		if err != nil {
			return k.abort(err)
		}
	}
	if _, err := layout.ParseKind(kind); err != nil {
		return report(k.Reporter, err)
	}
	origin, err := k.origin(ctx)
	if err != nil {
		return report(k.Reporter, err)
	}
	res, err := (&layout.Builder{Host: k.Host}).Build(ctx, kind, origin)
	if err != nil {
		return report(k.Reporter, err)
	}
	slog.Info("layout: built", slog.String("kind", string(res.Kind)), slog.Int("os_windows", len(res.OSWindows)), slog.Int("panes", len(res.Panes)))
	return nil
}

// Run handles `run -build <entry>|input`.
func (k *Kittens) Run(ctx context.Context, args []string) error {
	answer, err := ParseRunArgs(args)
	if err != nil {
		return k.usage(err)
	}
	entry := answer.Value
	if answer.Prompt {
		entry, err = k.Prompter.Ask(fmt.Sprintf("Please enter an option present in your %q", k.manifestName()), k.suggestions(ctx))
		if err != nil {
			return k.abort(err)
		}
	}
	if err := k.Prompter.Acknowledge(fmt.Sprintf("Args Passed: [%s].", strings.Join(args, ", "))); err != nil {
		return k.abort(err)
	}
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil
	}
	d := &dispatch.Dispatcher{Host: k.Host, Resolver: k.Manifest, Policy: k.Policy}
	res, err := d.Dispatch(ctx, entry)
	if err != nil {
		return report(k.Reporter, err)
	}
	for _, f := range res.Failures {
		k.Reporter.Report(Title(f.Err), Message(f.Err))
	}
	if len(res.Failures) > 0 {
		return ErrReported
	}
	return nil
}

func (k *Kittens) origin(ctx context.Context) (host.Pane, error) {
	if k.OriginPaneID <= 0 {
		return host.Pane{}, errors.New("the kitty window that started the kitten is unknown; set KITTY_WINDOW_ID or --window-id")
	}
	return k.Host.Pane(ctx, k.OriginPaneID)
}

func (k *Kittens) manifestName() string {
	if k.Manifest.File != "" {
		return k.Manifest.File
	}
	return identity.ManifestFile
}

// suggestions lists the entries of the origin pane's manifest, if readable.
func (k *Kittens) suggestions(ctx context.Context) []string {
	origin, err := k.origin(ctx)
	if err != nil {
		return nil
	}
	entries, err := k.Manifest.Entries(origin.Cwd)
	if err != nil {
		slog.Debug("run: no entry suggestions", slog.String("cwd", origin.Cwd), slog.Any("err", err))
		return nil
	}
	return entries
}

// usage shows the usage message and waits; the kitten then does nothing.
func (k *Kittens) usage(err error) error {
	if ackErr := k.Prompter.Acknowledge(err.Error()); ackErr != nil {
		slog.Debug("kitten: usage acknowledgement failed", slog.Any("err", ackErr))
	}
	return nil
}

// abort treats a cancelled or impossible prompt as an empty answer.
func (k *Kittens) abort(err error) error {
	slog.Debug("kitten: prompt aborted", slog.Any("err", err))
	return nil
}
