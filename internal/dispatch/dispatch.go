// Package dispatch finds the project's role panes and replaces whatever runs in
// them with the entry's commands.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/regenrek/kitproj/internal/host"
	"github.com/regenrek/kitproj/internal/logging"
	"github.com/regenrek/kitproj/internal/roles"
	"github.com/regenrek/kitproj/internal/shellcmd"
)

const (
	DefaultSignal        = "SIGTERM"
	DefaultSignalRetries = 2
)

// ErrPaneNotFound is wrapped by NotFoundError.
var ErrPaneNotFound = errors.New("window not found")

// NotFoundError reports a role whose tagged pane is absent from every OS-window.
type NotFoundError struct {
	Role roles.Role
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s window not found", strings.ToLower(e.Role.Label()))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrPaneNotFound
}

// Host is the subset of the terminal host the dispatcher drives.
type Host interface {
	Snapshot(ctx context.Context) (host.Tree, error)
	SignalChild(ctx context.Context, paneID int, signal string) error
	ClearScreen(ctx context.Context, paneID int) error
	SendText(ctx context.Context, paneID int, text string) error
}

// Resolver looks up a role's command tokens from the manifest rooted at dir.
// found is false when the entry or role is absent.
type Resolver interface {
	Resolve(dir, entry string, role roles.Role) (tokens []shellcmd.Token, found bool, err error)
}

// Policy controls how a target pane is reset before injection.
type Policy struct {
	Signal string
	// SignalRetries is how many times Signal is sent; values below 1 mean 1.
	SignalRetries int
	Clear         bool
}

func DefaultPolicy() Policy {
	return Policy{Signal: DefaultSignal, SignalRetries: DefaultSignalRetries, Clear: true}
}

// Delivery records a command injected into a role pane.
type Delivery struct {
	Role    roles.Role
	PaneID  int
	Command string
}

// Failure is an error the caller should surface to the user.
type Failure struct {
	Role   roles.Role
	PaneID int
	Err    error
}

// Result is the outcome of one dispatch.
type Result struct {
	Entry      string
	Deliveries []Delivery
	Failures   []Failure
}

// Delivered reports whether role received a command.
func (r Result) Delivered(role roles.Role) (Delivery, bool) {
	for _, d := range r.Deliveries {
		if d.Role == role {
			return d, true
		}
	}
	return Delivery{}, false
}

// Dispatcher delivers manifest commands to the role panes. It holds no state
// between calls; every Dispatch re-reads the tree and the manifest.
type Dispatcher struct {
	Host     Host
	Resolver Resolver
	Policy   Policy
}

// Dispatch runs entry's commands in the build and log panes. The returned
// error covers only a failed tree snapshot; everything else lands in Result.Failures.
func (d *Dispatcher) Dispatch(ctx context.Context, entry string) (Result, error) {
	res := Result{Entry: entry}
	if d == nil || d.Host == nil || d.Resolver == nil {
		return res, errors.New("dispatch: host and resolver are required")
	}
	tree, err := d.Host.Snapshot(ctx)
	if err != nil {
		return res, fmt.Errorf("dispatch: snapshot: %w", err)
	}

	done := make(map[roles.Role]bool, len(roles.All))
	for _, osw := range tree.OSWindows {
		if len(done) == len(roles.All) {
			break
		}
		for _, role := range roles.All {
			if done[role] {
				continue
			}
			pane, ok := osw.FindPane(role.Title())
			if !ok {
				continue
			}
			handled, failure := d.deliver(ctx, entry, role, pane, &res)
			if failure != nil {
				res.Failures = append(res.Failures, *failure)
			}
			if handled {
				done[role] = true
			}
		}
	}
	for _, role := range roles.All {
		if done[role] {
			continue
		}
		slog.Warn("dispatch: role pane not found", slog.String("role", string(role)), slog.String("entry", entry))
		res.Failures = append(res.Failures, Failure{Role: role, Err: &NotFoundError{Role: role}})
	}
	return res, nil
}

// deliver resets pane and injects the role command. handled is true once the
// role needs no further searching.
func (d *Dispatcher) deliver(ctx context.Context, entry string, role roles.Role, pane host.Pane, res *Result) (bool, *Failure) {
	log := slog.With(slog.String("role", string(role)), slog.Int("pane", pane.ID), slog.String("entry", entry))
	d.reset(ctx, pane.ID, log)

	tokens, found, err := d.Resolver.Resolve(pane.Cwd, entry, role)
	if err != nil {
		log.Warn("dispatch: manifest unusable", slog.String("cwd", pane.Cwd), slog.Any("err", err))
		return false, &Failure{Role: role, PaneID: pane.ID, Err: err}
	}
	if !found {
		log.Debug("dispatch: no command for role", slog.String("cwd", pane.Cwd))
		return false, nil
	}
	command, err := shellcmd.Serialize(tokens)
	if err != nil {
		log.Warn("dispatch: serialize failed", slog.Any("err", err))
		return true, &Failure{Role: role, PaneID: pane.ID, Err: err}
	}
	if err := d.Host.SendText(ctx, pane.ID, command+"\n"); err != nil {
		log.Warn("dispatch: inject failed", slog.Any("err", err))
		return true, &Failure{Role: role, PaneID: pane.ID, Err: fmt.Errorf("send text: %w", err)}
	}
	log.Info("dispatch: delivered", logging.CommandAttr("command", command))
	res.Deliveries = append(res.Deliveries, Delivery{Role: role, PaneID: pane.ID, Command: command})
	return true, nil
}

// reset signals the foreground job and clears the screen. Both are fire and
// forget; failures are only logged.
func (d *Dispatcher) reset(ctx context.Context, paneID int, log *slog.Logger) {
	policy := d.Policy
	if policy.Signal == "" {
		policy.Signal = DefaultSignal
	}
	for i := 0; i < max(1, policy.SignalRetries); i++ {
		if err := d.Host.SignalChild(ctx, paneID, policy.Signal); err != nil {
			log.Warn("dispatch: signal failed", slog.String("signal", policy.Signal), slog.Int("attempt", i+1), slog.Any("err", err))
		}
	}
	if !policy.Clear {
		return
	}
	if err := d.Host.ClearScreen(ctx, paneID); err != nil {
		log.Warn("dispatch: clear failed", slog.Any("err", err))
	}
}
