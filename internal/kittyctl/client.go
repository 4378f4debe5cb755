// Package kittyctl drives a running kitty instance through `kitten @` remote control.
package kittyctl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/regenrek/kitproj/internal/host"
	"github.com/regenrek/kitproj/internal/runenv"
)

// Client issues remote-control commands to kitty. It is not safe for
// concurrent use; each CLI invocation owns one.
type Client struct {
	bin     string
	socket  string
	timeout time.Duration
	run     func(ctx context.Context, name string, args ...string) *exec.Cmd

	osWindows map[host.OSWindowHandle]bool // handle -> realized
	tabOwner  map[int]host.OSWindowHandle
}

// Options configures NewClient.
type Options struct {
	// Bin is the kitten or kitty binary; empty means look up "kitten" then "kitty".
	Bin string
	// Socket is passed as --to; empty means kitty's own default ($KITTY_LISTEN_ON or the controlling tty).
	Socket  string
	Timeout time.Duration
}

// NewClient resolves the binary and returns a Client.
func NewClient(opts Options) (*Client, error) {
	bin := strings.TrimSpace(opts.Bin)
	if bin == "" {
		for _, candidate := range []string{"kitten", "kitty"} {
			if path, err := exec.LookPath(candidate); err == nil {
				bin = path
				break
			}
		}
		if bin == "" {
			return nil, errors.New("kitten not found in PATH")
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = runenv.RemoteTimeout()
	}
	return &Client{
		bin:       bin,
		socket:    strings.TrimSpace(opts.Socket),
		timeout:   timeout,
		run:       exec.CommandContext,
		osWindows: make(map[host.OSWindowHandle]bool),
		tabOwner:  make(map[int]host.OSWindowHandle),
	}, nil
}

// Binary returns the resolved binary path.
func (c *Client) Binary() string {
	return c.bin
}

// remote runs `<bin> @ [--to socket] args...` and returns its stdout.
func (c *Client) remote(ctx context.Context, stdin string, args ...string) ([]byte, error) {
	if len(args) == 0 {
		return nil, errors.New("kitten @: command is required")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	full := []string{"@"}
	if c.socket != "" {
		full = append(full, "--to", c.socket)
	}
	full = append(full, args...)
	cmd := c.run(ctx, c.bin, full...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("kitten @ %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("kitten @ %s: %w", args[0], err)
	}
	return out, nil
}

func matchID(id int) string {
	return "id:" + strconv.Itoa(id)
}

func (c *Client) SetTabTitle(ctx context.Context, tabID int, title string) error {
	_, err := c.remote(ctx, "", "set-tab-title", "--match", matchID(tabID), title)
	return err
}

func (c *Client) SetPaneTitle(ctx context.Context, paneID int, title string) error {
	_, err := c.remote(ctx, "", "set-window-title", "--match", matchID(paneID), title)
	return err
}

// FocusOSWindow focuses paneID, which raises its OS-window.
func (c *Client) FocusOSWindow(ctx context.Context, paneID int) error {
	if paneID <= 0 {
		return errors.New("focus: pane id is required")
	}
	_, err := c.remote(ctx, "", "focus-window", "--match", matchID(paneID))
	return err
}

// SignalChild sends signal to the foreground process of paneID.
func (c *Client) SignalChild(ctx context.Context, paneID int, signal string) error {
	_, err := c.remote(ctx, "", "signal-child", "--match", matchID(paneID), signal)
	return err
}

// ClearScreen clears the screen and scrollback of paneID.
func (c *Client) ClearScreen(ctx context.Context, paneID int) error {
	_, err := c.remote(ctx, "", "action", "--match", matchID(paneID), "clear_terminal", "reset", "active")
	return err
}

// SendText writes text to the input of paneID as if typed.
func (c *Client) SendText(ctx context.Context, paneID int, text string) error {
	if text == "" {
		return nil
	}
	_, err := c.remote(ctx, text, "send-text", "--match", matchID(paneID), "--stdin")
	return err
}
