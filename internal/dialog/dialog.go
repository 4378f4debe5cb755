// Package dialog shows error modals and prompts in the terminal kitty opened
// for a command.
package dialog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned by prompts when no terminal is attached.
var ErrNotInteractive = errors.New("no terminal attached for prompt")

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

// Reporter shows an error with a short title to the user.
type Reporter interface {
	Report(title, message string)
}

// Prompter asks the user for the values a command needs.
type Prompter interface {
	// Choose asks for one of options.
	Choose(title string, options []string) (string, error)
	// Ask asks for free text, offering suggestions for completion.
	Ask(title string, suggestions []string) (string, error)
	// Acknowledge shows message and waits for the user to confirm.
	Acknowledge(message string) error
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Render draws the modal box for title and message. Control sequences in
// either are removed.
func Render(title, message string) string {
	title = strings.TrimSpace(ansi.Strip(title))
	message = strings.TrimSpace(ansi.Strip(message))
	if title == "" {
		title = "Error"
	}
	body := titleStyle.Render(title)
	if message != "" {
		body += "\n\n" + message
	}
	return boxStyle.Render(body)
}

// Terminal implements Reporter and Prompter on a terminal.
type Terminal struct {
	In  io.Reader
	Out io.Writer
	// Interactive enables prompts and the press-Enter pause after a report.
	Interactive bool
}

// NewTerminal wires Terminal to the process stdio.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr, Interactive: IsTTY(os.Stdin) && IsTTY(os.Stdout)}
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (t *Terminal) Report(title, message string) {
	fmt.Fprintln(t.Out, Render(title, message))
	if !t.Interactive {
		return
	}
	_ = t.run(huh.NewNote().Title("Press Enter to close"))
}

func (t *Terminal) Choose(title string, options []string) (string, error) {
	if !t.Interactive {
		return "", ErrNotInteractive
	}
	if len(options) == 0 {
		return "", errors.New("no options to choose from")
	}
	value := options[0]
	field := huh.NewSelect[string]().Title(title).Options(huh.NewOptions(options...)...).Value(&value)
	if err := t.run(field); err != nil {
		return "", err
	}
	return value, nil
}

func (t *Terminal) Ask(title string, suggestions []string) (string, error) {
	if !t.Interactive {
		return "", ErrNotInteractive
	}
	var value string
	field := huh.NewInput().
		Title(title).
		Suggestions(suggestions).
		Value(&value).
		Validate(func(v string) error { return ValidateChoice(v, suggestions) })
	if err := t.run(field); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (t *Terminal) Acknowledge(message string) error {
	fmt.Fprintln(t.Out, ansi.Strip(message))
	if !t.Interactive {
		return nil
	}
	return t.run(huh.NewNote().Title("Press Enter to continue"))
}

func (t *Terminal) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field))
	if t.In != nil {
		form = form.WithInput(t.In)
	}
	if t.Out != nil {
		form = form.WithOutput(t.Out)
	}
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}
