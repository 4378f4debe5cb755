package root

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptConfirm asks the user to confirm a destructive action.
func PromptConfirm(in io.Reader, out io.Writer, message string) (bool, error) {
	if in == nil {
		return false, fmt.Errorf("no input to confirm %q", message)
	}
	if out != nil {
		if _, err := fmt.Fprintf(out, "%s [y/N]: ", message); err != nil {
			return false, err
		}
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
