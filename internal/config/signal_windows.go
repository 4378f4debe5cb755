//go:build windows

package config

import "fmt"

func validateSignal(name string) error {
	switch name {
	case "SIGTERM", "SIGINT", "SIGKILL", "SIGHUP", "SIGQUIT":
		return nil
	default:
		return fmt.Errorf("unknown signal %q", name)
	}
}
