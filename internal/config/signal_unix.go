//go:build !windows

package config

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func validateSignal(name string) error {
	if unix.SignalNum(name) == 0 {
		return fmt.Errorf("unknown signal %q", name)
	}
	return nil
}
