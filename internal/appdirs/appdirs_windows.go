//go:build windows

package appdirs

import "errors"

var errUnsupported = errors.New("kitty remote control is not supported on windows")

func ConfigDirPath() (string, error) {
	return "", errUnsupported
}

func RuntimeDirPath() (string, error) {
	return "", errUnsupported
}

func RuntimeDir() (string, error) {
	return "", errUnsupported
}
