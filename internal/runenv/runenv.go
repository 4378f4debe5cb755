package runenv

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	RuntimeDirEnv      = "KITPROJ_RUNTIME_DIR"
	ConfigDirEnv       = "KITPROJ_CONFIG_DIR"
	FreshConfigEnv     = "KITPROJ_FRESH_CONFIG"
	RemoteTimeoutEnv   = "KITPROJ_RC_TIMEOUT"
	defaultRemoteLimit = 5 * time.Second
)

func enabledEnv(name string) bool {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// FreshConfigEnabled skips loading the global config file.
func FreshConfigEnabled() bool {
	return enabledEnv(FreshConfigEnv)
}

func ConfigDir() string {
	return strings.TrimSpace(os.Getenv(ConfigDirEnv))
}

func RuntimeDir() string {
	return strings.TrimSpace(os.Getenv(RuntimeDirEnv))
}

// RemoteTimeout bounds a single remote-control call.
func RemoteTimeout() time.Duration {
	raw := strings.TrimSpace(os.Getenv(RemoteTimeoutEnv))
	if raw == "" {
		return defaultRemoteLimit
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return defaultRemoteLimit
		}
		return d
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return defaultRemoteLimit
	}
	return time.Duration(secs) * time.Second
}
