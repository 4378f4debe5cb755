// Package config loads the global kitproj configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/regenrek/kitproj/internal/appdirs"
	"github.com/regenrek/kitproj/internal/dispatch"
	"github.com/regenrek/kitproj/internal/identity"
	"github.com/regenrek/kitproj/internal/logging"
	"github.com/regenrek/kitproj/internal/runenv"
	"github.com/regenrek/kitproj/internal/userpath"
)

// KittyConfig selects and reaches the kitty instance.
type KittyConfig struct {
	Bin     string        `yaml:"bin,omitempty"`
	Socket  string        `yaml:"socket,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ManifestConfig names the per-project manifest.
type ManifestConfig struct {
	File string `yaml:"file,omitempty"`
}

// DispatchConfig controls how role panes are reset before a command is injected.
type DispatchConfig struct {
	Signal        string `yaml:"signal,omitempty"`
	SignalRetries *int   `yaml:"signal_retries,omitempty"`
	Clear         *bool  `yaml:"clear,omitempty"`
}

// Config is the root of config.yml.
type Config struct {
	Kitty    KittyConfig    `yaml:"kitty,omitempty"`
	Manifest ManifestConfig `yaml:"manifest,omitempty"`
	Dispatch DispatchConfig `yaml:"dispatch,omitempty"`
	Logging  logging.Config `yaml:"logging,omitempty"`
}

// DefaultPath returns the global config path. It is empty when
// KITPROJ_FRESH_CONFIG asks to ignore the user's config.
func DefaultPath() (string, error) {
	if dir := runenv.ConfigDir(); dir != "" {
		return filepath.Join(dir, identity.GlobalConfigFile), nil
	}
	if runenv.FreshConfigEnabled() {
		return "", nil
	}
	dir, err := appdirs.ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalConfigFile), nil
}

// Load reads path. An empty path or a missing file yields the zero Config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	path = userpath.ExpandPath(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Kitty.Bin = userpath.ExpandPath(c.Kitty.Bin)
	c.Kitty.Socket = strings.TrimSpace(c.Kitty.Socket)
	c.Manifest.File = strings.TrimSpace(c.Manifest.File)
	c.Dispatch.Signal = strings.ToUpper(strings.TrimSpace(c.Dispatch.Signal))
}

// Validate checks values that would otherwise fail later inside kitty.
func (c *Config) Validate() error {
	if c.Kitty.Timeout < 0 {
		return fmt.Errorf("kitty.timeout: must not be negative")
	}
	if c.Dispatch.Signal != "" {
		if err := validateSignal(c.Dispatch.Signal); err != nil {
			return fmt.Errorf("dispatch.signal: %w", err)
		}
	}
	if c.Dispatch.SignalRetries != nil && *c.Dispatch.SignalRetries < 1 {
		return fmt.Errorf("dispatch.signal_retries: must be at least 1")
	}
	if strings.ContainsRune(c.Manifest.File, os.PathSeparator) && !filepath.IsAbs(c.Manifest.File) {
		return fmt.Errorf("manifest.file: %q must be a file name or an absolute path", c.Manifest.File)
	}
	if _, err := c.Logging.Normalize(); err != nil {
		return err
	}
	return nil
}

// DispatchPolicy returns the dispatcher policy with defaults filled in.
func (c *Config) DispatchPolicy() dispatch.Policy {
	policy := dispatch.DefaultPolicy()
	if c == nil {
		return policy
	}
	if c.Dispatch.Signal != "" {
		policy.Signal = c.Dispatch.Signal
	}
	if c.Dispatch.SignalRetries != nil {
		policy.SignalRetries = *c.Dispatch.SignalRetries
	}
	if c.Dispatch.Clear != nil {
		policy.Clear = *c.Dispatch.Clear
	}
	return policy
}
