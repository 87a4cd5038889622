package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name searched for in standard locations.
const FileName = "windsway.yaml"

// ErrInvalidConfig reports a config that loaded but cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings can drive a run.
func (c *Config) Validate() error {
	if c.Scene.File == "" {
		return fmt.Errorf("%w: scene.file is empty", ErrInvalidConfig)
	}
	name := c.Scene.DefaultPrim
	if name == "" || strings.ContainsAny(name, "/ \t") {
		return fmt.Errorf("%w: scene.default_prim %q is not a prim name", ErrInvalidConfig, name)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// findConfigFile returns the first existing config in the working
// directory or the user config directory.
func findConfigFile() string {
	for _, path := range []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "windsway")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "windsway")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "windsway")
	}
	return filepath.Join(home, ".config", "windsway")
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
