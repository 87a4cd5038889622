// Package config handles windsway configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig holds the scene file the commands operate on.
type SceneConfig struct {
	File        string `yaml:"file"`         // Scene document read and written by every command
	DefaultPrim string `yaml:"default_prim"` // Root prim name for newly created scenes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			File:        "scene.yaml",
			DefaultPrim: "World",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
