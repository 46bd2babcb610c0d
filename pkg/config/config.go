// Package config provides configuration management for the quadmesh tools.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Mesh      MeshConfig      `mapstructure:"mesh"`
	Forest    ForestConfig    `mapstructure:"forest"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// MeshConfig holds mesh file handling configuration.
type MeshConfig struct {
	// DataDir is the directory mesh files are resolved against when a
	// relative path is given.
	DataDir string `mapstructure:"data_dir"`
}

// ForestConfig holds forest construction configuration.
type ForestConfig struct {
	// DataSize is the default per-quadrant user data size in bytes.
	DataSize int `mapstructure:"data_size"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TelemetryConfig holds tracing configuration.
type TelemetryConfig struct {
	// Enabled lets the CLI commands initialize OpenTelemetry tracing.
	// Tracing then also needs OTEL_ENABLED=true in the environment, and the
	// exporter itself is configured through the standard OTEL_*
	// environment variables.
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from the specified file path. An empty path
// falls back to the standard locations, and a missing file falls back to
// defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/quadmesh")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file, run on defaults.
		} else if os.IsNotExist(err) {
			// Same for an explicitly named but absent file.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadFromReader loads configuration from raw content (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("mesh.data_dir", ".")
	v.SetDefault("forest.data_size", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("telemetry.enabled", false)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Forest.DataSize < 0 {
		return fmt.Errorf("forest data_size must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}
	return nil
}

// ResolveMeshPath resolves a mesh file path against the data directory.
// Absolute paths are returned unchanged.
func (c *Config) ResolveMeshPath(path string) string {
	if filepath.IsAbs(path) || c.Mesh.DataDir == "" {
		return path
	}
	return filepath.Join(c.Mesh.DataDir, path)
}
