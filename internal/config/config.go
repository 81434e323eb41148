package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/relay/internal/logging"
)

// Config represents the complete relay CLI configuration. The library
// packages take no configuration; these settings drive the command-line tool.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Demo    DemoConfig    `mapstructure:"demo"`
	Stress  StressConfig  `mapstructure:"stress"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for relay.log. Empty logs to stderr.
	Dir string `mapstructure:"dir"`
	// Format is the log line format: "json" or "text" (default: "json")
	Format string `mapstructure:"format"`
}

// DemoConfig controls the `relay demo` scenario
type DemoConfig struct {
	// Endpoints lists the names registered by the demo. The first one is the
	// sender; at least two are required.
	Endpoints []string `mapstructure:"endpoints"`
	// Handoff makes the demo's sends wait for pickup
	Handoff bool `mapstructure:"handoff"`
}

// StressConfig controls the `relay stress` run
type StressConfig struct {
	// Endpoints is the number of concurrent endpoints (default: 8)
	Endpoints int `mapstructure:"endpoints"`
	// Messages is the number of direct sends per endpoint (default: 100)
	Messages int `mapstructure:"messages"`
	// Handoff makes every send wait for pickup
	Handoff bool `mapstructure:"handoff"`
	// Timeout bounds the whole run (default: 30s)
	Timeout time.Duration `mapstructure:"timeout"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Dir:    "",
			Format: logging.FormatJSON,
		},
		Demo: DemoConfig{
			Endpoints: []string{"a", "b", "c"},
			Handoff:   false,
		},
		Stress: StressConfig{
			Endpoints: 8,
			Messages:  100,
			Handoff:   false,
			Timeout:   30 * time.Second,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.format", defaults.Logging.Format)

	// Demo defaults
	viper.SetDefault("demo.endpoints", defaults.Demo.Endpoints)
	viper.SetDefault("demo.handoff", defaults.Demo.Handoff)

	// Stress defaults
	viper.SetDefault("stress.endpoints", defaults.Stress.Endpoints)
	viper.SetDefault("stress.messages", defaults.Stress.Messages)
	viper.SetDefault("stress.handoff", defaults.Stress.Handoff)
	viper.SetDefault("stress.timeout", defaults.Stress.Timeout.String())
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load for an explicit viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// Settings returns the configuration as nested maps keyed like the config
// file, with durations rendered as strings. Used for `relay config show`.
func (c *Config) Settings() map[string]any {
	endpoints := make([]string, len(c.Demo.Endpoints))
	copy(endpoints, c.Demo.Endpoints)

	return map[string]any{
		"logging": map[string]any{
			"level":  c.Logging.Level,
			"dir":    c.Logging.Dir,
			"format": c.Logging.Format,
		},
		"demo": map[string]any{
			"endpoints": endpoints,
			"handoff":   c.Demo.Handoff,
		},
		"stress": map[string]any{
			"endpoints": c.Stress.Endpoints,
			"messages":  c.Stress.Messages,
			"handoff":   c.Stress.Handoff,
			"timeout":   c.Stress.Timeout.String(),
		},
	}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "relay")
	}
	// Fall back to ~/.config/relay
	home, err := os.UserHomeDir()
	if err != nil {
		return ".relay"
	}
	return filepath.Join(home, ".config", "relay")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
