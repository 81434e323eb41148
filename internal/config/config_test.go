package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default logging config
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
	if cfg.Logging.Dir != "" {
		t.Errorf("Logging.Dir = %q, want empty (stderr)", cfg.Logging.Dir)
	}

	// Verify default demo config
	if strings.Join(cfg.Demo.Endpoints, ",") != "a,b,c" {
		t.Errorf("Demo.Endpoints = %v, want [a b c]", cfg.Demo.Endpoints)
	}
	if cfg.Demo.Handoff {
		t.Error("Demo.Handoff should be false by default")
	}

	// Verify default stress config
	if cfg.Stress.Endpoints != 8 {
		t.Errorf("Stress.Endpoints = %d, want 8", cfg.Stress.Endpoints)
	}
	if cfg.Stress.Messages != 100 {
		t.Errorf("Stress.Messages = %d, want 100", cfg.Stress.Messages)
	}
	if cfg.Stress.Timeout != 30*time.Second {
		t.Errorf("Stress.Timeout = %v, want 30s", cfg.Stress.Timeout)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/relay"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		// Should be based on home directory
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "relay")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/relay/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestGet(t *testing.T) {
	// Set defaults in viper first (normally done by cmd init)
	SetDefaults()

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.Stress.Timeout != 30*time.Second {
		t.Errorf("Get().Stress.Timeout = %v, want 30s", cfg.Stress.Timeout)
	}
}

func TestLoadFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
  format: text
demo:
  endpoints: [x, y]
  handoff: true
stress:
  endpoints: 4
  messages: 10
  timeout: 1m30s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if strings.Join(cfg.Demo.Endpoints, ",") != "x,y" || !cfg.Demo.Handoff {
		t.Errorf("Demo = %+v", cfg.Demo)
	}
	if cfg.Stress.Endpoints != 4 || cfg.Stress.Messages != 10 {
		t.Errorf("Stress = %+v", cfg.Stress)
	}
	if cfg.Stress.Timeout != 90*time.Second {
		t.Errorf("Stress.Timeout = %v, want 1m30s", cfg.Stress.Timeout)
	}
}

func TestLoadFrom_StringOverrides(t *testing.T) {
	// Environment variables and flags arrive as strings.
	v := viper.New()
	v.Set("logging.level", "warn")
	v.Set("logging.format", "json")
	v.Set("demo.endpoints", "p,q,r")
	v.Set("stress.endpoints", 3)
	v.Set("stress.timeout", "250ms")

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if strings.Join(cfg.Demo.Endpoints, ",") != "p,q,r" {
		t.Errorf("Demo.Endpoints = %v, want [p q r]", cfg.Demo.Endpoints)
	}
	if cfg.Stress.Timeout != 250*time.Millisecond {
		t.Errorf("Stress.Timeout = %v, want 250ms", cfg.Stress.Timeout)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "loud")
	v.Set("demo.endpoints", []string{"a", "b"})
	v.Set("stress.endpoints", 1)
	v.Set("stress.timeout", "1s")

	_, err := LoadFrom(v)
	if err == nil {
		t.Fatal("LoadFrom() should fail validation")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error type = %T, want ValidationErrors", err)
	}
	fields := make(map[string]bool)
	for _, e := range verrs {
		fields[e.Field] = true
	}
	if !fields["logging.level"] || !fields["stress.endpoints"] {
		t.Errorf("unexpected validation fields: %v", verrs)
	}
}

func TestSettings(t *testing.T) {
	cfg := Default()
	settings := cfg.Settings()

	stress, ok := settings["stress"].(map[string]any)
	if !ok {
		t.Fatalf("settings[stress] = %T", settings["stress"])
	}
	if stress["timeout"] != "30s" {
		t.Errorf("stress.timeout = %v, want \"30s\"", stress["timeout"])
	}

	demo := settings["demo"].(map[string]any)
	endpoints := demo["endpoints"].([]string)
	endpoints[0] = "mutated"
	if cfg.Demo.Endpoints[0] != "a" {
		t.Error("Settings() must not alias the config's slices")
	}
}
