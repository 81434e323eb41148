package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidationErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		errs ValidationErrors
		want []string
	}{
		{name: "none", errs: nil, want: nil},
		{
			name: "one",
			errs: ValidationErrors{{Field: "stress.messages", Value: 0, Message: "must be at least 1"}},
			want: []string{"stress.messages: must be at least 1 (got: 0)"},
		},
		{
			name: "several",
			errs: ValidationErrors{
				{Field: "demo.endpoints[1]", Value: "", Message: "must not be empty"},
				{Field: "stress.endpoints", Value: 1, Message: "must be at least 2"},
			},
			want: []string{"2 validation errors", "demo.endpoints[1]", "stress.endpoints"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.errs.Error()
			if tt.want == nil && got != "" {
				t.Errorf("Error() = %q, want empty", got)
			}
			for _, part := range tt.want {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, missing %q", got, part)
				}
			}
		})
	}
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got %d errors: %v", len(errs), errs)
	}
}

func hasField(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestConfig_Validate_Logging(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", ""} {
			cfg := Default()
			cfg.Logging.Level = level
			if hasField(cfg.Validate(), "logging.level") {
				t.Errorf("level %q should be valid", level)
			}
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "invalid"
		if !hasField(cfg.Validate(), "logging.level") {
			t.Error("expected error for invalid log level")
		}
	})

	t.Run("case sensitive log level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "INFO"
		if !hasField(cfg.Validate(), "logging.level") {
			t.Error("expected error for uppercase log level")
		}
	})

	t.Run("formats", func(t *testing.T) {
		tests := []struct {
			format  string
			wantErr bool
		}{
			{"json", false},
			{"text", false},
			{"", false},
			{"xml", true},
		}
		for _, tt := range tests {
			cfg := Default()
			cfg.Logging.Format = tt.format
			if got := hasField(cfg.Validate(), "logging.format"); got != tt.wantErr {
				t.Errorf("format %q: error = %v, want %v", tt.format, got, tt.wantErr)
			}
		}
	})
}

func TestConfig_Validate_Demo(t *testing.T) {
	tests := []struct {
		name      string
		endpoints []string
		wantField string
	}{
		{name: "valid", endpoints: []string{"a", "b"}},
		{name: "too few", endpoints: []string{"a"}, wantField: "demo.endpoints"},
		{name: "none", endpoints: nil, wantField: "demo.endpoints"},
		{name: "empty name", endpoints: []string{"a", " "}, wantField: "demo.endpoints[1]"},
		{name: "duplicate", endpoints: []string{"a", "b", "a"}, wantField: "demo.endpoints[2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Demo.Endpoints = tt.endpoints
			errs := cfg.Validate()

			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if !hasField(errs, tt.wantField) {
				t.Errorf("expected error on %s, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestConfig_Validate_Stress(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*StressConfig)
		wantField string
	}{
		{name: "defaults", modify: func(*StressConfig) {}},
		{name: "one endpoint", modify: func(s *StressConfig) { s.Endpoints = 1 }, wantField: "stress.endpoints"},
		{name: "too many endpoints", modify: func(s *StressConfig) { s.Endpoints = maxStressEndpoints + 1 }, wantField: "stress.endpoints"},
		{name: "zero messages", modify: func(s *StressConfig) { s.Messages = 0 }},
		{name: "negative messages", modify: func(s *StressConfig) { s.Messages = -1 }, wantField: "stress.messages"},
		{name: "too many messages", modify: func(s *StressConfig) { s.Messages = maxStressMessages + 1 }, wantField: "stress.messages"},
		{name: "zero timeout", modify: func(s *StressConfig) { s.Timeout = 0 }, wantField: "stress.timeout"},
		{name: "negative timeout", modify: func(s *StressConfig) { s.Timeout = -time.Second }, wantField: "stress.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg.Stress)
			errs := cfg.Validate()

			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if !hasField(errs, tt.wantField) {
				t.Errorf("expected error on %s, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "bad"
	cfg.Stress.Endpoints = 0
	cfg.Stress.Timeout = 0

	errs := cfg.Validate()
	if len(errs) < 3 {
		t.Errorf("expected at least 3 errors, got %d: %v", len(errs), errs)
	}
}
