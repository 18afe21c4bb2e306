package config

import (
	"strings"
	"testing"
)

func validTestConfig() *Config {
	cfg := &Config{}
	cfg.Artifactory.Server = "https://repo.example.com/artifactory"
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validTestConfig()); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "missing server",
			mutate: func(c *Config) { c.Artifactory.Server = "" },
			field:  "artifactory.server",
		},
		{
			name:   "malformed server URL",
			mutate: func(c *Config) { c.Artifactory.Server = "repo.example.com" },
			field:  "artifactory.server",
		},
		{
			name:   "negative timeout",
			mutate: func(c *Config) { c.Artifactory.Timeout = -1 },
			field:  "artifactory.timeout",
		},
		{
			name:   "missing policy file path",
			mutate: func(c *Config) { c.Policies.FilePath = "" },
			field:  "policies.file_path",
		},
		{
			name:   "missing schedule",
			mutate: func(c *Config) { c.Daemon.Schedule = "" },
			field:  "daemon.schedule",
		},
		{
			name: "history enabled without db path",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.DBPath = ""
			},
			field: "history.db_path",
		},
		{
			name:   "invalid log level",
			mutate: func(c *Config) { c.Logging.Level = "trace" },
			field:  "logging.level",
		},
		{
			name:   "invalid log format",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
			field:  "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}

			validationErr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("Validate() error type = %T, want ValidationError", err)
			}

			found := false
			for _, fieldErr := range validationErr.Errors {
				if fieldErr.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() errors %v do not mention field %q", validationErr.Errors, tt.field)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validTestConfig()
	cfg.Artifactory.Server = ""
	cfg.Logging.Level = "trace"
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}

	validationErr := err.(ValidationError)
	if len(validationErr.Errors) != 3 {
		t.Errorf("len(Errors) = %d, want 3: %v", len(validationErr.Errors), validationErr.Errors)
	}
	if !strings.Contains(validationErr.Error(), "3 errors") {
		t.Errorf("Error() = %q, want mention of 3 errors", validationErr.Error())
	}
}

func TestFieldError(t *testing.T) {
	err := FieldError{Field: "artifactory.server", Message: "server URL is required"}
	want := "artifactory.server: server URL is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
