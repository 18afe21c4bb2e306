package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow the
// naming convention ARTIFACTORY_CLEANUP_SECTION_FIELD (e.g.,
// ARTIFACTORY_CLEANUP_ARTIFACTORY_SERVER). Environment variables always
// take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format
// ARTIFACTORY_CLEANUP_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Artifactory overrides
	if val := os.Getenv("ARTIFACTORY_CLEANUP_ARTIFACTORY_SERVER"); val != "" {
		cfg.Artifactory.Server = val
	}
	if val := os.Getenv("ARTIFACTORY_CLEANUP_ARTIFACTORY_USER"); val != "" {
		cfg.Artifactory.User = val
	}
	if val := os.Getenv("ARTIFACTORY_CLEANUP_ARTIFACTORY_PASSWORD"); val != "" {
		cfg.Artifactory.Password = val
	}
	if val := os.Getenv("ARTIFACTORY_CLEANUP_ARTIFACTORY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Artifactory.Timeout = d
		}
	}

	// Policies overrides
	if val := os.Getenv("ARTIFACTORY_CLEANUP_POLICIES_FILE_PATH"); val != "" {
		cfg.Policies.FilePath = val
	}
	if val := os.Getenv("ARTIFACTORY_CLEANUP_POLICIES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Policies.Watch = b
		}
	}

	// Daemon overrides
	if val := os.Getenv("ARTIFACTORY_CLEANUP_DAEMON_SCHEDULE"); val != "" {
		cfg.Daemon.Schedule = val
	}
	if val := os.Getenv("ARTIFACTORY_CLEANUP_DAEMON_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Daemon.MetricsListenAddress = val
	}

	// History overrides
	if val := os.Getenv("ARTIFACTORY_CLEANUP_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("ARTIFACTORY_CLEANUP_HISTORY_DB_PATH"); val != "" {
		cfg.History.DBPath = val
	}

	// Logging overrides
	if val := os.Getenv("ARTIFACTORY_CLEANUP_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("ARTIFACTORY_CLEANUP_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
