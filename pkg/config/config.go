package config

import "time"

// Config is the root configuration structure for artifactory-cleanup.
// It contains the Artifactory connection settings, policy definition
// source, daemon scheduling, run history, and logging configuration.
type Config struct {
	// Artifactory contains the connection settings for the Artifactory
	// instance to clean.
	Artifactory ArtifactoryConfig `yaml:"artifactory"`

	// Policies contains configuration for the policy definition source
	// including the file path and watch mode.
	Policies PoliciesConfig `yaml:"policies"`

	// Daemon contains configuration for long-running daemon mode including
	// the cleanup schedule and the metrics endpoint.
	Daemon DaemonConfig `yaml:"daemon"`

	// History contains configuration for the run history store.
	History HistoryConfig `yaml:"history"`

	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// ArtifactoryConfig contains the Artifactory connection settings.
type ArtifactoryConfig struct {
	// Server is the base URL of the Artifactory instance.
	// Example: "https://repo.example.com/artifactory"
	Server string `yaml:"server"`

	// User is the account used for listing and deleting artifacts.
	// This account needs delete permission on the cleaned repositories.
	User string `yaml:"user"`

	// Password is the password or API token for User.
	// This should typically be loaded from an environment variable.
	Password string `yaml:"password"`

	// Timeout is the maximum duration for individual API requests.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`
}

// PoliciesConfig contains configuration for the policy definition source.
type PoliciesConfig struct {
	// FilePath is the path to the policy definition file. Files ending in
	// .so are loaded as compiled extension plugins; everything else is
	// parsed as a structured YAML definition.
	// Default: "./policies.yaml"
	FilePath string `yaml:"file_path"`

	// Watch enables automatic reloading when the definition file changes.
	// Only effective in daemon mode.
	// Default: false
	Watch bool `yaml:"watch"`
}

// DaemonConfig contains configuration for daemon mode.
type DaemonConfig struct {
	// Schedule is a cron expression controlling when cleanup runs fire.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`

	// MetricsListenAddress is the address for the Prometheus metrics
	// endpoint. Empty disables the endpoint.
	// Default: "127.0.0.1:9209"
	MetricsListenAddress string `yaml:"metrics_listen_address"`
}

// HistoryConfig contains configuration for the run history store.
type HistoryConfig struct {
	// Enabled controls whether cleanup runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite database file.
	// Default: "data/cleanup-history.db"
	DBPath string `yaml:"db_path"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}
