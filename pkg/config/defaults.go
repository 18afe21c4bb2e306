package config

import "time"

// Default values for configuration fields.
const (
	// Artifactory defaults
	DefaultArtifactoryTimeout = 60 * time.Second

	// Policies defaults
	DefaultPoliciesFilePath = "./policies.yaml"
	DefaultPoliciesWatch    = false

	// Daemon defaults
	DefaultDaemonSchedule             = "0 3 * * *"
	DefaultDaemonMetricsListenAddress = "127.0.0.1:9209"

	// History defaults
	DefaultHistoryEnabled = false
	DefaultHistoryDBPath  = "data/cleanup-history.db"

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	if cfg.Artifactory.Timeout == 0 {
		cfg.Artifactory.Timeout = DefaultArtifactoryTimeout
	}

	if cfg.Policies.FilePath == "" {
		cfg.Policies.FilePath = DefaultPoliciesFilePath
	}

	if cfg.Daemon.Schedule == "" {
		cfg.Daemon.Schedule = DefaultDaemonSchedule
	}
	if cfg.Daemon.MetricsListenAddress == "" {
		cfg.Daemon.MetricsListenAddress = DefaultDaemonMetricsListenAddress
	}

	if cfg.History.DBPath == "" {
		cfg.History.DBPath = DefaultHistoryDBPath
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
}
