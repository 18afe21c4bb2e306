package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const validConfig = `
artifactory:
  server: "https://repo.example.com/artifactory"
  user: "cleanup-bot"
  password: "secret"
`

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, validConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	if cfg.Artifactory.Server != "https://repo.example.com/artifactory" {
		t.Errorf("Artifactory.Server = %q, want %q",
			cfg.Artifactory.Server, "https://repo.example.com/artifactory")
	}
	if cfg.Artifactory.User != "cleanup-bot" {
		t.Errorf("Artifactory.User = %q, want %q", cfg.Artifactory.User, "cleanup-bot")
	}

	// Defaults fill in everything the file omits.
	if cfg.Artifactory.Timeout != DefaultArtifactoryTimeout {
		t.Errorf("Artifactory.Timeout = %v, want %v", cfg.Artifactory.Timeout, DefaultArtifactoryTimeout)
	}
	if cfg.Policies.FilePath != DefaultPoliciesFilePath {
		t.Errorf("Policies.FilePath = %q, want %q", cfg.Policies.FilePath, DefaultPoliciesFilePath)
	}
	if cfg.Daemon.Schedule != DefaultDaemonSchedule {
		t.Errorf("Daemon.Schedule = %q, want %q", cfg.Daemon.Schedule, DefaultDaemonSchedule)
	}
	if cfg.Logging.Level != DefaultLoggingLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLoggingLevel)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("LoadConfig() error = nil for missing file, want error")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "artifactory: [\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("LoadConfig() error = nil for broken YAML, want error")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfigFile(t, `
artifactory:
  server: "not a url"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("LoadConfig() error = nil for invalid server URL, want error")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, validConfig)

	t.Setenv("ARTIFACTORY_CLEANUP_ARTIFACTORY_SERVER", "https://other.example.com/artifactory")
	t.Setenv("ARTIFACTORY_CLEANUP_ARTIFACTORY_PASSWORD", "from-env")
	t.Setenv("ARTIFACTORY_CLEANUP_ARTIFACTORY_TIMEOUT", "2m")
	t.Setenv("ARTIFACTORY_CLEANUP_POLICIES_WATCH", "true")
	t.Setenv("ARTIFACTORY_CLEANUP_HISTORY_ENABLED", "true")
	t.Setenv("ARTIFACTORY_CLEANUP_LOGGING_LEVEL", "debug")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v, want nil", err)
	}

	if cfg.Artifactory.Server != "https://other.example.com/artifactory" {
		t.Errorf("Artifactory.Server = %q, want env override", cfg.Artifactory.Server)
	}
	if cfg.Artifactory.Password != "from-env" {
		t.Errorf("Artifactory.Password = %q, want %q", cfg.Artifactory.Password, "from-env")
	}
	if cfg.Artifactory.Timeout != 2*time.Minute {
		t.Errorf("Artifactory.Timeout = %v, want 2m", cfg.Artifactory.Timeout)
	}
	if !cfg.Policies.Watch {
		t.Error("Policies.Watch = false, want true from env")
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true from env")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	path := writeConfigFile(t, validConfig)

	t.Setenv("ARTIFACTORY_CLEANUP_LOGGING_LEVEL", "trace")

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		t.Error("LoadConfigWithEnvOverrides() error = nil for invalid level override, want error")
	}
}
