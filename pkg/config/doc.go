// Package config provides configuration management for artifactory-cleanup.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention
// ARTIFACTORY_CLEANUP_SECTION_FIELD. For example:
//
//   - ARTIFACTORY_CLEANUP_ARTIFACTORY_SERVER overrides artifactory.server
//   - ARTIFACTORY_CLEANUP_ARTIFACTORY_PASSWORD overrides artifactory.password
//   - ARTIFACTORY_CLEANUP_LOGGING_LEVEL overrides logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For command-wide configuration access, use the singleton pattern:
//
//	// At command startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the command
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Artifactory.Server)
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation
// errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - artifactory.server: server URL is required
//	  - logging.level: invalid log level "trace" (must be debug, info, warn, or error)
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	artifactory:
//	  server: "https://repo.example.com/artifactory"
//	  user: "cleanup-bot"
//	  password: "${ARTIFACTORY_PASSWORD}"
//
//	policies:
//	  file_path: "./policies.yaml"
//	  watch: true
//
//	daemon:
//	  schedule: "0 3 * * *"
//
//	history:
//	  enabled: true
//	  db_path: "data/cleanup-history.db"
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses
// read-write locks to allow concurrent reads while protecting against
// concurrent writes during reload operations.
package config
