// Package runtimeconfig holds the runtime configuration surface for the
// insights module. The root package re-exports these types so hosts never
// import internal packages directly.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLoggingLevelInvalid  = errors.New("insights config: logging level is invalid")
	ErrLoggingFormatInvalid = errors.New("insights config: logging format is invalid")
	ErrStorageDSNRequired   = errors.New("insights config: storage DSN is required when storage is enabled")
	ErrSnapshotKeepInvalid  = errors.New("insights config: snapshot retention must not be negative")
)

// Config is the top level runtime configuration for the extraction module.
type Config struct {
	Logging    LoggingConfig
	Validation ValidationConfig
	Storage    StorageConfig
	Snapshots  SnapshotConfig
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// ValidationConfig controls JSON Schema validation of extracted snapshots.
type ValidationConfig struct {
	Enabled bool
}

// StorageConfig captures SQLite persistence behaviour for snapshots.
type StorageConfig struct {
	Enabled bool
	DSN     string
}

// SnapshotConfig captures retention behaviour for persisted snapshots.
type SnapshotConfig struct {
	// Keep is the number of snapshots retained by purge operations.
	Keep int
}

// DefaultConfig returns opinionated defaults: validated output, console
// logging at info, persistence disabled.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Validation: ValidationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DSN: "file:insights.db?_fk=1",
		},
		Snapshots: SnapshotConfig{
			Keep: 30,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	if cfg.Storage.Enabled && strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	if cfg.Snapshots.Keep < 0 {
		return ErrSnapshotKeepInvalid
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
