package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-insights/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
	if !cfg.Validation.Enabled {
		t.Fatal("expected validation enabled by default")
	}
	if cfg.Storage.Enabled {
		t.Fatal("expected storage disabled by default")
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestValidateRequiresDSNWhenStorageEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Enabled = true
	cfg.Storage.DSN = "  "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestValidateRejectsNegativeRetention(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Snapshots.Keep = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrSnapshotKeepInvalid) {
		t.Fatalf("expected ErrSnapshotKeepInvalid, got %v", err)
	}
}

func TestValidateAcceptsBlankLevelAndFormat(t *testing.T) {
	cfg := runtimeconfig.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero config must validate, got %v", err)
	}
}
