package insights

import "github.com/goliatone/go-insights/internal/runtimeconfig"

var (
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid = runtimeconfig.ErrLoggingFormatInvalid
	ErrStorageDSNRequired   = runtimeconfig.ErrStorageDSNRequired
	ErrSnapshotKeepInvalid  = runtimeconfig.ErrSnapshotKeepInvalid
)

type (
	Config           = runtimeconfig.Config
	LoggingConfig    = runtimeconfig.LoggingConfig
	ValidationConfig = runtimeconfig.ValidationConfig
	StorageConfig    = runtimeconfig.StorageConfig
	SnapshotConfig   = runtimeconfig.SnapshotConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
