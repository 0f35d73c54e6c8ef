package extractcmd

import (
	"errors"

	"github.com/goliatone/go-insights/internal/commands"
	"github.com/goliatone/go-insights/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterExtractCommands.
type HandlerSet struct {
	Extract *ExtractReportHandler
	Purge   *PurgeSnapshotsHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	extractOpts []ExtractHandlerOption
	purgeOpts   []commands.HandlerOption[PurgeSnapshotsCommand]
}

// WithExtractOptions forwards options to the ExtractReportHandler constructor.
func WithExtractOptions(opts ...ExtractHandlerOption) Option {
	return func(cfg *options) {
		cfg.extractOpts = append(cfg.extractOpts, opts...)
	}
}

// WithPurgeOptions forwards options to the PurgeSnapshotsHandler constructor.
func WithPurgeOptions(opts ...commands.HandlerOption[PurgeSnapshotsCommand]) Option {
	return func(cfg *options) {
		cfg.purgeOpts = append(cfg.purgeOpts, opts...)
	}
}

// RegisterExtractCommands builds the extraction command handlers and registers
// them with the provided registry. The purge handler is only constructed when
// a store is supplied. The HandlerSet is returned so callers can wire
// additional integrations (dispatcher, cron) as needed.
func RegisterExtractCommands(reg CommandRegistry, service ReportService, store SnapshotStore, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("extract command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "extract")

	set := &HandlerSet{
		Extract: NewExtractReportHandler(service, store, logger, cfg.extractOpts...),
	}
	if store != nil {
		set.Purge = NewPurgeSnapshotsHandler(store, logger, cfg.purgeOpts...)
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Extract); err != nil {
			return nil, err
		}
		if set.Purge != nil {
			if err := reg.RegisterCommand(set.Purge); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}
