package extractcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-insights/internal/commands"
	"github.com/goliatone/go-insights/internal/logging"
	"github.com/goliatone/go-insights/internal/report"
	"github.com/goliatone/go-insights/pkg/interfaces"
)

const (
	extractOperation = "report.extract"
	purgeOperation   = "snapshots.purge"
)

var (
	// ErrStoreNotConfigured is returned when a command needs persistence but
	// no snapshot store was wired in.
	ErrStoreNotConfigured = errors.New("extract command: snapshot store not configured")
)

var (
	_ command.Commander[ExtractReportCommand]  = (*ExtractReportHandler)(nil)
	_ command.Commander[PurgeSnapshotsCommand] = (*PurgeSnapshotsHandler)(nil)
)

// ReportService runs the Markdown extraction pipeline. The root insights
// package provides the canonical implementation.
type ReportService interface {
	Extract(ctx context.Context, source []byte, meta report.Meta) (*report.Snapshot, error)
}

// SnapshotStore is the persistence surface the commands need.
type SnapshotStore interface {
	Save(ctx context.Context, snap *report.Snapshot) error
	Purge(ctx context.Context, keep int) (int, error)
}

// ResultSink receives the snapshot produced by a successful extraction so
// callers (CLI, dispatchers) can consume it without re-running the pipeline.
type ResultSink func(ctx context.Context, snap *report.Snapshot)

// ExtractHandlerOption customises ExtractReportHandler construction.
type ExtractHandlerOption func(*extractHandlerConfig)

type extractHandlerConfig struct {
	sink        ResultSink
	handlerOpts []commands.HandlerOption[ExtractReportCommand]
}

// WithResultSink forwards each extracted snapshot to the supplied callback.
func WithResultSink(sink ResultSink) ExtractHandlerOption {
	return func(cfg *extractHandlerConfig) {
		cfg.sink = sink
	}
}

// WithExtractHandlerOptions forwards options to the shared command handler.
func WithExtractHandlerOptions(opts ...commands.HandlerOption[ExtractReportCommand]) ExtractHandlerOption {
	return func(cfg *extractHandlerConfig) {
		cfg.handlerOpts = append(cfg.handlerOpts, opts...)
	}
}

// ExtractReportHandler orchestrates report extraction via the shared command
// handler foundation.
type ExtractReportHandler struct {
	inner *commands.Handler[ExtractReportCommand]
}

// NewExtractReportHandler creates a handler bound to the supplied extraction
// service. The store may be nil when persistence is not needed.
func NewExtractReportHandler(service ReportService, store SnapshotStore, logger interfaces.Logger, opts ...ExtractHandlerOption) *ExtractReportHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	cfg := extractHandlerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	exec := func(ctx context.Context, msg ExtractReportCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		meta := report.Meta{GeneratedAt: msg.GeneratedAt}
		if msg.SnapshotID != uuid.Nil {
			meta.ID = msg.SnapshotID.String()
		}

		snap, err := service.Extract(ctx, []byte(msg.Markdown), meta)
		if err != nil {
			return err
		}

		if msg.Persist {
			if store == nil {
				return ErrStoreNotConfigured
			}
			if err := store.Save(ctx, snap); err != nil {
				return err
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"snapshot_id": snap.ID,
			"title":       snap.Title,
			"extra_count": len(snap.Extras),
			"persisted":   msg.Persist,
		}).Info("report.command.extract.completed")

		if cfg.sink != nil {
			cfg.sink(ctx, snap)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExtractReportCommand]{
		commands.WithLogger[ExtractReportCommand](baseLogger),
		commands.WithOperation[ExtractReportCommand](extractOperation),
		commands.WithMessageFields(func(msg ExtractReportCommand) map[string]any {
			fields := map[string]any{
				"markdown_bytes": len(msg.Markdown),
			}
			if msg.SnapshotID != uuid.Nil {
				fields["snapshot_id"] = msg.SnapshotID
			}
			if msg.GeneratedAt != "" {
				fields["generated_at"] = msg.GeneratedAt
			}
			if msg.Persist {
				fields["persist"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExtractReportCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, cfg.handlerOpts...)

	return &ExtractReportHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExtractReportCommand].
func (h *ExtractReportHandler) Execute(ctx context.Context, msg ExtractReportCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PurgeSnapshotsHandler trims persisted snapshots via the shared command
// handler foundation.
type PurgeSnapshotsHandler struct {
	inner *commands.Handler[PurgeSnapshotsCommand]
}

// NewPurgeSnapshotsHandler creates a handler bound to the supplied store.
func NewPurgeSnapshotsHandler(store SnapshotStore, logger interfaces.Logger, opts ...commands.HandlerOption[PurgeSnapshotsCommand]) *PurgeSnapshotsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PurgeSnapshotsCommand) error {
		if store == nil {
			return ErrStoreNotConfigured
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		removed, err := store.Purge(ctx, msg.Keep)
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"removed_count": removed,
			"keep":          msg.Keep,
		}).Info("snapshots.command.purge.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[PurgeSnapshotsCommand]{
		commands.WithLogger[PurgeSnapshotsCommand](baseLogger),
		commands.WithOperation[PurgeSnapshotsCommand](purgeOperation),
		commands.WithMessageFields(func(msg PurgeSnapshotsCommand) map[string]any {
			return map[string]any{"keep": msg.Keep}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PurgeSnapshotsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PurgeSnapshotsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PurgeSnapshotsCommand].
func (h *PurgeSnapshotsHandler) Execute(ctx context.Context, msg PurgeSnapshotsCommand) error {
	return h.inner.Execute(ctx, msg)
}
