package insights

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-insights/internal/logging"
	"github.com/goliatone/go-insights/internal/snapshots"
	"github.com/goliatone/go-insights/pkg/interfaces"
)

// SnapshotStore exports the Bun-backed snapshot persistence service.
type SnapshotStore = snapshots.Store

// SnapshotInfo exports the listing projection for stored snapshots.
type SnapshotInfo = snapshots.Info

// ErrNoSnapshots exports the empty-store sentinel.
var ErrNoSnapshots = snapshots.ErrNoSnapshots

// OpenSnapshotStore opens (or creates) the SQLite-backed snapshot store
// described by cfg and ensures its schema exists. The caller owns the
// returned store and should Close it when done.
func OpenSnapshotStore(ctx context.Context, cfg StorageConfig, provider interfaces.LoggerProvider) (*SnapshotStore, error) {
	sqldb, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	store := snapshots.NewStore(db, logging.SnapshotsLogger(provider))
	if err := store.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
