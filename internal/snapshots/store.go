// Package snapshots persists extracted snapshots in a Bun-backed database so
// hosts can serve the latest dashboard data without re-running extraction.
package snapshots

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-insights/internal/logging"
	"github.com/goliatone/go-insights/internal/report"
	"github.com/goliatone/go-insights/pkg/interfaces"
)

var (
	ErrDatabaseRequired = errors.New("snapshots: store requires a database")
	ErrSnapshotRequired = errors.New("snapshots: snapshot is required")
	ErrNoSnapshots      = errors.New("snapshots: no snapshots stored")
)

type snapshotModel struct {
	bun.BaseModel `bun:"table:insight_snapshots"`

	ID          string    `bun:",pk"`
	GeneratedAt string    `bun:"generated_at"`
	Title       string    `bun:"title"`
	Payload     []byte    `bun:"payload"`
	CreatedAt   time.Time `bun:"created_at"`
}

// Info is the listing projection: envelope metadata without the payload.
type Info struct {
	ID          string
	GeneratedAt string
	Title       string
	CreatedAt   time.Time
}

// Store persists snapshots using a Bun-backed database.
type Store struct {
	db     *bun.DB
	logger interfaces.Logger
}

// NewStore constructs a Bun-backed snapshot store.
func NewStore(db *bun.DB, logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{db: db, logger: logger}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Init creates the backing table when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	_, err := s.db.NewCreateTable().
		Model((*snapshotModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Save upserts a snapshot keyed by its envelope id.
func (s *Store) Save(ctx context.Context, snap *report.Snapshot) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	if snap == nil || snap.ID == "" {
		return ErrSnapshotRequired
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	model := snapshotModel{
		ID:          snap.ID,
		GeneratedAt: snap.GeneratedAt,
		Title:       snap.Title,
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().
		Model(&model).
		On("CONFLICT (id) DO UPDATE").
		Set("generated_at = EXCLUDED.generated_at").
		Set("title = EXCLUDED.title").
		Set("payload = EXCLUDED.payload").
		Exec(ctx); err != nil {
		return err
	}

	s.logger.Debug("snapshot.saved", "snapshot_id", snap.ID, "generated_at", snap.GeneratedAt)
	return nil
}

// Latest returns the most recently stored snapshot.
func (s *Store) Latest(ctx context.Context) (*report.Snapshot, error) {
	if s.db == nil {
		return nil, ErrDatabaseRequired
	}
	var model snapshotModel
	err := s.db.NewSelect().
		Model(&model).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshots
		}
		return nil, err
	}

	var snap report.Snapshot
	if err := json.Unmarshal(model.Payload, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns snapshot metadata, newest first, up to limit entries (no
// limit when limit <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]Info, error) {
	if s.db == nil {
		return nil, ErrDatabaseRequired
	}
	var models []snapshotModel
	query := s.db.NewSelect().
		Model(&models).
		Column("id", "generated_at", "title", "created_at").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}

	out := make([]Info, len(models))
	for i, model := range models {
		out[i] = Info{
			ID:          model.ID,
			GeneratedAt: model.GeneratedAt,
			Title:       model.Title,
			CreatedAt:   model.CreatedAt,
		}
	}
	return out, nil
}

// Purge deletes everything but the newest keep snapshots and reports how
// many rows were removed.
func (s *Store) Purge(ctx context.Context, keep int) (int, error) {
	if s.db == nil {
		return 0, ErrDatabaseRequired
	}
	if keep < 0 {
		keep = 0
	}

	subquery := s.db.NewSelect().
		Model((*snapshotModel)(nil)).
		Column("id").
		Order("created_at DESC").
		Limit(keep)

	result, err := s.db.NewDelete().
		Model((*snapshotModel)(nil)).
		Where("id NOT IN (?)", subquery).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}

	if affected > 0 {
		s.logger.Debug("snapshot.purged", "removed", affected, "kept", keep)
	}
	return int(affected), nil
}
