package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/rpggio/timesheets/internal/repository"
)

// SnapshotRepository stores the timesheet collection as one JSON value in kv_store.
// It implements timesheet.Repository.
type SnapshotRepository struct {
	db  *DB
	key string
}

// NewSnapshotRepository creates a SnapshotRepository keyed by timesheet.StorageKey
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db, key: timesheet.StorageKey}
}

// Load reads the stored collection
func (r *SnapshotRepository) Load(ctx context.Context) ([]timesheet.Timesheet, bool, error) {
	value, err := r.get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var timesheets []timesheet.Timesheet
	if err := json.Unmarshal([]byte(value), &timesheets); err != nil {
		return nil, false, fmt.Errorf("failed to decode timesheets: %w", err)
	}
	return timesheets, true, nil
}

// Save replaces the stored collection
func (r *SnapshotRepository) Save(ctx context.Context, timesheets []timesheet.Timesheet) error {
	if timesheets == nil {
		timesheets = []timesheet.Timesheet{}
	}
	data, err := json.Marshal(timesheets)
	if err != nil {
		return fmt.Errorf("failed to encode timesheets: %w", err)
	}
	return r.put(ctx, string(data))
}

func (r *SnapshotRepository) get(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, r.key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", r.key, err)
	}
	return value, nil
}

func (r *SnapshotRepository) put(ctx context.Context, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, r.key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.key, err)
	}
	return nil
}
