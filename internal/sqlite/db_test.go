package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	for _, table := range []string{"kv_store", "activity_log"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestMigrationsRerun verifies the schema can be applied to an existing database
func TestMigrationsRerun(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO kv_store (key, value) VALUES (?, ?)`, "k", "v")
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations())

	var value string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, "k").Scan(&value))
	require.Equal(t, "v", value)
}

// TestKVStoreKeyIsUnique verifies the primary key on kv_store
func TestKVStoreKeyIsUnique(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO kv_store (key, value) VALUES (?, ?)`, "k", "v1")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO kv_store (key, value) VALUES (?, ?)`, "k", "v2")
	require.Error(t, err, "should fail with duplicate key")
}
