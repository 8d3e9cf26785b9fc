package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	// Every pooled connection gets its own :memory: database, so pin the
	// pool to one connection.
	db.SetMaxOpenConns(1)

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

	tables := []string{"users", "applications"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestStatusCheck verifies unknown statuses are rejected by the schema
func TestStatusCheck(t *testing.T) {
	db := NewTestDB(t)
	insertUser(t, db, "u1", "u1@example.com")

	_, err := db.Exec(`
		INSERT INTO applications (id, user_id, company_name, job_title, status, position, date_applied)
		VALUES ('a1', 'u1', 'Initech', 'Engineer', 'Ghosted', 0, CURRENT_TIMESTAMP)`)
	require.Error(t, err)
}
