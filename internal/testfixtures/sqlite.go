package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/center-timetable/internal/persistence/sqlite"
)

// OpenSQLite creates a migrated SQLite database in a per-test temporary
// directory and closes it when the test finishes.
func OpenSQLite(t *testing.T) *sqlite.ConnectionPool {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "timetable.db")
	pool, err := sqlite.Open(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("close sqlite: %v", err)
		}
	})

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return pool
}
