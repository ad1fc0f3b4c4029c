package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations is the ordered list of schema versions. Entries are applied
// exactly once, tracked in schema_migrations; new versions append, existing
// entries never change.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		location TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS class_sessions (
		id TEXT PRIMARY KEY,
		class_name TEXT NOT NULL,
		teacher_name TEXT NOT NULL DEFAULT '',
		session_date TEXT NOT NULL,
		start_time TEXT NOT NULL CHECK (length(start_time) = 5),
		end_time TEXT NOT NULL CHECK (length(end_time) = 5),
		room_id TEXT REFERENCES rooms(id) ON DELETE SET NULL,
		room_name TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_class_sessions_date ON class_sessions(session_date)`,
	`CREATE TABLE IF NOT EXISTS weekly_schedules (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		teacher_id TEXT NOT NULL DEFAULT '',
		academic_year TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (class_id, academic_year)
	)`,
	`CREATE TABLE IF NOT EXISTS weekly_slots (
		id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL REFERENCES weekly_schedules(id) ON DELETE CASCADE,
		day TEXT NOT NULL,
		start_time TEXT NOT NULL CHECK (length(start_time) = 5),
		end_time TEXT NOT NULL CHECK (length(end_time) = 5),
		duration INTEGER NOT NULL CHECK (duration > 0),
		room_id TEXT REFERENCES rooms(id) ON DELETE SET NULL,
		room_name TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_weekly_slots_schedule ON weekly_slots(schedule_id)`,
}

// Migrate applies pending schema versions in order.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	if _, err := cp.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("sqlite: create schema_migrations: %w", err)
	}

	var current sql.NullInt64
	if err := cp.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	next := 0
	if current.Valid {
		next = int(current.Int64)
	}

	for version := next; version < len(migrations); version++ {
		statement := migrations[version]
		err := cp.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.Exec(statement); err != nil {
				return fmt.Errorf("sqlite: apply migration %d: %w", version+1, err)
			}
			if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version+1); err != nil {
				return fmt.Errorf("sqlite: record migration %d: %w", version+1, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}
