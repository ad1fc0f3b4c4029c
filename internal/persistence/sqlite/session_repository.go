package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/center-timetable/internal/persistence"
)

// dateLayout stores session dates at day granularity.
const dateLayout = "2006-01-02"

// SessionRepository implements persistence.SessionRepository on SQLite.
type SessionRepository struct {
	pool *ConnectionPool
}

// NewSessionRepository builds a session repository over the shared pool.
func NewSessionRepository(pool *ConnectionPool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// CreateSession inserts a new class session.
func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.ClassSession) error {
	if session.ID == "" || session.Date.IsZero() {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO class_sessions
			(id, class_name, teacher_name, session_date, start_time, end_time, room_id, room_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.ClassName,
		session.TeacherName,
		session.Date.Format(dateLayout),
		session.StartTime,
		session.EndTime,
		nullString(session.RoomID),
		nullString(session.RoomName),
		session.CreatedAt.Format(time.RFC3339),
		session.UpdatedAt.Format(time.RFC3339),
	)
	return mapError(err)
}

// UpdateSession updates an existing class session.
func (r *SessionRepository) UpdateSession(ctx context.Context, session persistence.ClassSession) error {
	if session.ID == "" || session.Date.IsZero() {
		return persistence.ErrConstraintViolation
	}

	session.UpdatedAt = time.Now().UTC()

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE class_sessions
		SET class_name = ?, teacher_name = ?, session_date = ?, start_time = ?, end_time = ?,
			room_id = ?, room_name = ?, updated_at = ?
		WHERE id = ?`,
		session.ClassName,
		session.TeacherName,
		session.Date.Format(dateLayout),
		session.StartTime,
		session.EndTime,
		nullString(session.RoomID),
		nullString(session.RoomName),
		session.UpdatedAt.Format(time.RFC3339),
		session.ID,
	)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetSession retrieves a class session by id.
func (r *SessionRepository) GetSession(ctx context.Context, id string) (persistence.ClassSession, error) {
	row := r.pool.db.QueryRowContext(ctx, sessionSelect+` WHERE id = ?`, id)
	return scanSession(row)
}

// ListSessions returns sessions matching the filter ordered by date then
// start time. Date bounds are inclusive.
func (r *SessionRepository) ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.ClassSession, error) {
	query := sessionSelect + ` WHERE 1=1`
	args := make([]any, 0, 3)

	if filter.DateFrom != nil {
		query += ` AND session_date >= ?`
		args = append(args, filter.DateFrom.Format(dateLayout))
	}
	if filter.DateTo != nil {
		query += ` AND session_date <= ?`
		args = append(args, filter.DateTo.Format(dateLayout))
	}
	if filter.RoomName != nil {
		query += ` AND room_name = ?`
		args = append(args, *filter.RoomName)
	}
	query += ` ORDER BY session_date, start_time, id`

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var sessions []persistence.ClassSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a class session by id.
func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM class_sessions WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

const sessionSelect = `
	SELECT id, class_name, teacher_name, session_date, start_time, end_time,
		room_id, room_name, created_at, updated_at
	FROM class_sessions`

func scanSession(row rowScanner) (persistence.ClassSession, error) {
	var session persistence.ClassSession
	var date, createdAt, updatedAt string
	var roomID, roomName sql.NullString

	err := row.Scan(&session.ID, &session.ClassName, &session.TeacherName, &date,
		&session.StartTime, &session.EndTime, &roomID, &roomName, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.ClassSession{}, persistence.ErrNotFound
		}
		return persistence.ClassSession{}, mapError(err)
	}

	if session.Date, err = time.Parse(dateLayout, date); err != nil {
		return persistence.ClassSession{}, fmt.Errorf("sqlite: parse session_date: %w", err)
	}
	if session.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.ClassSession{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	if session.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.ClassSession{}, fmt.Errorf("sqlite: parse updated_at: %w", err)
	}

	session.RoomID = fromNullString(roomID)
	session.RoomName = fromNullString(roomName)
	return session, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func fromNullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	clone := value.String
	return &clone
}
