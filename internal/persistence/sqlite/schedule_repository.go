package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/center-timetable/internal/persistence"
)

// ScheduleRepository implements persistence.ScheduleRepository on SQLite.
// Saving a schedule replaces its slot rows wholesale inside one transaction;
// the slot set is small and always validated as a unit, so row-level diffing
// buys nothing.
type ScheduleRepository struct {
	pool *ConnectionPool
}

// NewScheduleRepository builds a schedule repository over the shared pool.
func NewScheduleRepository(pool *ConnectionPool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// SaveSchedule upserts the schedule header and replaces its slots.
func (r *ScheduleRepository) SaveSchedule(ctx context.Context, schedule persistence.WeeklySchedule) error {
	if schedule.ID == "" || schedule.ClassID == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var createdAt string
		err := tx.QueryRow(`SELECT created_at FROM weekly_schedules WHERE id = ?`, schedule.ID).Scan(&createdAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.Exec(`
				INSERT INTO weekly_schedules (id, class_id, teacher_id, academic_year, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				schedule.ID,
				schedule.ClassID,
				schedule.TeacherID,
				schedule.AcademicYear,
				now.Format(time.RFC3339),
				now.Format(time.RFC3339),
			)
			if err != nil {
				return mapError(err)
			}
		case err != nil:
			return mapError(err)
		default:
			_, err = tx.Exec(`
				UPDATE weekly_schedules
				SET class_id = ?, teacher_id = ?, academic_year = ?, updated_at = ?
				WHERE id = ?`,
				schedule.ClassID,
				schedule.TeacherID,
				schedule.AcademicYear,
				now.Format(time.RFC3339),
				schedule.ID,
			)
			if err != nil {
				return mapError(err)
			}
		}

		if _, err := tx.Exec(`DELETE FROM weekly_slots WHERE schedule_id = ?`, schedule.ID); err != nil {
			return mapError(err)
		}

		for _, slot := range schedule.Slots {
			if slot.ID == "" || slot.Duration <= 0 {
				return persistence.ErrConstraintViolation
			}
			_, err := tx.Exec(`
				INSERT INTO weekly_slots (id, schedule_id, day, start_time, end_time, duration, room_id, room_name)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				slot.ID,
				schedule.ID,
				slot.Day,
				slot.StartTime,
				slot.EndTime,
				slot.Duration,
				nullString(slot.RoomID),
				nullString(slot.RoomName),
			)
			if err != nil {
				return mapError(err)
			}
		}

		return nil
	})
}

// GetSchedule retrieves a schedule and its slots by id.
func (r *ScheduleRepository) GetSchedule(ctx context.Context, id string) (persistence.WeeklySchedule, error) {
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, class_id, teacher_id, academic_year, created_at, updated_at
		FROM weekly_schedules WHERE id = ?`, id)
	return r.scanScheduleWithSlots(ctx, row)
}

// GetScheduleForClass retrieves the schedule saved for a class in one
// academic year.
func (r *ScheduleRepository) GetScheduleForClass(ctx context.Context, classID, academicYear string) (persistence.WeeklySchedule, error) {
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, class_id, teacher_id, academic_year, created_at, updated_at
		FROM weekly_schedules WHERE class_id = ? AND academic_year = ?`, classID, academicYear)
	return r.scanScheduleWithSlots(ctx, row)
}

// DeleteSchedule removes a schedule; its slots cascade.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM weekly_schedules WHERE id = ?`, id)
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

func (r *ScheduleRepository) scanScheduleWithSlots(ctx context.Context, row rowScanner) (persistence.WeeklySchedule, error) {
	var schedule persistence.WeeklySchedule
	var createdAt, updatedAt string

	err := row.Scan(&schedule.ID, &schedule.ClassID, &schedule.TeacherID,
		&schedule.AcademicYear, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.WeeklySchedule{}, persistence.ErrNotFound
		}
		return persistence.WeeklySchedule{}, mapError(err)
	}

	if schedule.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.WeeklySchedule{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	if schedule.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.WeeklySchedule{}, fmt.Errorf("sqlite: parse updated_at: %w", err)
	}

	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, day, start_time, end_time, duration, room_id, room_name
		FROM weekly_slots WHERE schedule_id = ?
		ORDER BY day, start_time, id`, schedule.ID)
	if err != nil {
		return persistence.WeeklySchedule{}, mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot persistence.WeeklySlot
		var roomID, roomName sql.NullString
		if err := rows.Scan(&slot.ID, &slot.Day, &slot.StartTime, &slot.EndTime,
			&slot.Duration, &roomID, &roomName); err != nil {
			return persistence.WeeklySchedule{}, mapError(err)
		}
		slot.RoomID = fromNullString(roomID)
		slot.RoomName = fromNullString(roomName)
		schedule.Slots = append(schedule.Slots, slot)
	}

	return schedule, rows.Err()
}
