package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// Create inserts a new attendance record
func (r *AttendanceRepository) Create(ctx context.Context, studentID int64, classSessionID *int64, date time.Time, present bool) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance_records (student_id, class_session_id, date, present)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		studentID, classSessionID, date, present).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating attendance record: %w", err)
	}
	return id, nil
}

// CountSince returns present and total counts for records dated at or
// after the given day. Both are zero when nothing was recorded; rate
// derivation guards the division.
func (r *AttendanceRepository) CountSince(ctx context.Context, since time.Time) (present, total int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE present), COUNT(*)
		FROM attendance_records
		WHERE date >= $1`, since).Scan(&present, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting attendance: %w", err)
	}
	return present, total, nil
}

// ListByStudentSince returns a student's records dated at or after the
// given day, newest first.
func (r *AttendanceRepository) ListByStudentSince(ctx context.Context, studentID int64, since time.Time) (present, total int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE present), COUNT(*)
		FROM attendance_records
		WHERE student_id = $1 AND date >= $2`, studentID, since).Scan(&present, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting student attendance: %w", err)
	}
	return present, total, nil
}
