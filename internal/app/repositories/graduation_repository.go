package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/pkg/apperrors"
)

// GraduationRepository handles database operations for graduations
type GraduationRepository struct {
	db *pgxpool.Pool
}

// NewGraduationRepository creates a new graduation repository
func NewGraduationRepository(db *pgxpool.Pool) *GraduationRepository {
	return &GraduationRepository{
		db: db,
	}
}

// Create inserts a new graduation record
func (r *GraduationRepository) Create(ctx context.Context, graduation *models.Graduation) error {
	query := `
		INSERT INTO graduations (student_id, belt_color, belt_degree, graduation_date, instructor_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		graduation.StudentID,
		graduation.BeltColor,
		graduation.BeltDegree,
		graduation.GraduationDate,
		graduation.InstructorID,
		graduation.Notes,
	).Scan(&graduation.ID, &graduation.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating graduation: %w", err)
	}

	return nil
}

// GetByID retrieves a graduation by id
func (r *GraduationRepository) GetByID(ctx context.Context, id int64) (*models.Graduation, error) {
	query := `
		SELECT id, student_id, belt_color, belt_degree, graduation_date, instructor_id, notes, created_at
		FROM graduations
		WHERE id = $1
	`

	var g models.Graduation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.StudentID, &g.BeltColor, &g.BeltDegree,
		&g.GraduationDate, &g.InstructorID, &g.Notes, &g.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGraduationNotFound
		}
		return nil, fmt.Errorf("error retrieving graduation: %w", err)
	}

	return &g, nil
}

// scanGraduationRows scans joined graduation rows with the student's and
// the instructor's profile names attached.
func scanGraduationRows(rows pgx.Rows) ([]*models.Graduation, error) {
	var graduations []*models.Graduation
	for rows.Next() {
		var g models.Graduation
		var studentName *string
		var instructorName *string

		err := rows.Scan(
			&g.ID, &g.StudentID, &g.BeltColor, &g.BeltDegree,
			&g.GraduationDate, &g.InstructorID, &g.Notes, &g.CreatedAt,
			&studentName, &instructorName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning graduation row: %w", err)
		}

		if studentName != nil {
			g.Student = &models.Student{
				ID:      g.StudentID,
				Profile: &models.Profile{FullName: *studentName},
			}
		}
		if g.InstructorID != nil && instructorName != nil {
			g.Instructor = &models.Profile{ID: *g.InstructorID, FullName: *instructorName}
		}

		graduations = append(graduations, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return graduations, nil
}

const graduationJoinQuery = `
	SELECT g.id, g.student_id, g.belt_color, g.belt_degree, g.graduation_date,
	       g.instructor_id, g.notes, g.created_at,
	       sp.full_name, ip.full_name
	FROM graduations g
	JOIN students s ON s.id = g.student_id
	LEFT JOIN profiles sp ON sp.id = s.profile_id
	LEFT JOIN profiles ip ON ip.id = g.instructor_id
`

// List retrieves the graduation history, most recent promotion first
func (r *GraduationRepository) List(ctx context.Context) ([]*models.Graduation, error) {
	query := graduationJoinQuery + `ORDER BY g.graduation_date DESC, g.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing graduations: %w", err)
	}
	defer rows.Close()

	return scanGraduationRows(rows)
}

// ListByStudent retrieves a single student's promotion history
func (r *GraduationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Graduation, error) {
	query := graduationJoinQuery + `WHERE g.student_id = $1 ORDER BY g.graduation_date DESC, g.created_at DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing graduations by student: %w", err)
	}
	defer rows.Close()

	return scanGraduationRows(rows)
}

// ListCreatedSince returns graduations created at or after the given
// instant, for the recent-activity feed.
func (r *GraduationRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*models.Graduation, error) {
	query := graduationJoinQuery + `WHERE g.created_at >= $1 ORDER BY g.created_at DESC`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error listing recent graduations: %w", err)
	}
	defer rows.Close()

	return scanGraduationRows(rows)
}

// CountInRange counts graduations dated within [start, end)
func (r *GraduationRepository) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM graduations WHERE graduation_date >= $1 AND graduation_date < $2`,
		start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting graduations: %w", err)
	}
	return count, nil
}

// Delete physically removes a graduation. The referenced student's belt
// fields are intentionally left as they are.
func (r *GraduationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM graduations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting graduation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGraduationNotFound
	}

	return nil
}
