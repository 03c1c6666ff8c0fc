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
	"github.com/tatame/academy/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentJoinColumns = `
	s.id, s.profile_id, s.belt_color, s.belt_degree, s.join_date, s.active,
	s.monthly_fee, s.medical_notes, s.emergency_contact, s.created_at, s.updated_at,
	p.id, p.role, p.full_name, p.email, p.phone, p.avatar_url, p.created_at, p.updated_at
`

// scanStudentRow scans a joined student+profile row. The profile side of
// the join is nullable: a student whose profile row is missing still
// scans cleanly and carries a nil Profile.
func scanStudentRow(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var pID, pFullName, pEmail *string
	var pRole *models.RoleType
	var pPhone, pAvatar *string
	var pCreated, pUpdated *time.Time

	err := row.Scan(
		&s.ID, &s.ProfileID, &s.BeltColor, &s.BeltDegree, &s.JoinDate, &s.Active,
		&s.MonthlyFee, &s.MedicalNotes, &s.EmergencyContact, &s.CreatedAt, &s.UpdatedAt,
		&pID, &pRole, &pFullName, &pEmail, &pPhone, &pAvatar, &pCreated, &pUpdated,
	)
	if err != nil {
		return nil, err
	}

	if pID != nil {
		s.Profile = &models.Profile{
			ID:        *pID,
			Role:      *pRole,
			FullName:  *pFullName,
			Email:     *pEmail,
			Phone:     pPhone,
			AvatarURL: pAvatar,
			CreatedAt: *pCreated,
			UpdatedAt: *pUpdated,
		}
	}

	return &s, nil
}

// Create inserts a new student row referencing an existing profile
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (profile_id, belt_color, belt_degree, join_date, active, monthly_fee, medical_notes, emergency_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.ProfileID,
		student.BeltColor,
		student.BeltDegree,
		student.JoinDate,
		student.Active,
		student.MonthlyFee,
		student.MedicalNotes,
		student.EmergencyContact,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_profile_id_key") {
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by id, including soft-deleted ones. Direct
// id lookup keeps working after a delete even though ListActive no
// longer returns the row.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT ` + studentJoinColumns + `
		FROM students s
		LEFT JOIN profiles p ON p.id = s.profile_id
		WHERE s.id = $1
	`

	student, err := scanStudentRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByProfileID retrieves the student record owned by a profile
func (r *StudentRepository) GetByProfileID(ctx context.Context, profileID string) (*models.Student, error) {
	query := `
		SELECT ` + studentJoinColumns + `
		FROM students s
		LEFT JOIN profiles p ON p.id = s.profile_id
		WHERE s.profile_id = $1
	`

	student, err := scanStudentRow(r.db.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by profile: %w", err)
	}

	return student, nil
}

// ListActive retrieves all active students with their profiles, newest
// first.
func (r *StudentRepository) ListActive(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT ` + studentJoinColumns + `
		FROM students s
		LEFT JOIN profiles p ON p.id = s.profile_id
		WHERE s.active = TRUE
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update rewrites the student-owned subset of fields. Nil fields are
// left untouched; the COALESCE form means a nullable field cannot be
// cleared back to NULL through this path, only overwritten.
func (r *StudentRepository) Update(ctx context.Context, id int64, beltColor *models.BeltColor, beltDegree *int, monthlyFee *float64, medicalNotes, emergencyContact *string) error {
	query := `
		UPDATE students
		SET belt_color = COALESCE($2, belt_color),
		    belt_degree = COALESCE($3, belt_degree),
		    monthly_fee = COALESCE($4, monthly_fee),
		    medical_notes = COALESCE($5, medical_notes),
		    emergency_contact = COALESCE($6, emergency_contact),
		    updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id, beltColor, beltDegree, monthlyFee, medicalNotes, emergencyContact)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdateBelt overwrites the current belt fields. Recording a graduation
// calls this unconditionally.
func (r *StudentRepository) UpdateBelt(ctx context.Context, id int64, beltColor models.BeltColor, beltDegree int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET belt_color = $2, belt_degree = $3, updated_at = NOW() WHERE id = $1`,
		id, beltColor, beltDegree)
	if err != nil {
		return fmt.Errorf("error updating student belt: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Deactivate soft-deletes a student. The row is never physically
// removed.
func (r *StudentRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// CountAll returns total and active student counts in one round-trip
func (r *StudentRepository) CountAll(ctx context.Context) (total, active int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM students`).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting students: %w", err)
	}
	return total, active, nil
}

// SumActiveMonthlyFees sums the monthly fee of active students
func (r *StudentRepository) SumActiveMonthlyFees(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(monthly_fee), 0) FROM students WHERE active = TRUE`).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("error summing monthly fees: %w", err)
	}
	return sum, nil
}

// ListCreatedSince returns students created at or after the given
// instant, with profiles, for the recent-activity feed.
func (r *StudentRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*models.Student, error) {
	query := `
		SELECT ` + studentJoinColumns + `
		FROM students s
		LEFT JOIN profiles p ON p.id = s.profile_id
		WHERE s.created_at >= $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error listing recent students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
