package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatame/academy/internal/app/models"
)

// ClassSessionRepository handles database operations for class sessions
type ClassSessionRepository struct {
	db *pgxpool.Pool
}

// NewClassSessionRepository creates a new class session repository
func NewClassSessionRepository(db *pgxpool.Pool) *ClassSessionRepository {
	return &ClassSessionRepository{
		db: db,
	}
}

// Create inserts a new class session
func (r *ClassSessionRepository) Create(ctx context.Context, session *models.ClassSession) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO class_sessions (name, weekday, start_time, end_time, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		session.Name, session.Weekday, session.StartTime, session.EndTime, session.Active,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating class session: %w", err)
	}
	return nil
}

// ListActive retrieves active class sessions ordered by weekday and start
func (r *ClassSessionRepository) ListActive(ctx context.Context) ([]*models.ClassSession, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, weekday, start_time, end_time, active, created_at
		FROM class_sessions
		WHERE active = TRUE
		ORDER BY weekday, start_time`)
	if err != nil {
		return nil, fmt.Errorf("error listing class sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.ClassSession
	for rows.Next() {
		var s models.ClassSession
		if err := rows.Scan(&s.ID, &s.Name, &s.Weekday, &s.StartTime, &s.EndTime, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning class session row: %w", err)
		}
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// CountActive counts active class sessions
func (r *ClassSessionRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM class_sessions WHERE active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting class sessions: %w", err)
	}
	return count, nil
}
