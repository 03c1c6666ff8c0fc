package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/pkg/apperrors"
	"github.com/tatame/academy/internal/pkg/dberrors"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// Create inserts a new profile. The id is generated by the caller so the
// two-step student creation can target it for a compensating delete.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, role, full_name, email, password_hash, phone, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.Role,
		profile.FullName,
		profile.Email,
		profile.PasswordHash,
		profile.Phone,
		profile.AvatarURL,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by id
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, role, full_name, email, COALESCE(password_hash, ''), phone, avatar_url, created_at, updated_at, last_login_at
		FROM profiles
		WHERE id = $1
	`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Role,
		&profile.FullName,
		&profile.Email,
		&profile.PasswordHash,
		&profile.Phone,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.LastLoginAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return &profile, nil
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT id, role, full_name, email, COALESCE(password_hash, ''), phone, avatar_url, created_at, updated_at, last_login_at
		FROM profiles
		WHERE email = $1
	`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, email).Scan(
		&profile.ID,
		&profile.Role,
		&profile.FullName,
		&profile.Email,
		&profile.PasswordHash,
		&profile.Phone,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.LastLoginAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile by email: %w", err)
	}

	return &profile, nil
}

// UpdateContact updates the contact subset of a profile (name, email,
// phone, avatar). Nil fields are left untouched; the COALESCE form
// means a nullable field cannot be cleared back to NULL through this
// path, only overwritten.
func (r *ProfileRepository) UpdateContact(ctx context.Context, id string, fullName, email, phone, avatarURL *string) error {
	query := `
		UPDATE profiles
		SET full_name = COALESCE($2, full_name),
		    email = COALESCE($3, email),
		    phone = COALESCE($4, phone),
		    avatar_url = COALESCE($5, avatar_url),
		    updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id, fullName, email, phone, avatarURL)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *ProfileRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE profiles SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// UpdateLastLogin stamps the last successful login
func (r *ProfileRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// Delete hard-deletes a profile. Profiles are never removed in normal
// flows; this exists solely as the compensating action when the student
// insert of a two-step creation fails.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}
