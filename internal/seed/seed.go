package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/tatame/academy/internal/app/models"
	appRepos "github.com/tatame/academy/internal/app/repositories"
	"github.com/tatame/academy/internal/config"
	"github.com/tatame/academy/internal/pkg/apperrors"
	pkgAuth "github.com/tatame/academy/internal/pkg/auth"
)

// CreateDefaultData provisions the principal instructor account so a
// fresh deployment has someone who can log in and run the academy.
// Existing accounts are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		lgr.Info().Msg("Seed admin credentials not configured, skipping default data")
		return nil
	}

	profileRepo := appRepos.NewProfileRepository(dbPool)

	if _, err := profileRepo.GetByEmail(ctx, cfg.Seed.AdminEmail); err == nil {
		lgr.Debug().Str("email", cfg.Seed.AdminEmail).Msg("Default principal instructor already exists")
		return nil
	} else if !errors.Is(err, apperrors.ErrProfileNotFound) {
		return err
	}

	hash, err := pkgAuth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	profile := &appModels.Profile{
		ID:           uuid.New().String(),
		Role:         appModels.RolePrincipalInstructor,
		FullName:     cfg.Seed.AdminName,
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: hash,
	}

	if err := profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			// Another instance seeded it between our check and insert.
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default principal instructor")
		return err
	}

	lgr.Info().Str("email", profile.Email).Msg("Default principal instructor created")
	return nil
}
