package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/odemir/campusclubs/internal/app/models"
	appRepos "github.com/odemir/campusclubs/internal/app/repositories"
	"github.com/odemir/campusclubs/internal/config"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
	pkgAuth "github.com/odemir/campusclubs/internal/pkg/auth"
)

// CreateDefaultData provisions the initial college admin account. Admins
// cannot self-register, so a fresh install needs one seeded to manage clubs.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminPassword == "" {
		lgr.Warn().Msg("No seed admin password configured, skipping admin seeding")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	if _, err := userRepo.FindByUsername(ctx, cfg.Seed.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := pkgAuth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Username:    cfg.Seed.AdminUsername,
		Email:       cfg.Seed.AdminEmail,
		Password:    hashedPassword,
		FirstName:   "College",
		LastName:    "Admin",
		Role:        appModels.RoleCollegeAdmin,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		if apperrors.Is(err, apperrors.ErrUsernameAlreadyExists, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("username", admin.Username).Msg("Seeded default college admin")
	return nil
}
