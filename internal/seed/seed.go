package seed

import (
	"context"
	"errors"
	"fmt"

	appModels "github.com/mindease/mindease-server/internal/app/models"
	appRepos "github.com/mindease/mindease-server/internal/app/repositories"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AdminAccount describes the administrator created on first boot
type AdminAccount struct {
	Email    string
	Password string
	Name     string
}

// CreateDefaultAdmin creates the administrator account unless its email is
// already registered. Running it on every boot is safe.
func CreateDefaultAdmin(ctx context.Context, userRepo appRepos.IUserRepository, admin AdminAccount, bcryptCost int, lgr zerolog.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		lgr.Warn().Msg("Admin seed skipped: email or password not configured")
		return nil
	}

	exists, err := userRepo.EmailExists(ctx, admin.Email)
	if err != nil {
		return fmt.Errorf("error checking admin account: %w", err)
	}
	if exists {
		lgr.Debug().Str("email", admin.Email).Msg("Admin account already exists")
		return nil
	}

	hash, err := auth.HashPassword(admin.Password, bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	var name *string
	if admin.Name != "" {
		name = &admin.Name
	}

	id, err := userRepo.CreateUser(ctx, &appModels.User{
		Email:        admin.Email,
		PasswordHash: hash,
		Name:         name,
		UserType:     appModels.UserTypeAdmin,
	})
	if err != nil {
		// Another instance seeded it between the check and the insert
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("error creating admin account: %w", err)
	}

	lgr.Info().Int64("userID", id).Str("email", admin.Email).Msg("Default admin account created")
	return nil
}
