package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"internship-service/internal/apperr"
	"internship-service/internal/domain/entities"
	"internship-service/internal/domain/repositories"
)

// EnsureAdmin creates an admin account unless a user already holds the email.
// It reports whether a new account was created.
func EnsureAdmin(ctx context.Context, userRepo repositories.UserRepository, name, email, password string) (*entities.User, bool, error) {
	if name == "" {
		name = "Administrator"
	}

	newUser := entities.NewUser(name, email, password, entities.RoleAdmin)
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, false, err
	}

	existingUser, err := userRepo.FindByEmail(ctx, newUser.Email)
	if err != nil {
		return nil, false, failure("failed to seed admin", err)
	}
	if existingUser != nil {
		log.Info().Str("email", existingUser.Email).Str("role", string(existingUser.Role)).Msg("Admin seed skipped, email already registered")
		return existingUser, false, nil
	}

	if err := validatedUser.HashPassword(); err != nil {
		return nil, false, failure("failed to seed admin", err)
	}

	createdUser, err := userRepo.Create(ctx, validatedUser)
	if apperr.Is(err, apperr.CodeConflict) {
		existingUser, findErr := userRepo.FindByEmail(ctx, newUser.Email)
		if findErr == nil && existingUser != nil {
			return existingUser, false, nil
		}
	}
	if err != nil {
		return nil, false, failure("failed to seed admin", err)
	}

	log.Info().Str("user_id", createdUser.Id).Str("email", createdUser.Email).Msg("Admin account created")
	return createdUser, true, nil
}
