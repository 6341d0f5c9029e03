package repositories

import (
	"context"

	"internship-service/internal/domain/entities"
)

// UserRepository returns (nil, nil) from lookups when no user matches.
type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByIds(ctx context.Context, ids []string) ([]*entities.User, error)
	UpdateProfile(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	// ToggleBookmark flips membership in a single atomic update and reports the new state.
	ToggleBookmark(ctx context.Context, userID, internshipID string) (bool, error)
}
