package interfaces

import (
	"context"

	"internship-service/internal/application/command"
	"internship-service/internal/application/query"
)

type UserService interface {
	CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error)
	LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
	LogoutUser(ctx context.Context, token string) error
	GetCurrentUser(ctx context.Context) (*query.UserQueryResult, error)
	UpdateProfile(ctx context.Context, updateCommand *command.UpdateProfileCommand) (*command.UpdateProfileCommandResult, error)
	ToggleBookmark(ctx context.Context, toggleCommand *command.ToggleBookmarkCommand) (*command.ToggleBookmarkCommandResult, error)
	ListBookmarkedInternships(ctx context.Context) (*query.InternshipQueryListResult, error)
	IsBookmarked(ctx context.Context, internshipID string) bool
}
