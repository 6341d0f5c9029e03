package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"internship-service/internal/apperr"
	"internship-service/internal/application/command"
	"internship-service/internal/application/interfaces"
	"internship-service/internal/application/mapper"
	"internship-service/internal/application/query"
	"internship-service/internal/application/session"
	"internship-service/internal/domain/entities"
	"internship-service/internal/domain/repositories"
)

type UserService struct {
	userRepo       repositories.UserRepository
	internshipRepo repositories.InternshipRepository
	guard          *session.Guard
	tokens         TokenIssuer
	rateLimiter    Limiter
}

func NewUserService(
	userRepo repositories.UserRepository,
	internshipRepo repositories.InternshipRepository,
	guard *session.Guard,
	tokens TokenIssuer,
	rateLimiter Limiter,
) interfaces.UserService {
	if rateLimiter == nil {
		rateLimiter = allowAll{}
	}
	return &UserService{
		userRepo:       userRepo,
		internshipRepo: internshipRepo,
		guard:          guard,
		tokens:         tokens,
		rateLimiter:    rateLimiter,
	}
}

func (s *UserService) CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error) {
	role, err := entities.ParseRole(createCommand.Role)
	if err != nil {
		return nil, err
	}

	newUser := entities.NewUser(createCommand.Name, createCommand.Email, createCommand.Password, role)
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, err
	}

	// Check if user already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, newUser.Email)
	if err != nil {
		return nil, failure("failed to register user", err)
	}
	if existingUser != nil {
		return nil, apperr.NewError(apperr.CodeConflict, "user with this email already exists", nil)
	}

	if err := validatedUser.HashPassword(); err != nil {
		return nil, failure("failed to register user", err)
	}

	// The unique email index reports a concurrent registration as a conflict.
	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		return nil, failure("failed to register user", err)
	}

	log.Info().Str("user_id", createdUser.Id).Str("role", string(createdUser.Role)).Msg("User registered")

	return &command.CreateUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}, nil
}

func (s *UserService) LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	email := entities.NormalizeEmail(loginCommand.Email)
	if email == "" || loginCommand.Password == "" {
		return nil, apperr.NewValidationError("email and password are required", nil)
	}

	if !s.rateLimiter.Allow("login:" + email) {
		return nil, apperr.NewError(apperr.CodeRateLimited, "too many login attempts, please try again later", nil)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, failure("failed to log in", err)
	}
	if user == nil || user.CheckPassword(loginCommand.Password) != nil {
		return nil, apperr.NewError(apperr.CodeUnauthenticated, "invalid credentials", nil)
	}

	token, expiresAt, err := s.tokens.IssueToken(ctx, &session.Session{
		UserID: user.Id,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, failure("failed to log in", err)
	}

	return &command.LoginUserCommandResult{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      mapper.NewUserResultFromEntity(user),
	}, nil
}

func (s *UserService) LogoutUser(ctx context.Context, token string) error {
	if _, err := s.guard.RequireAuthenticated(ctx); err != nil {
		return err
	}
	if err := s.tokens.RevokeToken(ctx, token); err != nil {
		return failure("failed to log out", err)
	}
	return nil
}

func (s *UserService) GetCurrentUser(ctx context.Context) (*query.UserQueryResult, error) {
	current, err := s.guard.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindById(ctx, current.UserID)
	if err != nil {
		return nil, failure("failed to get user", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}

	return &query.UserQueryResult{
		Result: mapper.NewUserResultFromEntity(user),
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, updateCommand *command.UpdateProfileCommand) (*command.UpdateProfileCommandResult, error) {
	current, err := s.guard.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindById(ctx, current.UserID)
	if err != nil {
		return nil, failure("failed to update profile", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}

	email := entities.NormalizeEmail(updateCommand.Email)
	if email == user.Email {
		email = ""
	}
	if email != "" {
		holder, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return nil, failure("failed to update profile", err)
		}
		if holder != nil && holder.Id != user.Id {
			return nil, apperr.NewError(apperr.CodeConflict, "email already in use", nil)
		}
	}

	validatedUser, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, failure("failed to update profile", err)
	}
	if err := validatedUser.UpdateProfile(updateCommand.Name, email); err != nil {
		return nil, err
	}

	updatedUser, err := s.userRepo.UpdateProfile(ctx, validatedUser)
	if err != nil {
		return nil, failure("failed to update profile", err)
	}
	if updatedUser == nil {
		return nil, notFound("user not found")
	}

	return &command.UpdateProfileCommandResult{
		Result: mapper.NewUserResultFromEntity(updatedUser),
	}, nil
}

func (s *UserService) ToggleBookmark(ctx context.Context, toggleCommand *command.ToggleBookmarkCommand) (*command.ToggleBookmarkCommandResult, error) {
	current, err := s.guard.RequireRole(ctx, entities.RoleApplicant)
	if err != nil {
		return nil, apperr.NewError(apperr.CodeOf(err), bookmarkDenied(err), nil)
	}

	internshipID := strings.TrimSpace(toggleCommand.InternshipId)
	if internshipID == "" {
		return nil, apperr.NewValidationError("internship id is required", map[string]string{"internship_id": "required"})
	}

	bookmarked, err := s.userRepo.ToggleBookmark(ctx, current.UserID, internshipID)
	if err != nil {
		return nil, failure("failed to toggle bookmark", err)
	}

	return &command.ToggleBookmarkCommandResult{IsBookmarked: bookmarked}, nil
}

func bookmarkDenied(err error) string {
	if apperr.Is(err, apperr.CodeForbidden) {
		return "only applicants can bookmark internships"
	}
	return apperr.Message(err)
}

func (s *UserService) ListBookmarkedInternships(ctx context.Context) (*query.InternshipQueryListResult, error) {
	current, err := s.guard.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindById(ctx, current.UserID)
	if err != nil {
		return nil, failure("failed to get bookmarks", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}

	// Bookmarks pointing at deleted internships are dropped here.
	internships, err := s.internshipRepo.FindByIds(ctx, user.Bookmarks)
	if err != nil {
		return nil, failure("failed to get bookmarks", err)
	}
	creators, err := usersById(ctx, s.userRepo, creatorIds(internships))
	if err != nil {
		return nil, failure("failed to get bookmarks", err)
	}

	return &query.InternshipQueryListResult{
		Result: mapper.NewInternshipResultsFromEntities(internships, creators),
	}, nil
}

// IsBookmarked never fails; any problem reads as not bookmarked.
func (s *UserService) IsBookmarked(ctx context.Context, internshipID string) bool {
	current, ok := s.guard.Current(ctx)
	if !ok {
		return false
	}

	user, err := s.userRepo.FindById(ctx, current.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", current.UserID).Msg("Check bookmark failed")
		return false
	}
	if user == nil {
		return false
	}
	return user.HasBookmark(strings.TrimSpace(internshipID))
}
