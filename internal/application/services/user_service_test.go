package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"internship-service/internal/apperr"
	"internship-service/internal/application/command"
	"internship-service/internal/domain/entities"
)

func TestCreateUserThenGetCurrentUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.userService.CreateUser(ctx, &command.CreateUserCommand{
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "analytical",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", created.Result.Email)
	assert.Equal(t, string(entities.RoleApplicant), created.Result.Role)

	stored, err := f.users.FindById(ctx, created.Result.Id)
	require.NoError(t, err)
	assert.NotEqual(t, "analytical", stored.Password)
	assert.NoError(t, stored.CheckPassword("analytical"))
	assert.Empty(t, stored.Bookmarks)

	current, err := f.userService.GetCurrentUser(asUser(stored))
	require.NoError(t, err)
	assert.Equal(t, created.Result.Name, current.Result.Name)
	assert.Equal(t, created.Result.Email, current.Result.Email)
	assert.Equal(t, created.Result.Role, current.Result.Role)
}

func TestCreateUserRejectsDuplicateEmailIgnoringCase(t *testing.T) {
	f := newFixture()
	f.seedUser("Ada", "ada@example.com", entities.RoleApplicant)

	_, err := f.userService.CreateUser(context.Background(), &command.CreateUserCommand{
		Name:     "Other Ada",
		Email:    "ADA@example.com",
		Password: "pw",
	})

	assert.True(t, apperr.Is(err, apperr.CodeConflict))
	assert.Equal(t, "user with this email already exists", apperr.Message(err))
}

func TestCreateUserValidatesInput(t *testing.T) {
	f := newFixture()

	_, err := f.userService.CreateUser(context.Background(), &command.CreateUserCommand{Email: "x@y.z", Password: "pw", Role: "superuser"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = f.userService.CreateUser(context.Background(), &command.CreateUserCommand{Email: "x@y.z"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestCreateUserRejectsOverlongPasswordAsValidation(t *testing.T) {
	f := newFixture()

	_, err := f.userService.CreateUser(context.Background(), &command.CreateUserCommand{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: strings.Repeat("p", 80),
	})

	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	assert.Equal(t, "must be at most 72 bytes", apperr.FieldsOf(err)["password"])
	stored, _ := f.users.FindByEmail(context.Background(), "ada@example.com")
	assert.Nil(t, stored)
}

func TestGetCurrentUserRequiresSession(t *testing.T) {
	f := newFixture()

	_, err := f.userService.GetCurrentUser(context.Background())

	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))
}

func TestGetCurrentUserMissingRecord(t *testing.T) {
	f := newFixture()

	_, err := f.userService.GetCurrentUser(asUser(&entities.User{Id: "ghost", Role: entities.RoleApplicant}))

	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestLoginIssuesTokenAndLogoutRevokesIt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.userService.CreateUser(ctx, &command.CreateUserCommand{Name: "Ada", Email: "ada@example.com", Password: "analytical"})
	require.NoError(t, err)

	_, err = f.userService.LoginUser(ctx, &command.LoginUserCommand{Email: "ada@example.com", Password: "wrong"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))

	_, err = f.userService.LoginUser(ctx, &command.LoginUserCommand{Email: "nobody@example.com", Password: "analytical"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))

	login, err := f.userService.LoginUser(ctx, &command.LoginUserCommand{Email: "ADA@example.com", Password: "analytical"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "ada@example.com", login.User.Email)

	issued := f.tokens.issued[login.Token]
	require.NotNil(t, issued)
	assert.Equal(t, entities.RoleApplicant, issued.Role)

	err = f.userService.LogoutUser(context.Background(), login.Token)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))

	stored, _ := f.users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, f.userService.LogoutUser(asUser(stored), login.Token))
	assert.Equal(t, []string{login.Token}, f.tokens.revoked)
}

func TestLoginRateLimited(t *testing.T) {
	f := newFixture()
	f.userService.rateLimiter = denyLimiter{}

	_, err := f.userService.LoginUser(context.Background(), &command.LoginUserCommand{Email: "ada@example.com", Password: "pw"})

	assert.True(t, apperr.Is(err, apperr.CodeRateLimited))
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	ada, ctx := f.seedUser("Ada", "ada@example.com", entities.RoleApplicant)
	f.seedUser("Grace", "grace@example.com", entities.RoleApplicant)

	_, err := f.userService.UpdateProfile(context.Background(), &command.UpdateProfileCommand{Name: "X"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))

	_, err = f.userService.UpdateProfile(ctx, &command.UpdateProfileCommand{Name: "Ada", Email: "GRACE@example.com"})
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
	assert.Equal(t, "email already in use", apperr.Message(err))

	updated, err := f.userService.UpdateProfile(ctx, &command.UpdateProfileCommand{Name: "Ada L.", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Result.Name)
	assert.Equal(t, "ada@example.com", updated.Result.Email)

	updated, err = f.userService.UpdateProfile(ctx, &command.UpdateProfileCommand{Name: "Ada", Email: "ada@lovelace.io"})
	require.NoError(t, err)
	assert.Equal(t, "ada@lovelace.io", updated.Result.Email)

	stored, _ := f.users.FindById(context.Background(), ada.Id)
	assert.Equal(t, "ada@lovelace.io", stored.Email)

	_, err = f.userService.UpdateProfile(ctx, &command.UpdateProfileCommand{Name: "  "})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestToggleBookmarkRoundTrip(t *testing.T) {
	f := newFixture()
	_, adminCtx := f.seedUser("Admin", "admin@example.com", entities.RoleAdmin)
	_, ctx := f.seedUser("Ada", "ada@example.com", entities.RoleApplicant)
	internship := createInternship(t, f, adminCtx, "Backend Intern", 40000, entities.InternshipTypeRemote)

	before, err := f.userService.ListBookmarkedInternships(ctx)
	require.NoError(t, err)
	assert.Empty(t, before.Result)

	on, err := f.userService.ToggleBookmark(ctx, &command.ToggleBookmarkCommand{InternshipId: internship})
	require.NoError(t, err)
	assert.True(t, on.IsBookmarked)
	assert.True(t, f.userService.IsBookmarked(ctx, internship))

	listed, err := f.userService.ListBookmarkedInternships(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Result, 1)
	assert.Equal(t, "Backend Intern", listed.Result[0].Title)
	assert.Equal(t, "admin@example.com", listed.Result[0].CreatedBy.Email)

	off, err := f.userService.ToggleBookmark(ctx, &command.ToggleBookmarkCommand{InternshipId: internship})
	require.NoError(t, err)
	assert.False(t, off.IsBookmarked)
	assert.False(t, f.userService.IsBookmarked(ctx, internship))

	after, err := f.userService.ListBookmarkedInternships(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Result, after.Result)
}

func TestToggleBookmarkRequiresApplicant(t *testing.T) {
	f := newFixture()
	_, adminCtx := f.seedUser("Admin", "admin@example.com", entities.RoleAdmin)

	_, err := f.userService.ToggleBookmark(adminCtx, &command.ToggleBookmarkCommand{InternshipId: "internship-1"})
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))
	assert.Equal(t, "only applicants can bookmark internships", apperr.Message(err))

	_, err = f.userService.ToggleBookmark(context.Background(), &command.ToggleBookmarkCommand{InternshipId: "internship-1"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))
}

func TestToggleBookmarkMissingUser(t *testing.T) {
	f := newFixture()
	ctx := asUser(&entities.User{Id: "ghost", Role: entities.RoleApplicant})

	_, err := f.userService.ToggleBookmark(ctx, &command.ToggleBookmarkCommand{InternshipId: "internship-1"})

	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListBookmarksDropsDeletedInternships(t *testing.T) {
	f := newFixture()
	_, adminCtx := f.seedUser("Admin", "admin@example.com", entities.RoleAdmin)
	_, ctx := f.seedUser("Ada", "ada@example.com", entities.RoleApplicant)
	kept := createInternship(t, f, adminCtx, "Kept", 1000, entities.InternshipTypeHybrid)
	gone := createInternship(t, f, adminCtx, "Gone", 1000, entities.InternshipTypeHybrid)

	for _, id := range []string{kept, gone} {
		_, err := f.userService.ToggleBookmark(ctx, &command.ToggleBookmarkCommand{InternshipId: id})
		require.NoError(t, err)
	}
	require.NoError(t, f.internships.Delete(context.Background(), gone))

	listed, err := f.userService.ListBookmarkedInternships(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Result, 1)
	assert.Equal(t, kept, listed.Result[0].Id)
}

func TestIsBookmarkedFailsSafe(t *testing.T) {
	f := newFixture()
	_, ctx := f.seedUser("Ada", "ada@example.com", entities.RoleApplicant)

	assert.False(t, f.userService.IsBookmarked(context.Background(), "internship-1"))

	f.users.err = errors.New("connection reset")
	assert.False(t, f.userService.IsBookmarked(ctx, "internship-1"))
}
