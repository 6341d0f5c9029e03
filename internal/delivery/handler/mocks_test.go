package handler

import (
	"context"

	"github.com/stretchr/testify/mock"
	"internship-service/internal/application/command"
	"internship-service/internal/application/query"
	"internship-service/internal/application/session"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) CreateUser(ctx context.Context, c *command.CreateUserCommand) (*command.CreateUserCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.CreateUserCommandResult)
	return result, args.Error(1)
}

func (m *mockUserService) LoginUser(ctx context.Context, c *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.LoginUserCommandResult)
	return result, args.Error(1)
}

func (m *mockUserService) LogoutUser(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockUserService) GetCurrentUser(ctx context.Context) (*query.UserQueryResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*query.UserQueryResult)
	return result, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, c *command.UpdateProfileCommand) (*command.UpdateProfileCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.UpdateProfileCommandResult)
	return result, args.Error(1)
}

func (m *mockUserService) ToggleBookmark(ctx context.Context, c *command.ToggleBookmarkCommand) (*command.ToggleBookmarkCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.ToggleBookmarkCommandResult)
	return result, args.Error(1)
}

func (m *mockUserService) ListBookmarkedInternships(ctx context.Context) (*query.InternshipQueryListResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*query.InternshipQueryListResult)
	return result, args.Error(1)
}

func (m *mockUserService) IsBookmarked(ctx context.Context, internshipID string) bool {
	return m.Called(ctx, internshipID).Bool(0)
}

type mockInternshipService struct{ mock.Mock }

func (m *mockInternshipService) CreateInternship(ctx context.Context, c *command.CreateInternshipCommand) (*command.CreateInternshipCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.CreateInternshipCommandResult)
	return result, args.Error(1)
}

func (m *mockInternshipService) UpdateInternship(ctx context.Context, c *command.UpdateInternshipCommand) (*command.UpdateInternshipCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.UpdateInternshipCommandResult)
	return result, args.Error(1)
}

func (m *mockInternshipService) DeleteInternship(ctx context.Context, c *command.DeleteInternshipCommand) (*command.DeleteInternshipCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.DeleteInternshipCommandResult)
	return result, args.Error(1)
}

func (m *mockInternshipService) ListInternships(ctx context.Context, q *query.ListInternshipsQuery) (*query.InternshipQueryListResult, error) {
	args := m.Called(ctx, q)
	result, _ := args.Get(0).(*query.InternshipQueryListResult)
	return result, args.Error(1)
}

func (m *mockInternshipService) FindInternshipById(ctx context.Context, id string) (*query.InternshipQueryResult, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*query.InternshipQueryResult)
	return result, args.Error(1)
}

func (m *mockInternshipService) GetStats(ctx context.Context) (*query.StatsQueryResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*query.StatsQueryResult)
	return result, args.Error(1)
}

type mockApplicationService struct{ mock.Mock }

func (m *mockApplicationService) SubmitApplication(ctx context.Context, c *command.SubmitApplicationCommand) (*command.SubmitApplicationCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.SubmitApplicationCommandResult)
	return result, args.Error(1)
}

func (m *mockApplicationService) WithdrawApplication(ctx context.Context, c *command.WithdrawApplicationCommand) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockApplicationService) ListMyApplications(ctx context.Context) (*query.ApplicationQueryListResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*query.ApplicationQueryListResult)
	return result, args.Error(1)
}

func (m *mockApplicationService) ListAllApplications(ctx context.Context) (*query.ApplicationQueryListResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*query.ApplicationQueryListResult)
	return result, args.Error(1)
}

func (m *mockApplicationService) UpdateApplicationStatus(ctx context.Context, c *command.UpdateApplicationStatusCommand) (*command.UpdateApplicationStatusCommandResult, error) {
	args := m.Called(ctx, c)
	result, _ := args.Get(0).(*command.UpdateApplicationStatusCommandResult)
	return result, args.Error(1)
}

type tokenTable map[string]*session.Session

func (t tokenTable) Resolve(_ context.Context, token string) (*session.Session, bool) {
	s, ok := t[token]
	return s, ok
}

type denyKeys struct{ keys []string }

func (d *denyKeys) Allow(key string) bool {
	d.keys = append(d.keys, key)
	return false
}
