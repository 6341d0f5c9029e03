package interfaces

import (
	"context"

	"internship-service/internal/application/command"
	"internship-service/internal/application/query"
)

type ApplicationService interface {
	SubmitApplication(ctx context.Context, submitCommand *command.SubmitApplicationCommand) (*command.SubmitApplicationCommandResult, error)
	WithdrawApplication(ctx context.Context, withdrawCommand *command.WithdrawApplicationCommand) error
	ListMyApplications(ctx context.Context) (*query.ApplicationQueryListResult, error)
	ListAllApplications(ctx context.Context) (*query.ApplicationQueryListResult, error)
	UpdateApplicationStatus(ctx context.Context, updateCommand *command.UpdateApplicationStatusCommand) (*command.UpdateApplicationStatusCommandResult, error)
}
