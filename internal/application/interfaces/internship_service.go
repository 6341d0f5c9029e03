package interfaces

import (
	"context"

	"internship-service/internal/application/command"
	"internship-service/internal/application/query"
)

type InternshipService interface {
	CreateInternship(ctx context.Context, createCommand *command.CreateInternshipCommand) (*command.CreateInternshipCommandResult, error)
	UpdateInternship(ctx context.Context, updateCommand *command.UpdateInternshipCommand) (*command.UpdateInternshipCommandResult, error)
	DeleteInternship(ctx context.Context, deleteCommand *command.DeleteInternshipCommand) (*command.DeleteInternshipCommandResult, error)
	ListInternships(ctx context.Context, listQuery *query.ListInternshipsQuery) (*query.InternshipQueryListResult, error)
	FindInternshipById(ctx context.Context, id string) (*query.InternshipQueryResult, error)
	GetStats(ctx context.Context) (*query.StatsQueryResult, error)
}
