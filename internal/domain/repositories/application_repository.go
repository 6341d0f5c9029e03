package repositories

import (
	"context"

	"internship-service/internal/domain/entities"
)

type ApplicationCounts struct {
	Total    int64
	Pending  int64
	Accepted int64
	Rejected int64
}

type ApplicationRepository interface {
	// Create reports a duplicate (internship, user) pair as a conflict.
	Create(ctx context.Context, application *entities.Application) (*entities.Application, error)
	FindById(ctx context.Context, id string) (*entities.Application, error)
	FindByInternshipAndUser(ctx context.Context, internshipID, userID string) (*entities.Application, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Application, error)
	ListAll(ctx context.Context) ([]*entities.Application, error)
	UpdateStatus(ctx context.Context, id string, status entities.ApplicationStatus) (*entities.Application, error)
	Delete(ctx context.Context, id string) error
	DeleteByInternship(ctx context.Context, internshipID string) (int64, error)
	CountByStatus(ctx context.Context) (ApplicationCounts, error)
}
