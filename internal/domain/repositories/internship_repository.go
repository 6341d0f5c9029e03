package repositories

import (
	"context"

	"internship-service/internal/domain/entities"
)

type InternshipRepository interface {
	Create(ctx context.Context, internship *entities.ValidatedInternship) (*entities.Internship, error)
	FindById(ctx context.Context, id string) (*entities.Internship, error)
	FindByIds(ctx context.Context, ids []string) ([]*entities.Internship, error)
	Update(ctx context.Context, internship *entities.ValidatedInternship) (*entities.Internship, error)
	Delete(ctx context.Context, id string) error
	// List returns matches newest first with the filter's limit and offset applied.
	List(ctx context.Context, filter entities.InternshipFilter) ([]*entities.Internship, error)
	Count(ctx context.Context) (int64, error)
}
