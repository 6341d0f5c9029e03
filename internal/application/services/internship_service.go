package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"internship-service/internal/application/command"
	"internship-service/internal/application/common"
	"internship-service/internal/application/interfaces"
	"internship-service/internal/application/mapper"
	"internship-service/internal/application/query"
	"internship-service/internal/application/session"
	"internship-service/internal/domain/entities"
	"internship-service/internal/domain/repositories"
	"internship-service/internal/events"
)

type InternshipService struct {
	internshipRepo  repositories.InternshipRepository
	applicationRepo repositories.ApplicationRepository
	userRepo        repositories.UserRepository
	transactor      repositories.Transactor
	guard           *session.Guard
	publisher       events.Publisher
}

func NewInternshipService(
	internshipRepo repositories.InternshipRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	transactor repositories.Transactor,
	guard *session.Guard,
	publisher events.Publisher,
) interfaces.InternshipService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &InternshipService{
		internshipRepo:  internshipRepo,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		transactor:      transactor,
		guard:           guard,
		publisher:       publisher,
	}
}

func (s *InternshipService) CreateInternship(ctx context.Context, createCommand *command.CreateInternshipCommand) (*command.CreateInternshipCommandResult, error) {
	current, err := s.guard.RequireRole(ctx, entities.RoleAdmin)
	if err != nil {
		return nil, err
	}

	internship := entities.NewInternship(
		createCommand.Title,
		createCommand.Description,
		createCommand.Company,
		createCommand.Stipend,
		createCommand.Location,
		parseInternshipType(createCommand.Type),
		createCommand.Openings,
		createCommand.Skills,
		current.UserID,
	)
	validatedInternship, err := entities.NewValidatedInternship(internship)
	if err != nil {
		return nil, err
	}

	created, err := s.internshipRepo.Create(ctx, validatedInternship)
	if err != nil {
		return nil, failure("failed to create internship", err)
	}

	log.Info().Str("internship_id", created.Id).Str("created_by", current.UserID).Msg("Internship created")

	return &command.CreateInternshipCommandResult{
		Result: mapper.NewInternshipResultFromEntity(created, sessionUser(current)),
	}, nil
}

func (s *InternshipService) UpdateInternship(ctx context.Context, updateCommand *command.UpdateInternshipCommand) (*command.UpdateInternshipCommandResult, error) {
	current, err := s.guard.RequireRole(ctx, entities.RoleAdmin)
	if err != nil {
		return nil, err
	}

	internship, err := s.internshipRepo.FindById(ctx, updateCommand.Id)
	if err != nil {
		return nil, failure("failed to update internship", err)
	}
	if internship == nil {
		return nil, notFound("internship not found")
	}
	if !internship.IsOwnedBy(current.UserID) {
		return nil, forbidden("you can only edit your own internships")
	}

	patch := entities.InternshipPatch{
		Title:       updateCommand.Title,
		Description: updateCommand.Description,
		Company:     updateCommand.Company,
		Stipend:     updateCommand.Stipend,
		Location:    updateCommand.Location,
		Openings:    updateCommand.Openings,
		Skills:      updateCommand.Skills,
	}
	if updateCommand.Type != nil {
		internshipType := parseInternshipType(*updateCommand.Type)
		patch.Type = &internshipType
	}
	if err := internship.ApplyPatch(patch); err != nil {
		return nil, err
	}
	validatedInternship, err := entities.NewValidatedInternship(internship)
	if err != nil {
		return nil, err
	}

	updated, err := s.internshipRepo.Update(ctx, validatedInternship)
	if err != nil {
		return nil, failure("failed to update internship", err)
	}
	if updated == nil {
		return nil, notFound("internship not found")
	}

	return &command.UpdateInternshipCommandResult{
		Result: mapper.NewInternshipResultFromEntity(updated, sessionUser(current)),
	}, nil
}

// DeleteInternship removes the internship's applications before the internship itself.
func (s *InternshipService) DeleteInternship(ctx context.Context, deleteCommand *command.DeleteInternshipCommand) (*command.DeleteInternshipCommandResult, error) {
	current, err := s.guard.RequireRole(ctx, entities.RoleAdmin)
	if err != nil {
		return nil, err
	}

	internship, err := s.internshipRepo.FindById(ctx, deleteCommand.Id)
	if err != nil {
		return nil, failure("failed to delete internship", err)
	}
	if internship == nil {
		return nil, notFound("internship not found")
	}
	if !internship.IsOwnedBy(current.UserID) {
		return nil, forbidden("you can only delete your own internships")
	}

	var removed int64
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.applicationRepo.DeleteByInternship(ctx, internship.Id)
		if err != nil {
			return err
		}
		removed = n
		return s.internshipRepo.Delete(ctx, internship.Id)
	})
	if err != nil {
		return nil, failure("failed to delete internship", err)
	}

	log.Info().Str("internship_id", internship.Id).Int64("applications", removed).Msg("Internship deleted")
	publish(ctx, s.publisher, events.SubjectInternshipDeleted, events.InternshipDeleted{
		InternshipID:        internship.Id,
		DeletedApplications: removed,
		OccurredAt:          time.Now().UTC(),
	})

	return &command.DeleteInternshipCommandResult{DeletedApplications: removed}, nil
}

func (s *InternshipService) ListInternships(ctx context.Context, listQuery *query.ListInternshipsQuery) (*query.InternshipQueryListResult, error) {
	filter := entities.InternshipFilter{}
	if listQuery != nil {
		filter = entities.InternshipFilter{
			Search:     listQuery.Search,
			Location:   listQuery.Location,
			Type:       parseInternshipType(listQuery.Type),
			MinStipend: listQuery.MinStipend,
			Skills:     listQuery.Skills,
			Limit:      listQuery.Limit,
			Offset:     listQuery.Offset,
		}
	}

	internships, err := s.internshipRepo.List(ctx, filter.Normalize())
	if err != nil {
		return nil, failure("failed to fetch internships", err)
	}
	creators, err := usersById(ctx, s.userRepo, creatorIds(internships))
	if err != nil {
		return nil, failure("failed to fetch internships", err)
	}

	return &query.InternshipQueryListResult{
		Result: mapper.NewInternshipResultsFromEntities(internships, creators),
	}, nil
}

func (s *InternshipService) FindInternshipById(ctx context.Context, id string) (*query.InternshipQueryResult, error) {
	internship, err := s.internshipRepo.FindById(ctx, id)
	if err != nil {
		return nil, failure("failed to fetch internship", err)
	}
	if internship == nil {
		return nil, notFound("internship not found")
	}

	creator, err := s.userRepo.FindById(ctx, internship.CreatedBy)
	if err != nil {
		return nil, failure("failed to fetch internship", err)
	}

	return &query.InternshipQueryResult{
		Result: mapper.NewInternshipResultFromEntity(internship, creator),
	}, nil
}

func (s *InternshipService) GetStats(ctx context.Context) (*query.StatsQueryResult, error) {
	if _, err := s.guard.RequireRole(ctx, entities.RoleAdmin); err != nil {
		return nil, err
	}

	total, err := s.internshipRepo.Count(ctx)
	if err != nil {
		return nil, failure("failed to load stats", err)
	}
	counts, err := s.applicationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, failure("failed to load stats", err)
	}

	return &query.StatsQueryResult{
		Result: &common.StatsResult{
			TotalInternships:     total,
			TotalApplications:    counts.Total,
			PendingApplications:  counts.Pending,
			AcceptedApplications: counts.Accepted,
			RejectedApplications: counts.Rejected,
		},
	}, nil
}

func parseInternshipType(value string) entities.InternshipType {
	return entities.InternshipType(strings.ToLower(strings.TrimSpace(value)))
}
