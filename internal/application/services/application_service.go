package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"internship-service/internal/apperr"
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

type ApplicationService struct {
	applicationRepo repositories.ApplicationRepository
	internshipRepo  repositories.InternshipRepository
	userRepo        repositories.UserRepository
	guard           *session.Guard
	publisher       events.Publisher
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	internshipRepo repositories.InternshipRepository,
	userRepo repositories.UserRepository,
	guard *session.Guard,
	publisher events.Publisher,
) interfaces.ApplicationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ApplicationService{
		applicationRepo: applicationRepo,
		internshipRepo:  internshipRepo,
		userRepo:        userRepo,
		guard:           guard,
		publisher:       publisher,
	}
}

func (s *ApplicationService) SubmitApplication(ctx context.Context, submitCommand *command.SubmitApplicationCommand) (*command.SubmitApplicationCommandResult, error) {
	current, err := s.guard.RequireRole(ctx, entities.RoleApplicant)
	if err != nil {
		if apperr.Is(err, apperr.CodeForbidden) {
			return nil, forbidden("only applicants can submit applications")
		}
		return nil, err
	}

	application, err := entities.NewApplication(strings.TrimSpace(submitCommand.InternshipId), current.UserID, submitCommand.ResumeURL)
	if err != nil {
		return nil, err
	}

	internship, err := s.internshipRepo.FindById(ctx, application.InternshipID)
	if err != nil {
		return nil, failure("failed to submit application", err)
	}
	if internship == nil {
		return nil, notFound("internship not found")
	}

	// Early exit only. The unique (internship, user) index is the authoritative guard.
	existing, err := s.applicationRepo.FindByInternshipAndUser(ctx, internship.Id, current.UserID)
	if err != nil {
		return nil, failure("failed to submit application", err)
	}
	if existing != nil {
		return nil, alreadyApplied()
	}

	created, err := s.applicationRepo.Create(ctx, application)
	if err != nil {
		if apperr.Is(err, apperr.CodeConflict) {
			return nil, alreadyApplied()
		}
		return nil, failure("failed to submit application", err)
	}

	log.Info().Str("application_id", created.Id).Str("internship_id", internship.Id).Str("user_id", current.UserID).Msg("Application submitted")
	publish(ctx, s.publisher, events.SubjectApplicationSubmitted, events.ApplicationSubmitted{
		ApplicationID: created.Id,
		InternshipID:  internship.Id,
		UserID:        current.UserID,
		OccurredAt:    time.Now().UTC(),
	})

	return &command.SubmitApplicationCommandResult{
		Result: mapper.NewApplicationResultFromEntity(created, mapper.NewInternshipResultFromEntity(internship, nil), nil),
	}, nil
}

func alreadyApplied() error {
	return apperr.NewError(apperr.CodeConflict, "you have already applied for this internship", nil)
}

func (s *ApplicationService) WithdrawApplication(ctx context.Context, withdrawCommand *command.WithdrawApplicationCommand) error {
	current, err := s.guard.RequireAuthenticated(ctx)
	if err != nil {
		return err
	}

	application, err := s.applicationRepo.FindById(ctx, withdrawCommand.Id)
	if err != nil {
		return failure("failed to withdraw application", err)
	}
	if application == nil {
		return notFound("application not found")
	}
	if !application.IsOwnedBy(current.UserID) {
		return forbidden("you can only withdraw your own applications")
	}
	if !application.CanWithdraw() {
		return apperr.NewError(apperr.CodeValidation, "cannot withdraw a processed application", nil)
	}

	if err := s.applicationRepo.Delete(ctx, application.Id); err != nil {
		return failure("failed to withdraw application", err)
	}

	log.Info().Str("application_id", application.Id).Msg("Application withdrawn")
	return nil
}

func (s *ApplicationService) ListMyApplications(ctx context.Context) (*query.ApplicationQueryListResult, error) {
	current, err := s.guard.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListByUser(ctx, current.UserID)
	if err != nil {
		return nil, failure("failed to fetch applications", err)
	}
	internships, err := internshipsById(ctx, s.internshipRepo, internshipIds(applications))
	if err != nil {
		return nil, failure("failed to fetch applications", err)
	}

	results := make([]*common.ApplicationResult, 0, len(applications))
	for _, application := range applications {
		results = append(results, mapper.NewApplicationResultFromEntity(application, internshipResult(internships[application.InternshipID]), nil))
	}
	return &query.ApplicationQueryListResult{Result: results}, nil
}

func (s *ApplicationService) ListAllApplications(ctx context.Context) (*query.ApplicationQueryListResult, error) {
	if _, err := s.guard.RequireRole(ctx, entities.RoleAdmin); err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListAll(ctx)
	if err != nil {
		return nil, failure("failed to fetch applications", err)
	}
	internships, err := internshipsById(ctx, s.internshipRepo, internshipIds(applications))
	if err != nil {
		return nil, failure("failed to fetch applications", err)
	}
	applicants, err := usersById(ctx, s.userRepo, applicantIds(applications))
	if err != nil {
		return nil, failure("failed to fetch applications", err)
	}

	results := make([]*common.ApplicationResult, 0, len(applications))
	for _, application := range applications {
		results = append(results, mapper.NewApplicationResultFromEntity(
			application,
			internshipResult(internships[application.InternshipID]),
			applicants[application.UserID],
		))
	}
	return &query.ApplicationQueryListResult{Result: results}, nil
}

// UpdateApplicationStatus does not refuse records that already hold a decision.
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, updateCommand *command.UpdateApplicationStatusCommand) (*command.UpdateApplicationStatusCommandResult, error) {
	current, err := s.guard.RequireRole(ctx, entities.RoleAdmin)
	if err != nil {
		return nil, err
	}

	status, err := entities.ParseDecision(updateCommand.Status)
	if err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.FindById(ctx, updateCommand.Id)
	if err != nil {
		return nil, failure("failed to update application status", err)
	}
	if application == nil {
		return nil, notFound("application not found")
	}

	internship, err := s.internshipRepo.FindById(ctx, application.InternshipID)
	if err != nil {
		return nil, failure("failed to update application status", err)
	}
	if internship == nil {
		return nil, notFound("internship not found")
	}
	if !internship.IsOwnedBy(current.UserID) {
		return nil, forbidden("you can only update applications for your own internships")
	}

	updated, err := s.applicationRepo.UpdateStatus(ctx, application.Id, status)
	if err != nil {
		return nil, failure("failed to update application status", err)
	}
	if updated == nil {
		return nil, notFound("application not found")
	}

	applicant, err := s.userRepo.FindById(ctx, updated.UserID)
	if err != nil {
		return nil, failure("failed to update application status", err)
	}

	log.Info().Str("application_id", updated.Id).Str("status", string(updated.Status)).Msg("Application status updated")

	event := events.ApplicationStatusChanged{
		ApplicationID:   updated.Id,
		InternshipID:    internship.Id,
		InternshipTitle: internship.Title,
		Company:         internship.Company,
		UserID:          updated.UserID,
		Status:          string(updated.Status),
		OccurredAt:      time.Now().UTC(),
	}
	if applicant != nil {
		event.ApplicantName = applicant.Name
		event.ApplicantEmail = applicant.Email
	}
	publish(ctx, s.publisher, events.SubjectApplicationStatusChanged, event)

	return &command.UpdateApplicationStatusCommandResult{
		Result: mapper.NewApplicationResultFromEntity(updated, mapper.NewInternshipResultFromEntity(internship, sessionUser(current)), applicant),
	}, nil
}

func internshipResult(internship *entities.Internship) *common.InternshipResult {
	if internship == nil {
		return nil
	}
	return mapper.NewInternshipResultFromEntity(internship, nil)
}

func internshipIds(applications []*entities.Application) []string {
	ids := make([]string, 0, len(applications))
	for _, a := range applications {
		ids = append(ids, a.InternshipID)
	}
	return ids
}

func applicantIds(applications []*entities.Application) []string {
	ids := make([]string, 0, len(applications))
	for _, a := range applications {
		ids = append(ids, a.UserID)
	}
	return ids
}
