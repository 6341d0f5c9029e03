package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"internship-service/internal/apperr"
	"internship-service/internal/application/session"
	"internship-service/internal/domain/entities"
	"internship-service/internal/domain/repositories"
	"internship-service/internal/events"
)

// TokenIssuer hands out and revokes the bearer tokens that identify a session.
type TokenIssuer interface {
	IssueToken(ctx context.Context, s *session.Session) (string, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
}

type Limiter interface {
	Allow(key string) bool
}

type allowAll struct{}

func (allowAll) Allow(string) bool { return true }

// failure logs unexpected errors once and converts them to the internal code.
func failure(message string, err error) error {
	if apperr.CodeOf(err) == apperr.CodeInternal {
		log.Error().Err(err).Msg(message)
	}
	return apperr.Internal(message, err)
}

func notFound(message string) error {
	return apperr.NewError(apperr.CodeNotFound, message, nil)
}

func forbidden(message string) error {
	return apperr.NewError(apperr.CodeForbidden, message, nil)
}

func publish(ctx context.Context, publisher events.Publisher, subject string, event any) {
	if err := publisher.Publish(ctx, subject, event); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("Failed to publish event")
	}
}

func usersById(ctx context.Context, users repositories.UserRepository, ids []string) (map[string]*entities.User, error) {
	out := make(map[string]*entities.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	found, err := users.FindByIds(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		out[u.Id] = u
	}
	return out, nil
}

func internshipsById(ctx context.Context, internships repositories.InternshipRepository, ids []string) (map[string]*entities.Internship, error) {
	out := make(map[string]*entities.Internship, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	found, err := internships.FindByIds(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	for _, i := range found {
		out[i.Id] = i
	}
	return out, nil
}

func creatorIds(internships []*entities.Internship) []string {
	ids := make([]string, 0, len(internships))
	for _, i := range internships {
		ids = append(ids, i.CreatedBy)
	}
	return ids
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sessionUser(s *session.Session) *entities.User {
	return &entities.User{Id: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role}
}
