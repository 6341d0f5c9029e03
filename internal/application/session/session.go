package session

import (
	"context"

	"internship-service/internal/apperr"
	"internship-service/internal/domain/entities"
)

type Session struct {
	UserID string
	Email  string
	Name   string
	Role   entities.Role
}

// Provider resolves the caller of a request. It reports false instead of failing.
type Provider interface {
	CurrentSession(ctx context.Context) (*Session, bool)
}

type contextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// ContextProvider reads the session placed on the context by the transport layer.
type ContextProvider struct{}

func (ContextProvider) CurrentSession(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	if !ok || s == nil || s.UserID == "" || !s.Role.Valid() {
		return nil, false
	}
	return s, true
}

type Guard struct {
	provider Provider
}

func NewGuard(provider Provider) *Guard {
	if provider == nil {
		provider = ContextProvider{}
	}
	return &Guard{provider: provider}
}

func (g *Guard) Current(ctx context.Context) (*Session, bool) {
	return g.provider.CurrentSession(ctx)
}

func (g *Guard) RequireAuthenticated(ctx context.Context) (*Session, error) {
	s, ok := g.provider.CurrentSession(ctx)
	if !ok {
		return nil, apperr.NewError(apperr.CodeUnauthenticated, "not authenticated", nil)
	}
	return s, nil
}

func (g *Guard) RequireRole(ctx context.Context, role entities.Role) (*Session, error) {
	s, err := g.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if s.Role != role {
		return nil, apperr.NewError(apperr.CodeForbidden, string(role)+" access required", nil)
	}
	return s, nil
}
