package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"internship-service/internal/apperr"
	"internship-service/internal/application/session"
)

const requestIDHeader = "X-Request-ID"

// SessionResolver turns a bearer token into a session. Invalid tokens resolve to false.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, bool)
}

// RequestID tags every request with an id and a logger carrying it.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(requestIDHeader, requestID)

			logger := log.With().Str("request_id", requestID).Logger()
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))
			return next(c)
		}
	}
}

func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			var event *zerolog.Event
			logger := zerolog.Ctx(c.Request().Context())
			switch {
			case status >= http.StatusInternalServerError:
				event = logger.Error()
			case status >= http.StatusBadRequest:
				event = logger.Warn()
			default:
				event = logger.Debug()
			}
			event.
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Msg("HTTP request")
			return nil
		}
	}
}

// GlobalRateLimit sheds load once the process-wide token bucket is empty.
func GlobalRateLimit(limiter *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return sendError(c, apperr.NewError(apperr.CodeRateLimited, "too many requests", nil))
			}
			return next(c)
		}
	}
}

// Authenticate places the caller's session on the request context when a valid bearer token is present.
func Authenticate(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				return next(c)
			}
			ctx := c.Request().Context()
			if s, ok := resolver.Resolve(ctx, token); ok {
				ctx = session.WithSession(ctx, s)
				logger := zerolog.Ctx(ctx).With().Str("user_id", s.UserID).Logger()
				c.SetRequest(c.Request().WithContext(logger.WithContext(ctx)))
			}
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
