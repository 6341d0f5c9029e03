package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"internship-service/internal/application/interfaces"
)

const handlerTimeout = 10 * time.Second

type KeyLimiter interface {
	Allow(key string) bool
}

// HealthCheck reports a dependency as healthy by returning nil.
type HealthCheck func(ctx context.Context) error

type Options struct {
	GlobalRPS   int
	GlobalBurst int
	BodyLimit   string
}

type Handler struct {
	users         interfaces.UserService
	internships   interfaces.InternshipService
	applications  interfaces.ApplicationService
	submitLimiter KeyLimiter
	healthChecks  map[string]HealthCheck
	metrics       *Metrics
}

func NewHandler(
	users interfaces.UserService,
	internships interfaces.InternshipService,
	applications interfaces.ApplicationService,
	submitLimiter KeyLimiter,
	healthChecks map[string]HealthCheck,
) *Handler {
	return &Handler{
		users:         users,
		internships:   internships,
		applications:  applications,
		submitLimiter: submitLimiter,
		healthChecks:  healthChecks,
		metrics:       NewMetrics(),
	}
}

// NewServer builds the echo instance with middleware and every route registered.
func NewServer(h *Handler, resolver SessionResolver, opts Options) *echo.Echo {
	if opts.GlobalRPS <= 0 {
		opts.GlobalRPS = 50
	}
	if opts.GlobalBurst <= 0 {
		opts.GlobalBurst = 100
	}
	if opts.BodyLimit == "" {
		opts.BodyLimit = "1M"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger())
	e.Use(h.metrics.Middleware())
	e.Use(GlobalRateLimit(rate.NewLimiter(rate.Limit(opts.GlobalRPS), opts.GlobalBurst)))
	e.Use(middleware.BodyLimit(opts.BodyLimit))
	e.Use(middleware.ContextTimeout(handlerTimeout))
	e.Use(Authenticate(resolver))

	h.Register(e)
	return e
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/metrics", h.Metrics)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	api.GET("/users/me", h.CurrentUser)
	api.PATCH("/users/me", h.UpdateProfile)

	api.GET("/bookmarks", h.ListBookmarks)
	api.POST("/bookmarks/:internshipId", h.ToggleBookmark)
	api.GET("/bookmarks/:internshipId", h.BookmarkStatus)

	api.GET("/internships", h.ListInternships)
	api.POST("/internships", h.CreateInternship)
	api.GET("/internships/:id", h.GetInternship)
	api.PATCH("/internships/:id", h.UpdateInternship)
	api.DELETE("/internships/:id", h.DeleteInternship)

	api.POST("/applications", h.SubmitApplication)
	api.GET("/applications", h.ListAllApplications)
	api.GET("/applications/mine", h.ListMyApplications)
	api.DELETE("/applications/:id", h.WithdrawApplication)
	api.PATCH("/applications/:id/status", h.UpdateApplicationStatus)

	api.GET("/admin/stats", h.Stats)
}

func (h *Handler) Health(c echo.Context) error {
	ctx := c.Request().Context()
	status := http.StatusOK
	checks := make(map[string]string, len(h.healthChecks))
	for name, check := range h.healthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	return c.JSON(status, Response{
		Success: status == http.StatusOK,
		Data:    map[string]interface{}{"status": overall, "checks": checks},
	})
}

func (h *Handler) Metrics(c echo.Context) error {
	return sendJSON(c, http.StatusOK, h.metrics.Snapshot())
}
