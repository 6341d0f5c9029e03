package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"internship-service/internal/apperr"
	"internship-service/internal/application/command"
	"internship-service/internal/application/session"
)

func (h *Handler) SubmitApplication(c echo.Context) error {
	ctx := c.Request().Context()
	if s, ok := (session.ContextProvider{}).CurrentSession(ctx); ok && h.submitLimiter != nil {
		if !h.submitLimiter.Allow("submit:" + s.UserID) {
			return sendError(c, apperr.NewError(apperr.CodeRateLimited, "too many applications, please try again later", nil))
		}
	}

	var submitCommand command.SubmitApplicationCommand
	if err := c.Bind(&submitCommand); err != nil {
		return sendError(c, invalidBody(err))
	}

	result, err := h.applications.SubmitApplication(ctx, &submitCommand)
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusCreated, result.Result)
}

func (h *Handler) WithdrawApplication(c echo.Context) error {
	err := h.applications.WithdrawApplication(c.Request().Context(), &command.WithdrawApplicationCommand{Id: c.Param("id")})
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, map[string]string{"message": "application withdrawn"})
}

func (h *Handler) ListMyApplications(c echo.Context) error {
	result, err := h.applications.ListMyApplications(c.Request().Context())
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

func (h *Handler) ListAllApplications(c echo.Context) error {
	result, err := h.applications.ListAllApplications(c.Request().Context())
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

func (h *Handler) UpdateApplicationStatus(c echo.Context) error {
	var updateCommand command.UpdateApplicationStatusCommand
	if err := c.Bind(&updateCommand); err != nil {
		return sendError(c, invalidBody(err))
	}
	updateCommand.Id = c.Param("id")

	result, err := h.applications.UpdateApplicationStatus(c.Request().Context(), &updateCommand)
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}
