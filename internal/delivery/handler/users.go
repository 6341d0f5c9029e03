package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"internship-service/internal/application/command"
)

func (h *Handler) RegisterUser(c echo.Context) error {
	var createCommand command.CreateUserCommand
	if err := c.Bind(&createCommand); err != nil {
		return sendError(c, invalidBody(err))
	}

	result, err := h.users.CreateUser(c.Request().Context(), &createCommand)
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusCreated, result.Result)
}

func (h *Handler) Login(c echo.Context) error {
	var loginCommand command.LoginUserCommand
	if err := c.Bind(&loginCommand); err != nil {
		return sendError(c, invalidBody(err))
	}

	result, err := h.users.LoginUser(c.Request().Context(), &loginCommand)
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.users.LogoutUser(c.Request().Context(), bearerToken(c.Request())); err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) CurrentUser(c echo.Context) error {
	result, err := h.users.GetCurrentUser(c.Request().Context())
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var updateCommand command.UpdateProfileCommand
	if err := c.Bind(&updateCommand); err != nil {
		return sendError(c, invalidBody(err))
	}

	result, err := h.users.UpdateProfile(c.Request().Context(), &updateCommand)
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

func (h *Handler) ListBookmarks(c echo.Context) error {
	result, err := h.users.ListBookmarkedInternships(c.Request().Context())
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

func (h *Handler) ToggleBookmark(c echo.Context) error {
	result, err := h.users.ToggleBookmark(c.Request().Context(), &command.ToggleBookmarkCommand{
		InternshipId: c.Param("internshipId"),
	})
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result)
}

func (h *Handler) BookmarkStatus(c echo.Context) error {
	bookmarked := h.users.IsBookmarked(c.Request().Context(), c.Param("internshipId"))
	return sendJSON(c, http.StatusOK, command.ToggleBookmarkCommandResult{IsBookmarked: bookmarked})
}
