package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"internship-service/internal/apperr"
	"internship-service/internal/application/command"
	"internship-service/internal/application/query"
)

func (h *Handler) ListInternships(c echo.Context) error {
	listQuery, err := parseListQuery(c)
	if err != nil {
		return sendError(c, err)
	}

	result, err := h.internships.ListInternships(c.Request().Context(), listQuery)
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

func (h *Handler) GetInternship(c echo.Context) error {
	result, err := h.internships.FindInternshipById(c.Request().Context(), c.Param("id"))
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

func (h *Handler) CreateInternship(c echo.Context) error {
	var createCommand command.CreateInternshipCommand
	if err := c.Bind(&createCommand); err != nil {
		return sendError(c, invalidBody(err))
	}

	result, err := h.internships.CreateInternship(c.Request().Context(), &createCommand)
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusCreated, result.Result)
}

func (h *Handler) UpdateInternship(c echo.Context) error {
	var updateCommand command.UpdateInternshipCommand
	if err := c.Bind(&updateCommand); err != nil {
		return sendError(c, invalidBody(err))
	}
	updateCommand.Id = c.Param("id")

	result, err := h.internships.UpdateInternship(c.Request().Context(), &updateCommand)
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

func (h *Handler) DeleteInternship(c echo.Context) error {
	result, err := h.internships.DeleteInternship(c.Request().Context(), &command.DeleteInternshipCommand{Id: c.Param("id")})
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result)
}

func (h *Handler) Stats(c echo.Context) error {
	result, err := h.internships.GetStats(c.Request().Context())
	if err != nil {
		return sendError(c, err)
	}
	return sendJSON(c, http.StatusOK, result.Result)
}

// parseListQuery accepts skills both as repeated parameters and as a comma separated list.
func parseListQuery(c echo.Context) (*query.ListInternshipsQuery, error) {
	listQuery := &query.ListInternshipsQuery{
		Search:   c.QueryParam("search"),
		Location: c.QueryParam("location"),
		Type:     c.QueryParam("type"),
	}

	fields := map[string]string{}
	if raw := c.QueryParam("minStipend"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields["minStipend"] = "must be an integer"
		}
		listQuery.MinStipend = v
	}
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			fields["limit"] = "must be a non-negative integer"
		}
		listQuery.Limit = v
	}
	if raw := c.QueryParam("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			fields["offset"] = "must be a non-negative integer"
		}
		listQuery.Offset = v
	}
	if len(fields) > 0 {
		return nil, apperr.NewValidationError("invalid query parameters", fields)
	}

	for _, raw := range c.QueryParams()["skills"] {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				listQuery.Skills = append(listQuery.Skills, skill)
			}
		}
	}
	return listQuery, nil
}
