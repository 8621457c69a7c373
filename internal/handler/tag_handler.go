package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"recipebox/internal/errors"
	"recipebox/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// NameRequest represents a tag or ingredient create/update payload.
type NameRequest struct {
	Name string `json:"name" validate:"required"`
}

// assignedOnly reads the assign_only query flag encoded as 0/1.
func assignedOnly(c echo.Context) (bool, error) {
	raw := c.QueryParam("assign_only")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || (v != 0 && v != 1) {
		return false, echo.NewHTTPError(http.StatusBadRequest, "assign_only must be 0 or 1")
	}
	return v == 1, nil
}

// ListTags godoc
// @Summary List the authenticated user's tags
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param assign_only query int false "Only tags assigned to a recipe (0 or 1)"
// @Param p query int false "Page number"
// @Param ps query int false "Page size (default 6, max 24)"
// @Success 200 {array} model.Tag
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) ListTags(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	assigned, err := assignedOnly(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	tags, err := h.tagService.List(c.Request().Context(), userID, assigned, limit, offset)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tags)
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NameRequest true "Tag payload"
// @Success 201 {object} model.Tag
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tags [post]
func (h *TagHandler) CreateTag(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, tag)
}

// GetTag godoc
// @Summary Get one of the authenticated user's tags
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} model.Tag
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [get]
func (h *TagHandler) GetTag(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tag, err := h.tagService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tag)
}

// UpdateTag godoc
// @Summary Rename one of the authenticated user's tags
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body NameRequest true "Tag payload"
// @Success 200 {object} model.Tag
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [patch]
func (h *TagHandler) UpdateTag(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.Update(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete one of the authenticated user's tags
// @Tags tags
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.tagService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
