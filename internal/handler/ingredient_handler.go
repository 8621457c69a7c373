package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipebox/internal/errors"
	"recipebox/internal/service"
)

// IngredientHandler handles ingredient endpoints.
type IngredientHandler struct {
	ingredientService service.IngredientService
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(ingredientService service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// ListIngredients godoc
// @Summary List the authenticated user's ingredients
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param assign_only query int false "Only ingredients assigned to a recipe (0 or 1)"
// @Param p query int false "Page number"
// @Param ps query int false "Page size (default 6, max 24)"
// @Success 200 {array} model.Ingredient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ingredients [get]
func (h *IngredientHandler) ListIngredients(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	assigned, err := assignedOnly(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	ingredients, err := h.ingredientService.List(c.Request().Context(), userID, assigned, limit, offset)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ingredients)
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NameRequest true "Ingredient payload"
// @Success 201 {object} model.Ingredient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ingredients [post]
func (h *IngredientHandler) CreateIngredient(c echo.Context) error {
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

	ingredient, err := h.ingredientService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, ingredient)
}

// GetIngredient godoc
// @Summary Get one of the authenticated user's ingredients
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 200 {object} model.Ingredient
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [get]
func (h *IngredientHandler) GetIngredient(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ingredient, err := h.ingredientService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ingredient)
}

// UpdateIngredient godoc
// @Summary Rename one of the authenticated user's ingredients
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param request body NameRequest true "Ingredient payload"
// @Success 200 {object} model.Ingredient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [patch]
func (h *IngredientHandler) UpdateIngredient(c echo.Context) error {
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

	ingredient, err := h.ingredientService.Update(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ingredient)
}

// DeleteIngredient godoc
// @Summary Delete one of the authenticated user's ingredients
// @Tags ingredients
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [delete]
func (h *IngredientHandler) DeleteIngredient(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.ingredientService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
