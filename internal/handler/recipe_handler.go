package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"recipebox/internal/errors"
	"recipebox/internal/service"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// CreateRecipeRequest represents a recipe creation payload with optional
// nested tag/ingredient names.
type CreateRecipeRequest struct {
	Title       string              `json:"title" validate:"required"`
	TimeMinutes uint                `json:"time_minutes"`
	Price       decimal.Decimal     `json:"price"`
	Description string              `json:"description"`
	Link        string              `json:"link" validate:"omitempty,url"`
	Tags        []service.NameInput `json:"tags"`
	Ingredients []service.NameInput `json:"ingredients"`
}

// UpdateRecipeRequest represents a partial recipe update. An absent tags or
// ingredients key leaves that association set untouched; an empty list clears
// it.
type UpdateRecipeRequest struct {
	Title       *string              `json:"title"`
	TimeMinutes *uint                `json:"time_minutes"`
	Price       *decimal.Decimal     `json:"price"`
	Description *string              `json:"description"`
	Link        *string              `json:"link" validate:"omitempty,url"`
	Tags        *[]service.NameInput `json:"tags"`
	Ingredients *[]service.NameInput `json:"ingredients"`
}

// ListRecipes godoc
// @Summary List the authenticated user's recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma-separated tag ids"
// @Param ingredients query string false "Comma-separated ingredient ids"
// @Param p query int false "Page number"
// @Param ps query int false "Page size (default 6, max 24)"
// @Success 200 {array} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	recipes, err := h.recipeService.List(
		c.Request().Context(), userID,
		c.QueryParam("tags"), c.QueryParam("ingredients"),
		limit, offset,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, recipes)
}

// CreateRecipe godoc
// @Summary Create a recipe with nested tags and ingredients
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Recipe payload"
// @Success 201 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), userID, service.RecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, recipe)
}

// GetRecipe godoc
// @Summary Get one of the authenticated user's recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} model.Recipe
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe godoc
// @Summary Partially update a recipe, reconciling nested tags and ingredients
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Recipe changes"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [patch]
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), userID, id, service.RecipeUpdate{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete one of the authenticated user's recipes
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.recipeService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload an image for a recipe
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/image [post]
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrImageRequired)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	recipe, err := h.recipeService.SaveImage(c.Request().Context(), userID, id, fileHeader.Filename, src)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, recipe)
}
