package router

import (
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recipebox/internal/auth"
	"recipebox/internal/config"
	"recipebox/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded recipe images
	e.Static("/uploads", filepath.Join(cfg.MediaRoot, "uploads"))

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.CreateUser)
	api.POST("/users/token", userHandler.CreateToken)
	api.POST("/users/token/refresh", userHandler.RefreshToken)
	api.POST("/users/logout", userHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Profile routes
	secured.GET("/users/me", userHandler.Me)
	secured.PATCH("/users/me", userHandler.UpdateMe)

	// Recipe routes
	secured.GET("/recipes", recipeHandler.ListRecipes)
	secured.POST("/recipes", recipeHandler.CreateRecipe)
	secured.GET("/recipes/:id", recipeHandler.GetRecipe)
	secured.PATCH("/recipes/:id", recipeHandler.UpdateRecipe)
	secured.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)
	secured.POST("/recipes/:id/image", recipeHandler.UploadImage)

	// Tag routes
	secured.GET("/tags", tagHandler.ListTags)
	secured.POST("/tags", tagHandler.CreateTag)
	secured.GET("/tags/:id", tagHandler.GetTag)
	secured.PATCH("/tags/:id", tagHandler.UpdateTag)
	secured.DELETE("/tags/:id", tagHandler.DeleteTag)

	// Ingredient routes
	secured.GET("/ingredients", ingredientHandler.ListIngredients)
	secured.POST("/ingredients", ingredientHandler.CreateIngredient)
	secured.GET("/ingredients/:id", ingredientHandler.GetIngredient)
	secured.PATCH("/ingredients/:id", ingredientHandler.UpdateIngredient)
	secured.DELETE("/ingredients/:id", ingredientHandler.DeleteIngredient)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
