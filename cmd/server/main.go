package main

import (
	"log"
	"net/http"

	_ "recipebox/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"recipebox/internal/auth"
	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/handler"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/router"
	"recipebox/internal/service"
	"recipebox/internal/storage"
)

// @title Recipe Box API
// @version 1.0
// @description Recipe management API with per-user tags, ingredients, image upload and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	log.Println("waiting for database...")
	gormDB, err := db.WaitForMySQL(cfg.MySQLDSN, cfg.DBWaitTimeout)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	log.Println("database available")

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	imageStore := storage.NewDiskStore(cfg.MediaRoot)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, imageStore, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService, authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)

	// Register routes
	router.Register(
		e,
		cfg,
		userHandler,
		recipeHandler,
		tagHandler,
		ingredientHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
