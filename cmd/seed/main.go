package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/service"
	"recipebox/internal/storage"
)

type seedRecipe struct {
	Title       string
	TimeMinutes uint
	Price       string
	Description string
	Link        string
	Tags        []string
	Ingredients []string
}

var sampleRecipes = []seedRecipe{
	{
		Title:       "Thai prawn curry",
		TimeMinutes: 25,
		Price:       "12.50",
		Description: "Fragrant red curry with king prawns.",
		Link:        "https://example.com/thai-prawn-curry",
		Tags:        []string{"thai", "dinner"},
		Ingredients: []string{"prawns", "coconut milk", "red curry paste"},
	},
	{
		Title:       "Avocado lime cheesecake",
		TimeMinutes: 60,
		Price:       "20.00",
		Description: "No-bake cheesecake with an avocado twist.",
		Link:        "https://example.com/avocado-cheesecake",
		Tags:        []string{"dessert", "vegetarian"},
		Ingredients: []string{"avocado", "lime", "cream cheese"},
	},
	{
		Title:       "Mushroom risotto",
		TimeMinutes: 45,
		Price:       "9.75",
		Description: "Slow-stirred arborio rice with porcini.",
		Link:        "https://example.com/mushroom-risotto",
		Tags:        []string{"dinner", "vegetarian"},
		Ingredients: []string{"arborio rice", "mushrooms", "parmesan"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.WaitForMySQL(cfg.MySQLDSN, cfg.DBWaitTimeout)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)

	userService := service.NewUserService(userRepo)
	recipeService := service.NewRecipeService(
		recipeRepo, tagRepo, ingredientRepo, storage.NewDiskStore(cfg.MediaRoot), nil)

	ctx := context.Background()

	admin, err := ensureUser(ctx, userRepo, userService, "admin@example.com", "changeme123", true)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	demo, err := ensureUser(ctx, userRepo, userService, "demo@example.com", "demopass123", false)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	log.Printf("Users ready: %s, %s", admin.Email, demo.Email)

	created := 0
	for _, sr := range sampleRecipes {
		price, err := decimal.NewFromString(sr.Price)
		if err != nil {
			log.Printf("Skipping recipe %q with invalid price: %s", sr.Title, sr.Price)
			continue
		}

		input := service.RecipeInput{
			Title:       sr.Title,
			TimeMinutes: sr.TimeMinutes,
			Price:       price,
			Description: sr.Description,
			Link:        sr.Link,
		}
		for _, name := range sr.Tags {
			input.Tags = append(input.Tags, service.NameInput{Name: name})
		}
		for _, name := range sr.Ingredients {
			input.Ingredients = append(input.Ingredients, service.NameInput{Name: name})
		}

		if _, err := recipeService.Create(ctx, demo.ID, input); err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", sr.Title, err)
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Recipes created: %d", created)
}

// ensureUser returns the existing user for the email or creates a new one.
func ensureUser(ctx context.Context, repo repository.UserRepository, svc service.UserService, email, password string, super bool) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if super {
		return svc.CreateSuperuser(ctx, email, password)
	}
	return svc.CreateUser(ctx, email, password)
}
