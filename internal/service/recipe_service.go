package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"recipebox/internal/cache"
	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

const recipeCacheTTL = 5 * time.Minute

// NameInput is a nested tag/ingredient payload entry: just a name to resolve
// against the owner's existing rows.
type NameInput struct {
	Name string `json:"name"`
}

// RecipeInput carries the fields for creating a recipe.
type RecipeInput struct {
	Title       string
	TimeMinutes uint
	Price       decimal.Decimal
	Description string
	Link        string
	Tags        []NameInput
	Ingredients []NameInput
}

// RecipeUpdate carries a partial update. Nil fields stay untouched; a non-nil
// empty Tags/Ingredients slice clears that association set.
type RecipeUpdate struct {
	Title       *string
	TimeMinutes *uint
	Price       *decimal.Decimal
	Description *string
	Link        *string
	Tags        *[]NameInput
	Ingredients *[]NameInput
}

// ImageStore persists an uploaded recipe image and returns its relative path.
type ImageStore interface {
	Save(title, originalName string, src io.Reader) (string, error)
}

// RecipeService handles recipe CRUD including the tag/ingredient
// reconciliation applied on create and update.
type RecipeService interface {
	List(ctx context.Context, userID uint, tagsParam, ingredientsParam string, limit, offset int) ([]model.Recipe, error)
	Get(ctx context.Context, userID, id uint) (*model.Recipe, error)
	Create(ctx context.Context, userID uint, input RecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, userID, id uint, update RecipeUpdate) (*model.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
	SaveImage(ctx context.Context, userID, id uint, originalName string, src io.Reader) (*model.Recipe, error)
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	images         ImageStore
	cache          *cache.Client
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	images ImageStore,
	cache *cache.Client,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		images:         images,
		cache:          cache,
	}
}

func (s *recipeService) cacheKey(userID, id uint) string {
	return fmt.Sprintf("recipe:%d:%d", userID, id)
}

// List returns the user's recipes, narrowed by the optional comma-separated
// tag/ingredient id filters. Within one filter any id matches; when both are
// given a recipe must satisfy each.
func (s *recipeService) List(ctx context.Context, userID uint, tagsParam, ingredientsParam string, limit, offset int) ([]model.Recipe, error) {
	tagIDs, err := ParseIDList(tagsParam)
	if err != nil {
		return nil, err
	}
	ingredientIDs, err := ParseIDList(ingredientsParam)
	if err != nil {
		return nil, err
	}

	filter := repository.RecipeFilter{TagIDs: tagIDs, IngredientIDs: ingredientIDs}
	return s.recipeRepo.List(ctx, userID, filter, limit, offset)
}

// Get retrieves one of the user's recipes with caching. A foreign id behaves
// like a missing one.
func (s *recipeService) Get(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID, id)); data != nil {
		var cached model.Recipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRecipeNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(recipe); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID, id), payload, recipeCacheTTL)
	}
	return recipe, nil
}

// Create stores a new recipe and reconciles its nested tag/ingredient names.
// Missing names are created under the same owner as a side effect.
func (s *recipeService) Create(ctx context.Context, userID uint, input RecipeInput) (*model.Recipe, error) {
	tags, err := s.resolveTags(ctx, userID, input.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ctx, userID, input.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		UserID:      userID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
	}

	err = s.recipeRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.RecipeRepository) error {
		if err := txRepo.Create(ctx, recipe); err != nil {
			return err
		}
		if err := txRepo.ReplaceTags(ctx, recipe, tags); err != nil {
			return err
		}
		return txRepo.ReplaceIngredients(ctx, recipe, ingredients)
	})
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	recipe.Tags = tags
	recipe.Ingredients = ingredients
	return recipe, nil
}

// Update applies a partial update. A non-nil tag/ingredient list fully
// replaces the association set of that kind; a nil one leaves it alone.
func (s *recipeService) Update(ctx context.Context, userID, id uint, update RecipeUpdate) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRecipeNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		recipe.Title = *update.Title
	}
	if update.TimeMinutes != nil {
		recipe.TimeMinutes = *update.TimeMinutes
	}
	if update.Price != nil {
		recipe.Price = *update.Price
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.Link != nil {
		recipe.Link = *update.Link
	}

	var tags []model.Tag
	if update.Tags != nil {
		if tags, err = s.resolveTags(ctx, userID, *update.Tags); err != nil {
			return nil, err
		}
	}
	var ingredients []model.Ingredient
	if update.Ingredients != nil {
		if ingredients, err = s.resolveIngredients(ctx, userID, *update.Ingredients); err != nil {
			return nil, err
		}
	}

	err = s.recipeRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.RecipeRepository) error {
		if err := txRepo.Save(ctx, recipe); err != nil {
			return err
		}
		if update.Tags != nil {
			if err := txRepo.ReplaceTags(ctx, recipe, tags); err != nil {
				return err
			}
		}
		if update.Ingredients != nil {
			return txRepo.ReplaceIngredients(ctx, recipe, ingredients)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	if update.Tags != nil {
		recipe.Tags = tags
	}
	if update.Ingredients != nil {
		recipe.Ingredients = ingredients
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return recipe, nil
}

// Delete removes one of the user's recipes and its association rows. Tags and
// ingredients themselves survive as orphans.
func (s *recipeService) Delete(ctx context.Context, userID, id uint) error {
	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrRecipeNotFound
		}
		return err
	}
	if err := s.recipeRepo.Delete(ctx, recipe); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return nil
}

// SaveImage stores an uploaded file and records its path on the recipe.
func (s *recipeService) SaveImage(ctx context.Context, userID, id uint, originalName string, src io.Reader) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRecipeNotFound
		}
		return nil, err
	}

	path, err := s.images.Save(recipe.Title, originalName, src)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	recipe.Image = path
	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe image: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return recipe, nil
}

// resolveTags maps nested name payloads to tag rows via get-or-create.
// Duplicate names collapse to one linked entity.
func (s *recipeService) resolveTags(ctx context.Context, userID uint, inputs []NameInput) ([]model.Tag, error) {
	seen := make(map[string]struct{}, len(inputs))
	tags := make([]model.Tag, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tagRepo.GetOrCreate(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		if tag.UserID != userID {
			return nil, errors.ErrCrossOwner
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// resolveIngredients is resolveTags for the ingredient kind.
func (s *recipeService) resolveIngredients(ctx context.Context, userID uint, inputs []NameInput) ([]model.Ingredient, error) {
	seen := make(map[string]struct{}, len(inputs))
	ingredients := make([]model.Ingredient, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		ingredient, err := s.ingredientRepo.GetOrCreate(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", name, err)
		}
		if ingredient.UserID != userID {
			return nil, errors.ErrCrossOwner
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}
