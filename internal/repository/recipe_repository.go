package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// RecipeFilter narrows a recipe listing. Empty id slices mean "no filter of
// that kind"; within a kind any match qualifies, across kinds both must hold.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines recipe persistence operations including the
// many-to-many association rewiring used by reconciliation.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Save(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, userID, id uint) (*model.Recipe, error)
	List(ctx context.Context, userID uint, filter RecipeFilter, limit, offset int) ([]model.Recipe, error)
	ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RecipeRepository) error) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts the recipe row only; associations are wired separately so
// reconciliation controls exactly which rows get linked.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).
		Omit("Tags", "Ingredients").
		Create(recipe).Error
}

func (r *recipeRepository) Save(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).
		Omit("Tags", "Ingredients").
		Save(recipe).Error
}

func (r *recipeRepository) Delete(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Select("Tags", "Ingredients").Delete(recipe).Error
}

// FindByID finds a recipe owned by the given user with associations loaded.
// Another user's recipe id yields gorm.ErrRecordNotFound.
func (r *recipeRepository) FindByID(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").Preload("Ingredients").
		Where("user_id = ? AND id = ?", userID, id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns the user's recipes, optionally narrowed by tag/ingredient id
// sets. A recipe matching several filter ids still appears once.
func (r *recipeRepository) List(ctx context.Context, userID uint, filter RecipeFilter, limit, offset int) ([]model.Recipe, error) {
	q := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []model.Recipe
	if err := q.Distinct("recipes.*").Order("recipes.id").
		Limit(limit).Offset(offset).
		Preload("Tags").Preload("Ingredients").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ReplaceTags sets the recipe's tag set to exactly the given tags.
func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(toInterfaces(tags)...)
}

// ReplaceIngredients sets the recipe's ingredient set to exactly the given
// ingredients.
func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(toInterfaces(ingredients)...)
}

// WithTransaction executes a function within a database transaction.
func (r *recipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &recipeRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

func toInterfaces[T any](items []T) []interface{} {
	out := make([]interface{}, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
