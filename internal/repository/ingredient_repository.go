package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// IngredientRepository defines ingredient persistence operations, scoped to
// the owning user like TagRepository.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	Update(ctx context.Context, ingredient *model.Ingredient) error
	Delete(ctx context.Context, ingredient *model.Ingredient) error
	FindByID(ctx context.Context, userID, id uint) (*model.Ingredient, error)
	List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Ingredient, error)
	GetOrCreate(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) Delete(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Delete(ingredient).Error
}

func (r *ingredientRepository) FindByID(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// List returns the user's ingredients. When assignedOnly is set, only
// ingredients linked to at least one of the user's own recipes come back,
// deduplicated.
func (r *ingredientRepository) List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&model.Ingredient{}).Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", userID)
	}
	var ingredients []model.Ingredient
	if err := q.Distinct("ingredients.*").Order("ingredients.id").
		Limit(limit).Offset(offset).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetOrCreate resolves (user, name) to an existing ingredient or inserts a new
// one, retrying the lookup once if the unique index rejects a racing insert.
func (r *ingredientRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ingredient = model.Ingredient{UserID: userID, Name: name}
	err = r.db.WithContext(ctx).Create(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
