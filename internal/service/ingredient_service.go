package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// IngredientService handles ingredient CRUD scoped to the owning user.
type IngredientService interface {
	List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Ingredient, error)
	Get(ctx context.Context, userID, id uint) (*model.Ingredient, error)
	Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
	Update(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

type ingredientService struct {
	repo repository.IngredientRepository
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(repo repository.IngredientRepository) IngredientService {
	return &ingredientService{repo: repo}
}

func (s *ingredientService) List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Ingredient, error) {
	return s.repo.List(ctx, userID, assignedOnly, limit, offset)
}

func (s *ingredientService) Get(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *ingredientService) Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	ingredient, err := s.repo.GetOrCreate(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Update(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error) {
	ingredient, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ingredient.Name = name
	if err := s.repo.Update(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Delete(ctx context.Context, userID, id uint) error {
	ingredient, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ingredient); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
