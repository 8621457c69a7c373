package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// TagService handles tag CRUD scoped to the owning user.
type TagService interface {
	List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Tag, error)
	Get(ctx context.Context, userID, id uint) (*model.Tag, error)
	Create(ctx context.Context, userID uint, name string) (*model.Tag, error)
	Update(ctx context.Context, userID, id uint, name string) (*model.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Tag, error) {
	return s.repo.List(ctx, userID, assignedOnly, limit, offset)
}

func (s *tagService) Get(ctx context.Context, userID, id uint) (*model.Tag, error) {
	tag, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

// Create resolves the name to the user's existing tag or a fresh row, matching
// the idempotent behavior of recipe reconciliation.
func (s *tagService) Create(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	tag, err := s.repo.GetOrCreate(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, userID, id uint, name string) (*model.Tag, error) {
	tag, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, userID, id uint) error {
	tag, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tag); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
