package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// TagRepository defines tag persistence operations. All lookups are scoped to
// the owning user.
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, tag *model.Tag) error
	FindByID(ctx context.Context, userID, id uint) (*model.Tag, error)
	List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Tag, error)
	GetOrCreate(ctx context.Context, userID uint, name string) (*model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Delete(tag).Error
}

// FindByID finds a tag owned by the given user. Another user's tag id yields
// gorm.ErrRecordNotFound, never the row.
func (r *tagRepository) FindByID(ctx context.Context, userID, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// List returns the user's tags, newest name ordering left to the client. When
// assignedOnly is set, only tags linked to at least one of the user's own
// recipes are returned, deduplicated.
func (r *tagRepository) List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Tag, error) {
	q := r.db.WithContext(ctx).Model(&model.Tag{}).Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", userID)
	}
	var tags []model.Tag
	if err := q.Distinct("tags.*").Order("tags.id").
		Limit(limit).Offset(offset).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetOrCreate resolves (user, name) to an existing tag or inserts a new one.
// Two requests racing on the same name both reach the insert; the unique index
// rejects the loser, which then retries the lookup once.
func (r *tagRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = model.Tag{UserID: userID, Name: name}
	err = r.db.WithContext(ctx).Create(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// Lost the insert race, the row exists now.
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
