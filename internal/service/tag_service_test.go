package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
)

func TestTagService_Get_ForeignIDBehavesLikeMissing(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("FindByID", mock.Anything, uint(1), uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewTagService(repo)
	tag, err := svc.Get(context.Background(), 1, 42)

	assert.Nil(t, tag)
	assert.Equal(t, errors.ErrTagNotFound, err)
}

func TestTagService_Create_IsIdempotentPerName(t *testing.T) {
	repo := new(MockTagRepository)
	existing := &model.Tag{ID: 10, UserID: 1, Name: "vegan"}
	repo.On("GetOrCreate", mock.Anything, uint(1), "vegan").Return(existing, nil)

	svc := NewTagService(repo)
	tag, err := svc.Create(context.Background(), 1, "vegan")

	assert.NoError(t, err)
	assert.Equal(t, existing, tag)
	repo.AssertExpectations(t)
}

func TestTagService_List_PassesAssignedOnly(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("List", mock.Anything, uint(1), true, 6, 0).Return([]model.Tag{{ID: 10, UserID: 1, Name: "vegan"}}, nil)

	svc := NewTagService(repo)
	tags, err := svc.List(context.Background(), 1, true, 6, 0)

	assert.NoError(t, err)
	assert.Len(t, tags, 1)
	repo.AssertExpectations(t)
}

func TestIngredientService_Delete_NotFound(t *testing.T) {
	repo := new(MockIngredientRepository)
	repo.On("FindByID", mock.Anything, uint(1), uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewIngredientService(repo)
	err := svc.Delete(context.Background(), 1, 42)

	assert.Equal(t, errors.ErrIngredientNotFound, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
