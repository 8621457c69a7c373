package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// MockRecipeRepository is a mock implementation of RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Save(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) List(ctx context.Context, userID uint, filter repository.RecipeFilter, limit, offset int) ([]model.Recipe, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	args := m.Called(ctx, recipe, tags)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	args := m.Called(ctx, recipe, ingredients)
	return args.Error(0)
}

// WithTransaction runs the callback against the mock itself so expectations
// on the inner calls still apply.
func (m *MockRecipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.RecipeRepository) error) error {
	return fn(ctx, m)
}

// MockTagRepository is a mock implementation of TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Update(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) FindByID(ctx context.Context, userID, id uint) (*model.Tag, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Tag, error) {
	args := m.Called(ctx, userID, assignedOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

// MockIngredientRepository is a mock implementation of IngredientRepository.
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Delete(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) List(ctx context.Context, userID uint, assignedOnly bool, limit, offset int) ([]model.Ingredient, error) {
	args := m.Called(ctx, userID, assignedOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

type stubImageStore struct {
	path string
}

func (s stubImageStore) Save(title, originalName string, src io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, src)
	return s.path, nil
}

func newRecipeService(recipeRepo *MockRecipeRepository, tagRepo *MockTagRepository, ingredientRepo *MockIngredientRepository) RecipeService {
	return NewRecipeService(recipeRepo, tagRepo, ingredientRepo, stubImageStore{path: "uploads/recipe/stub.jpg"}, nil)
}

func TestRecipeService_Create_DeduplicatesTagNames(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)

	// Pre-existing (user, "a") tag gets reused, not duplicated.
	tagRepo.On("GetOrCreate", mock.Anything, uint(1), "a").Return(&model.Tag{ID: 10, UserID: 1, Name: "a"}, nil).Once()
	tagRepo.On("GetOrCreate", mock.Anything, uint(1), "b").Return(&model.Tag{ID: 11, UserID: 1, Name: "b"}, nil).Once()

	recipeRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Recipe")).Return(nil)
	recipeRepo.On("ReplaceTags", mock.Anything, mock.Anything, mock.MatchedBy(func(tags []model.Tag) bool {
		return len(tags) == 2 && tags[0].ID == 10 && tags[1].ID == 11
	})).Return(nil)
	recipeRepo.On("ReplaceIngredients", mock.Anything, mock.Anything, mock.MatchedBy(func(ingredients []model.Ingredient) bool {
		return len(ingredients) == 0
	})).Return(nil)

	svc := newRecipeService(recipeRepo, tagRepo, ingredientRepo)
	recipe, err := svc.Create(context.Background(), 1, RecipeInput{
		Title:       "Sample recipe",
		TimeMinutes: 22,
		Price:       decimal.RequireFromString("5.25"),
		Tags:        []NameInput{{Name: "a"}, {Name: "a"}, {Name: "b"}},
	})

	assert.NoError(t, err)
	assert.Len(t, recipe.Tags, 2)
	tagRepo.AssertExpectations(t)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_Update_EmptyListClearsTags(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)

	existing := &model.Recipe{
		ID:     5,
		UserID: 1,
		Title:  "Sample recipe",
		Tags:   []model.Tag{{ID: 10, UserID: 1, Name: "a"}},
	}
	recipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)
	recipeRepo.On("Save", mock.Anything, existing).Return(nil)
	recipeRepo.On("ReplaceTags", mock.Anything, existing, mock.MatchedBy(func(tags []model.Tag) bool {
		return len(tags) == 0
	})).Return(nil)

	svc := newRecipeService(recipeRepo, tagRepo, ingredientRepo)
	empty := []NameInput{}
	recipe, err := svc.Update(context.Background(), 1, 5, RecipeUpdate{Tags: &empty})

	assert.NoError(t, err)
	assert.Empty(t, recipe.Tags)
	recipeRepo.AssertExpectations(t)
	recipeRepo.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeService_Update_AbsentKeyLeavesTagsUntouched(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)

	existing := &model.Recipe{
		ID:     5,
		UserID: 1,
		Title:  "Sample recipe",
		Tags:   []model.Tag{{ID: 10, UserID: 1, Name: "a"}},
	}
	recipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)
	recipeRepo.On("Save", mock.Anything, existing).Return(nil)

	svc := newRecipeService(recipeRepo, tagRepo, ingredientRepo)
	title := "Renamed recipe"
	recipe, err := svc.Update(context.Background(), 1, 5, RecipeUpdate{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, "Renamed recipe", recipe.Title)
	assert.Len(t, recipe.Tags, 1)
	recipeRepo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything, mock.Anything)
	recipeRepo.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything, mock.Anything)
	tagRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeService_Update_ReconcilesNewIngredients(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)

	existing := &model.Recipe{ID: 5, UserID: 1, Title: "Sample recipe"}
	recipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)
	recipeRepo.On("Save", mock.Anything, existing).Return(nil)
	ingredientRepo.On("GetOrCreate", mock.Anything, uint(1), "salt").Return(&model.Ingredient{ID: 20, UserID: 1, Name: "salt"}, nil)
	recipeRepo.On("ReplaceIngredients", mock.Anything, existing, mock.MatchedBy(func(ingredients []model.Ingredient) bool {
		return len(ingredients) == 1 && ingredients[0].ID == 20
	})).Return(nil)

	svc := newRecipeService(recipeRepo, tagRepo, ingredientRepo)
	ingredients := []NameInput{{Name: "salt"}}
	recipe, err := svc.Update(context.Background(), 1, 5, RecipeUpdate{Ingredients: &ingredients})

	assert.NoError(t, err)
	assert.Len(t, recipe.Ingredients, 1)
	ingredientRepo.AssertExpectations(t)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_List_FilterParsing(t *testing.T) {
	tests := []struct {
		name           string
		tagsParam      string
		ingredientsParam string
		expectedFilter repository.RecipeFilter
		expectedError  error
	}{
		{
			name:           "no filters",
			expectedFilter: repository.RecipeFilter{},
		},
		{
			name:           "tag filter",
			tagsParam:      "10,2",
			expectedFilter: repository.RecipeFilter{TagIDs: []uint{10, 2}},
		},
		{
			name:             "both filters",
			tagsParam:        "1",
			ingredientsParam: "3,4",
			expectedFilter:   repository.RecipeFilter{TagIDs: []uint{1}, IngredientIDs: []uint{3, 4}},
		},
		{
			name:          "non-integer tag id is a client error",
			tagsParam:     "1,abc",
			expectedError: errors.ErrInvalidFilter,
		},
		{
			name:             "non-integer ingredient id is a client error",
			ingredientsParam: "x",
			expectedError:    errors.ErrInvalidFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipeRepo := new(MockRecipeRepository)
			tagRepo := new(MockTagRepository)
			ingredientRepo := new(MockIngredientRepository)

			if tt.expectedError == nil {
				recipeRepo.On("List", mock.Anything, uint(1), tt.expectedFilter, 6, 0).Return([]model.Recipe{}, nil)
			}

			svc := newRecipeService(recipeRepo, tagRepo, ingredientRepo)
			_, err := svc.List(context.Background(), 1, tt.tagsParam, tt.ingredientsParam, 6, 0)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				recipeRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				recipeRepo.AssertExpectations(t)
			}
		})
	}
}

func TestRecipeService_Get_ForeignIDBehavesLikeMissing(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	recipeRepo.On("FindByID", mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := newRecipeService(recipeRepo, new(MockTagRepository), new(MockIngredientRepository))
	recipe, err := svc.Get(context.Background(), 1, 99)

	assert.Nil(t, recipe)
	assert.Equal(t, errors.ErrRecipeNotFound, err)
}

func TestRecipeService_Delete(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	existing := &model.Recipe{ID: 5, UserID: 1}
	recipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)
	recipeRepo.On("Delete", mock.Anything, existing).Return(nil)

	svc := newRecipeService(recipeRepo, new(MockTagRepository), new(MockIngredientRepository))
	assert.NoError(t, svc.Delete(context.Background(), 1, 5))
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_SaveImage(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	existing := &model.Recipe{ID: 5, UserID: 1, Title: "Sample recipe"}
	recipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)
	recipeRepo.On("Save", mock.Anything, existing).Return(nil)

	svc := newRecipeService(recipeRepo, new(MockTagRepository), new(MockIngredientRepository))
	recipe, err := svc.SaveImage(context.Background(), 1, 5, "photo.jpg", strings.NewReader("fake image bytes"))

	assert.NoError(t, err)
	assert.Equal(t, "uploads/recipe/stub.jpg", recipe.Image)
	recipeRepo.AssertExpectations(t)
}
