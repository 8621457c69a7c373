package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"domain lowercased", "Test1@EXAMPLE.com", "Test1@example.com"},
		{"local part preserved", "UPPER@Example.COM", "UPPER@example.com"},
		{"already normalized", "plain@example.com", "plain@example.com"},
		{"surrounding whitespace trimmed", "  user@EXAMPLE.org  ", "user@example.org"},
		{"no at sign left alone", "not-an-email", "not-an-email"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.input))
		})
	}
}

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedEmail string
	}{
		{
			name:     "successful creation stores normalized email",
			email:    "Test1@EXAMPLE.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedEmail: "Test1@example.com",
		},
		{
			name:          "empty email fails before any write",
			email:         "",
			password:      "password123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrEmailRequired,
		},
		{
			name:     "duplicate email surfaces as taken",
			email:    "dup@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			user, err := svc.CreateUser(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.expectedEmail, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
				assert.False(t, user.IsStaff)
				assert.False(t, user.IsSuperuser)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_CreateSuperuser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo)
	user, err := svc.CreateSuperuser(context.Background(), "admin@Example.COM", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser(t *testing.T) {
	email := "New@EXAMPLE.com"
	password := "newpassword1"

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
		ID:           1,
		Email:        "old@example.com",
		PasswordHash: "old-hash",
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo)
	user, err := svc.UpdateUser(context.Background(), 1, &email, &password)

	assert.NoError(t, err)
	assert.Equal(t, "New@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_NilFieldsUntouched(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
		ID:           1,
		Email:        "old@example.com",
		PasswordHash: "old-hash",
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo)
	user, err := svc.UpdateUser(context.Background(), 1, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, "old@example.com", user.Email)
	assert.Equal(t, "old-hash", user.PasswordHash)
	mockRepo.AssertExpectations(t)
}
