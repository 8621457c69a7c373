package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

const bcryptCost = 10

// UserService exposes account creation and profile operations. Password
// length is enforced at the HTTP validation boundary, not here.
type UserService interface {
	CreateUser(ctx context.Context, email, password string) (*model.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, email, password *string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService backed by the given repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// NormalizeEmail lowercases the domain portion of an email address while
// preserving the local part, e.g. "Test1@EXAMPLE.com" -> "Test1@example.com".
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// CreateUser stores a new user with a hashed password and normalized email.
// An empty email fails before anything is persisted.
func (s *userService) CreateUser(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, errors.ErrEmailRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateSuperuser is the regular creation path plus elevated flags.
func (s *userService) CreateSuperuser(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.CreateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("promote superuser: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial profile update; nil fields stay untouched.
func (s *userService) UpdateUser(ctx context.Context, id uint, email, password *string) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != nil {
		normalized := NormalizeEmail(*email)
		if normalized == "" {
			return nil, errors.ErrEmailRequired
		}
		user.Email = normalized
	}
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
