package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/app/forms"
	"yatube/app/models"
	"yatube/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store *repositories.Store
	cost  int
}

func NewUserService(store *repositories.Store) *UserService {
	return &UserService{store: store, cost: bcrypt.DefaultCost}
}

// WithCost returns a copy using the given bcrypt cost; tests use bcrypt.MinCost.
func (s *UserService) WithCost(cost int) *UserService {
	cp := *s
	cp.cost = cost
	return &cp
}

// Register creates an account from the signup form.
func (s *UserService) Register(ctx context.Context, form *forms.SignupForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	user := &models.User{Username: form.Username, FirstName: form.FirstName, LastName: form.LastName}
	err := s.create(ctx, user, form.Password1)
	if errors.Is(err, repositories.ErrAlreadyExists) {
		return nil, forms.Errors{"username": "Пользователь с таким именем уже существует."}
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds an account with the given credentials, for the CLI.
func (s *UserService) Create(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{Username: username}
	if err := s.create(ctx, user, password); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) create(ctx context.Context, user *models.User, password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Authenticate checks the credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.Users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
