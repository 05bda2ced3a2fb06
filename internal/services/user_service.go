package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
)

// CreateUserRequest represents a new member of the caller's account
// @Description User creation request
type CreateUserRequest struct {
	Name     string      `json:"name" validate:"required" example:"John Doe"`
	Email    string      `json:"email" validate:"required,email" example:"john@acme.com"`
	Role     models.Role `json:"role" validate:"required,oneof=ADMIN USER" example:"USER"`
	Password string      `json:"password" validate:"required,password" example:"Secret123"`
}

// UpdateUserRequest carries the fields to change; absent fields are kept
// @Description User update request
type UpdateUserRequest struct {
	Name     *string      `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string      `json:"email,omitempty" validate:"omitempty,email"`
	Role     *models.Role `json:"role,omitempty" validate:"omitempty,oneof=ADMIN USER"`
	Password *string      `json:"password,omitempty" validate:"omitempty,password"`
}

// UserService manages the users of the caller's account
type UserService struct {
	store     store.Store
	hasher    PasswordHasher
	validator *ValidationHelper
}

func NewUserService(s store.Store, hasher PasswordHasher) *UserService {
	return &UserService{store: s, hasher: hasher, validator: NewValidationHelper()}
}

func (s *UserService) Create(ctx context.Context, identity Identity, req CreateUserRequest) (*models.User, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: req.Name, Email: email, Password: hash, Role: req.Role}
	if err := scope.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, NewConflictError("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("[USERS] User %s created in account %s by %s", user.ID, identity.AccountID, identity.UserID)
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *UserService) List(ctx context.Context, identity Identity) ([]models.User, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}

	users, err := scope.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, identity Identity, id string) (*models.User, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}

	user, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *UserService) Update(ctx context.Context, identity Identity, id string, req UpdateUserRequest) (*models.User, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	user, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := scope.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return nil, NewConflictError("email already in use")
		case errors.Is(err, store.ErrNotFound):
			return nil, NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	log.Printf("[USERS] User %s updated by %s", user.ID, identity.UserID)
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Delete removes a user of the caller's account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, identity Identity, id string) (*models.User, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}
	if id == identity.UserID {
		return nil, NewValidationError("cannot self-delete", map[string]string{"id": "cannot self-delete"})
	}

	user, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := scope.DeleteUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	log.Printf("[USERS] User %s deleted by %s", user.ID, identity.UserID)
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *UserService) find(ctx context.Context, scope *TenantScope, id string) (*models.User, error) {
	user, err := scope.FindUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ensureEmailFree fails with a conflict when email belongs to a user other than exceptID
func (s *UserService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	existing, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user by email: %w", err)
	}
	if existing.ID != exceptID {
		return NewConflictError("email already in use")
	}
	return nil
}
