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

// CreateCategoryRequest represents a new expense category
// @Description Category creation request
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=3" example:"Food"`
	Color string `json:"color" validate:"required,min=3" example:"#ff8800"`
	Icon  string `json:"icon" validate:"required,min=3" example:"fork"`
}

type CategoryService struct {
	store     store.Store
	validator *ValidationHelper
}

func NewCategoryService(s store.Store) *CategoryService {
	return &CategoryService{store: s, validator: NewValidationHelper()}
}

// Create adds a category to the caller's account. Names are unique per account.
func (s *CategoryService) Create(ctx context.Context, identity Identity, req CreateCategoryRequest) (*models.Category, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	if _, err := scope.FindCategoryByName(ctx, req.Name); err == nil {
		return nil, NewConflictError("category already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find category by name: %w", err)
	}

	category := &models.Category{Name: req.Name, Color: req.Color, Icon: req.Icon}
	if err := scope.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, NewConflictError("category already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	log.Printf("[CATEGORY] Category %s (%s) created in account %s", category.ID, category.Name, identity.AccountID)
	return category, nil
}

// List returns the caller's categories ordered by name
func (s *CategoryService) List(ctx context.Context, identity Identity) ([]models.Category, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}

	categories, err := scope.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
