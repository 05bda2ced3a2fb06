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

// CreateAccountRequest represents the signup payload
// @Description Account provisioning request
type CreateAccountRequest struct {
	Name                 string `json:"name" validate:"required" example:"Acme Ltd"`
	Email                string `json:"email" validate:"required,email" example:"admin@acme.com"`
	Password             string `json:"password" validate:"required,password" example:"Secret123"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required" example:"Secret123"`
}

// CreateAccountResponse holds the new account and its first administrator
type CreateAccountResponse struct {
	Account models.Account `json:"account"`
	User    models.User    `json:"user"`
}

type AccountService struct {
	store     store.Store
	hasher    PasswordHasher
	validator *ValidationHelper
}

func NewAccountService(s store.Store, hasher PasswordHasher) *AccountService {
	return &AccountService{store: s, hasher: hasher, validator: NewValidationHelper()}
}

// Create provisions an account and its ADMIN user in one transaction
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*CreateAccountResponse, error) {
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if req.Password != req.PasswordConfirmation {
		return nil, NewValidationError("Validation failed", map[string]string{
			"passwordConfirmation": "passwords do not match",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	log.Printf("[ACCOUNT] Provisioning request for email: %s", email)

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := models.Account{Name: req.Name, Email: email}
	user := models.User{Name: req.Name, Email: email, Password: hash, Role: models.RoleAdmin}

	err = s.store.WithinTx(ctx, func(tx store.Store) error {
		if err := tx.CreateAccount(ctx, &account); err != nil {
			return err
		}
		user.AccountID = account.ID
		return tx.CreateUser(ctx, &user)
	})
	if errors.Is(err, store.ErrConflict) {
		return nil, NewConflictError("email already in use")
	}
	if err != nil {
		return nil, fmt.Errorf("provision account: %w", err)
	}

	log.Printf("[ACCOUNT] Account %s created with admin %s", account.ID, user.ID)
	return &CreateAccountResponse{Account: account, User: user.Sanitized()}, nil
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	if _, err := s.store.FindAccountByEmail(ctx, email); err == nil {
		return NewConflictError("email already in use")
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("find account by email: %w", err)
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return NewConflictError("email already in use")
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("find user by email: %w", err)
	}
	return nil
}
