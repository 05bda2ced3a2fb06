package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
)

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"admin@example.com"` // User email
	Password string `json:"password" validate:"required" example:"Secret123"`             // User password
}

// LoginResponse represents the authentication response
// @Description Authentication response structure
type LoginResponse struct {
	AccessToken string      `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT token
	ExpiresAt   time.Time   `json:"expiresAt"`
	User        models.User `json:"user"`
}

// AuthService verifies credentials, issues session tokens and validates them
type AuthService struct {
	store     store.Store
	hasher    PasswordHasher
	tokens    *JWTCodec
	blacklist TokenBlacklist
	validator *ValidationHelper
}

func NewAuthService(s store.Store, hasher PasswordHasher, tokens *JWTCodec, blacklist TokenBlacklist) *AuthService {
	return &AuthService{
		store:     s,
		hasher:    hasher,
		tokens:    tokens,
		blacklist: blacklist,
		validator: NewValidationHelper(),
	}
}

// Login checks email and password. Unknown emails and wrong passwords produce the
// same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	log.Printf("[AUTH] Login request for email: %s", email)

	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("[AUTH] User not found for email: %s", email)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !s.hasher.Verify(user.Password, req.Password) {
		log.Printf("[AUTH] Invalid password for user: %s", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Encode(user)
	if err != nil {
		return nil, err
	}

	log.Printf("[AUTH] Login successful for user %s", user.ID)
	return &LoginResponse{AccessToken: token, ExpiresAt: expiresAt, User: user.Sanitized()}, nil
}

// ValidateToken returns the identity carried by a token. The claims are those
// captured at issuance; the user is only checked for existence.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	claims, err := s.tokens.Decode(token)
	if err != nil {
		log.Printf("[AUTH] Token rejected: %v", err)
		return Identity{}, ErrInvalidToken
	}

	revoked, err := s.blacklist.IsRevoked(ctx, token)
	if err != nil {
		log.Printf("[AUTH] Blacklist lookup failed: %v", err)
		return Identity{}, ErrInvalidToken
	}
	if revoked {
		log.Printf("[AUTH] Revoked token presented for user %s", claims.UserID)
		return Identity{}, ErrInvalidToken
	}

	if _, err := s.store.FindUserByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("[AUTH] Token user %s no longer exists", claims.UserID)
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, fmt.Errorf("find token user: %w", err)
	}

	return Identity{
		UserID:    claims.UserID,
		AccountID: claims.AccountID,
		Role:      claims.Role,
		Name:      claims.Name,
		Email:     claims.Email,
	}, nil
}

// Logout blacklists token until it expires. Invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Revoke(ctx, token, ttl); err != nil {
		log.Printf("[AUTH] Failed to blacklist token: %v", err)
		return fmt.Errorf("revoke token: %w", err)
	}

	log.Printf("[AUTH] Token revoked for user %s", claims.UserID)
	return nil
}
