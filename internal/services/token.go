package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/models"
)

// Claims carries the identity of the user at the time the token was issued
type Claims struct {
	UserID    string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	AccountID string      `json:"accountId"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies HS256 session tokens
type JWTCodec struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewJWTCodec(secret string, expiry time.Duration) *JWTCodec {
	return &JWTCodec{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Encode issues a token for user and returns it with its expiry
func (c *JWTCodec) Encode(user *models.User) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(c.expiry)

	claims := Claims{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		AccountID: user.AccountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Decode verifies signature and expiry and returns the claims
func (c *JWTCodec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
