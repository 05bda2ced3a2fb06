package services

import (
	"context"
	"slices"

	"github.com/spendwise/backend/internal/models"
)

// Identity is the authenticated principal of a request, taken from token claims
type Identity struct {
	UserID    string      `json:"id"`
	AccountID string      `json:"accountId"`
	Role      models.Role `json:"role"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
}

// Policy is the access requirement attached to a route
type Policy struct {
	Public bool
	// Roles restricts access to the listed roles; empty means any authenticated user
	Roles []models.Role
}

var (
	PublicPolicy        = Policy{Public: true}
	AuthenticatedPolicy = Policy{}
	AdminPolicy         = Policy{Roles: []models.Role{models.RoleAdmin}}
)

// Decide applies policy to the caller. Authentication is checked before roles.
func Decide(policy Policy, identity *Identity) error {
	if policy.Public {
		return nil
	}
	if identity == nil || identity.UserID == "" {
		return ErrInvalidToken
	}
	if len(policy.Roles) > 0 && !slices.Contains(policy.Roles, identity.Role) {
		return NewAuthorizationError("insufficient role")
	}
	return nil
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
