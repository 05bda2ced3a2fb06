package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/spendwise/backend/internal/services"
)

// TokenValidator resolves a bearer token to the caller's identity
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (services.Identity, error)
}

// Authorize enforces policy for the wrapped route. A valid token puts the caller's
// identity in the request context. On public routes an invalid token is ignored;
// elsewhere it fails with 401 before any role check.
func Authorize(validator TokenValidator, policy services.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity *services.Identity

			if token, present := bearerToken(r); present {
				id, err := validator.ValidateToken(r.Context(), token)
				switch {
				case err == nil:
					identity = &id
					r = r.WithContext(services.WithIdentity(r.Context(), id))
				case policy.Public:
					log.Printf("[AUTH] Ignoring invalid token on public route %s", r.URL.Path)
				default:
					services.WriteError(w, err)
					return
				}
			}

			if err := services.Decide(policy, identity); err != nil {
				log.Printf("[AUTH] Access denied to %s %s: %v", r.Method, r.URL.Path, err)
				services.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header. present is true
// whenever the header is set, so malformed headers are treated as invalid tokens.
func bearerToken(r *http.Request) (token string, present bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return parts[1], true
}

// BearerToken is exported for handlers that act on the raw token, such as logout
func BearerToken(r *http.Request) string {
	token, _ := bearerToken(r)
	return token
}
