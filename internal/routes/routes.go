// Package routes holds the route table and builds the chi router from it.
package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/spendwise/backend/internal/handlers"
	mW "github.com/spendwise/backend/internal/middleware"
	"github.com/spendwise/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
)

const BasePath = "/api/v1"

// Route binds a method and pattern to a handler under an access policy
type Route struct {
	Method     string
	Pattern    string
	Policy     services.Policy
	Handler    http.HandlerFunc
	Middleware []func(http.Handler) http.Handler
}

type Handlers struct {
	Auth     *handlers.AuthHandler
	Account  *handlers.AccountHandler
	Users    *handlers.UserHandler
	Category *handlers.CategoryHandler
	Expenses *handlers.ExpenseHandler
	Audit    *handlers.AuditHandler
}

// HealthChecker reports dependency status for /health
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type Options struct {
	Health          HealthChecker
	AllowedOrigins  []string
	GlobalRateLimit int
	LoginRateLimit  int
	RateLimitWindow time.Duration
	RequestTimeout  time.Duration
}

// Table lists every API route with its policy. loginLimiter wraps the login route only.
func Table(h Handlers, loginLimiter func(http.Handler) http.Handler) []Route {
	public, authenticated, admin := services.PublicPolicy, services.AuthenticatedPolicy, services.AdminPolicy

	return []Route{
		{Method: http.MethodPost, Pattern: "/auth/login", Policy: public, Handler: h.Auth.Login, Middleware: []func(http.Handler) http.Handler{loginLimiter}},
		{Method: http.MethodPost, Pattern: "/auth/logout", Policy: public, Handler: h.Auth.Logout},
		{Method: http.MethodGet, Pattern: "/auth/me", Policy: authenticated, Handler: h.Auth.Me},
		{Method: http.MethodPost, Pattern: "/account", Policy: public, Handler: h.Account.Create},

		{Method: http.MethodPost, Pattern: "/users", Policy: admin, Handler: h.Users.Create},
		{Method: http.MethodGet, Pattern: "/users", Policy: admin, Handler: h.Users.List},
		{Method: http.MethodGet, Pattern: "/users/{id}", Policy: admin, Handler: h.Users.Get},
		{Method: http.MethodPatch, Pattern: "/users/{id}", Policy: admin, Handler: h.Users.Update},
		{Method: http.MethodDelete, Pattern: "/users/{id}", Policy: admin, Handler: h.Users.Delete},

		{Method: http.MethodPost, Pattern: "/category-expenses", Policy: authenticated, Handler: h.Category.Create},
		{Method: http.MethodGet, Pattern: "/category-expenses", Policy: authenticated, Handler: h.Category.List},

		{Method: http.MethodPost, Pattern: "/expenses", Policy: authenticated, Handler: h.Expenses.Create},
		{Method: http.MethodGet, Pattern: "/expenses", Policy: authenticated, Handler: h.Expenses.List},
		{Method: http.MethodGet, Pattern: "/expenses/reports", Policy: authenticated, Handler: h.Expenses.Report},
		{Method: http.MethodGet, Pattern: "/expenses/{id}", Policy: authenticated, Handler: h.Expenses.Get},
		{Method: http.MethodPut, Pattern: "/expenses/{id}", Policy: authenticated, Handler: h.Expenses.Update},
		{Method: http.MethodDelete, Pattern: "/expenses/{id}", Policy: authenticated, Handler: h.Expenses.Delete},

		{Method: http.MethodGet, Pattern: "/audit-logs", Policy: admin, Handler: h.Audit.List},
	}
}

// NewRouter builds the HTTP handler. A nil redis client disables rate limiting.
func NewRouter(h Handlers, validator mW.TokenValidator, redisClient *redis.Client, opts Options) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"https://*", "http://*"}
	}

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", healthHandler(opts.Health))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	globalLimiter := mW.NewRateLimiter(redisClient, "global", opts.GlobalRateLimit, opts.RateLimitWindow)
	loginLimiter := mW.NewRateLimiter(redisClient, "login", opts.LoginRateLimit, opts.RateLimitWindow)

	r.Route(BasePath, func(r chi.Router) {
		r.Use(globalLimiter.Handler)

		// Route middleware runs before Authorize so a limited login never reaches token validation.
		for _, route := range Table(h, loginLimiter.Handler) {
			mws := append(append([]func(http.Handler) http.Handler{}, route.Middleware...), mW.Authorize(validator, route.Policy))
			r.With(mws...).Method(route.Method, route.Pattern, route.Handler)
		}
	})

	return r
}

func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"status": "healthy"}
		code := http.StatusOK

		if checker != nil {
			deps, ok := checker.Check(r.Context())
			body["dependencies"] = deps
			if !ok {
				body["status"] = "unhealthy"
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(body)
	}
}
