package middleware

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spendwise/backend/internal/services"
)

// RateLimiter is a fixed-window request counter per client IP kept in Redis.
// Without Redis every request is allowed.
type RateLimiter struct {
	redis  *redis.Client
	scope  string
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: redisClient, scope: scope, limit: limit, window: window}
}

func (rl *RateLimiter) key(r *http.Request) string {
	return fmt.Sprintf("ratelimit:%s:%s", rl.scope, clientIP(r))
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.redis == nil || rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := rl.key(r)

		// EXPIRE NX (Redis 7+) sets the window only when the key has no TTL,
		// so a lost expire is repaired by the next request.
		var incr *redis.IntCmd
		_, err := rl.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, rl.window)
			return nil
		})
		if err != nil {
			log.Printf("[RATELIMIT] Counter unavailable for %s, allowing request: %v", key, err)
			next.ServeHTTP(w, r)
			return
		}
		count := incr.Val()

		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			log.Printf("[RATELIMIT] Limit exceeded for %s (%d/%d)", key, count, rl.limit)
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			services.SendErrorResponse(w, "Too many requests", http.StatusTooManyRequests, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
