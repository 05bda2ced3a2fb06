package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// Health reports the reachability of the backing stores
type Health struct {
	DB      *sql.DB
	Redis   *redis.Client
	Timeout time.Duration
}

// Check pings every dependency. ok is false only when postgres is down; redis is
// optional.
func (h *Health) Check(ctx context.Context) (status map[string]string, ok bool) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status = map[string]string{"postgres": StatusUp, "redis": StatusDisabled}
	ok = true

	if err := h.DB.PingContext(ctx); err != nil {
		log.Printf("[HEALTH] postgres ping failed: %v", err)
		status["postgres"] = StatusDown
		ok = false
	}

	if h.Redis != nil {
		status["redis"] = StatusUp
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			log.Printf("[HEALTH] redis ping failed: %v", err)
			status["redis"] = StatusDown
		}
	}
	return status, ok
}
