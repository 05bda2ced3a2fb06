package events

import (
	"context"
	"log"

	"github.com/spendwise/backend/internal/models"
)

// Publisher is an audit sink that owns a connection
type Publisher interface {
	PublishAudit(ctx context.Context, entry models.AuditLog) error
	Close() error
}

// Config selects the audit sink
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// NewPublisher connects to the broker when a URL is configured and falls back to
// the log publisher otherwise or when the broker is unreachable.
func NewPublisher(cfg Config) Publisher {
	if cfg.URL == "" {
		log.Println("[EVENTS] No AMQP URL configured, audit logs go to the process log")
		return NewLogPublisher()
	}

	p, err := NewAMQPPublisher(cfg.URL, cfg.Exchange, cfg.RoutingKey)
	if err != nil {
		log.Printf("[EVENTS] AMQP unavailable, falling back to log publisher: %v", err)
		return NewLogPublisher()
	}
	return p
}
