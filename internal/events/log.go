package events

import (
	"context"
	"log"

	"github.com/spendwise/backend/internal/models"
)

// LogPublisher writes audit messages to the process log. Used when no broker is
// configured.
type LogPublisher struct {
	logger *log.Logger
}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{logger: log.Default()}
}

func (l *LogPublisher) PublishAudit(_ context.Context, entry models.AuditLog) error {
	data, err := NewAuditMessage(entry).ToJSON()
	if err != nil {
		return err
	}
	l.logger.Printf("AUDIT: %s", data)
	return nil
}

func (l *LogPublisher) Close() error {
	return nil
}
