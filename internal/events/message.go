// Package events publishes committed audit log rows to downstream consumers.
package events

import (
	"encoding/json"
	"time"

	"github.com/spendwise/backend/internal/models"
)

// AuditMessage is the wire form of an audit row
type AuditMessage struct {
	ID          string             `json:"id"`
	Action      models.AuditAction `json:"action"`
	Entity      string             `json:"entity"`
	EntityID    string             `json:"entityId"`
	AccountID   string             `json:"accountId"`
	UserID      string             `json:"userId"`
	Data        models.Snapshot    `json:"data"`
	CreatedAt   time.Time          `json:"createdAt"`
	PublishedAt time.Time          `json:"publishedAt"`
}

// NewAuditMessage wraps a committed audit row
func NewAuditMessage(entry models.AuditLog) *AuditMessage {
	return &AuditMessage{
		ID:          entry.ID,
		Action:      entry.Action,
		Entity:      entry.Entity,
		EntityID:    entry.EntityID,
		AccountID:   entry.AccountID,
		UserID:      entry.UserID,
		Data:        entry.Data,
		CreatedAt:   entry.CreatedAt,
		PublishedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *AuditMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
