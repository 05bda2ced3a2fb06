package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AuditAction is the kind of mutation recorded by an audit log row
type AuditAction string

const (
	AuditCreate     AuditAction = "CREATE"
	AuditUpdate     AuditAction = "UPDATE"
	AuditSoftDelete AuditAction = "SOFT_DELETE"
)

// EntityExpense is the entity name stored for expense mutations
const EntityExpense = "Expense"

// AuditLog is an append-only record of a mutation made by a user
type AuditLog struct {
	ID        string       `json:"id" db:"id"`
	Action    AuditAction  `json:"action" db:"action"`
	Entity    string       `json:"entity" db:"entity"`
	EntityID  string       `json:"entityId" db:"entity_id"`
	Data      Snapshot     `json:"data" db:"data"`
	UserID    string       `json:"userId" db:"user_id"`
	AccountID string       `json:"accountId" db:"account_id"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	User      *UserSummary `json:"user,omitempty"`
}

// Snapshot type for JSONB audit payloads
type Snapshot map[string]any

// SnapshotOf converts any JSON-serializable value into a Snapshot
func SnapshotOf(v any) (Snapshot, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// Value implements driver.Valuer for Snapshot
func (s Snapshot) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for Snapshot
func (s *Snapshot) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, s)
}
