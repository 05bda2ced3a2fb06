package services

import (
	"context"
	"fmt"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
)

// AuditService exposes the audit trail of the caller's account
type AuditService struct {
	store store.Store
}

func NewAuditService(s store.Store) *AuditService {
	return &AuditService{store: s}
}

// List returns the account's audit rows newest first
func (s *AuditService) List(ctx context.Context, identity Identity) ([]models.AuditLog, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}

	logs, err := scope.AuditLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
