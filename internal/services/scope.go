package services

import (
	"context"
	"time"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
)

// TenantScope wraps the store so that every read is filtered by the caller's
// account and every write is stamped with it. Account ids are never taken from
// request input.
type TenantScope struct {
	store    store.Store
	identity Identity
}

func NewTenantScope(s store.Store, identity Identity) (*TenantScope, error) {
	if identity.UserID == "" || identity.AccountID == "" {
		return nil, NewAuthenticationError("user has no linked account")
	}
	return &TenantScope{store: s, identity: identity}, nil
}

// WithinTx runs fn with a scope bound to a single transaction
func (t *TenantScope) WithinTx(ctx context.Context, fn func(*TenantScope) error) error {
	return t.store.WithinTx(ctx, func(tx store.Store) error {
		return fn(&TenantScope{store: tx, identity: t.identity})
	})
}

// Users

func (t *TenantScope) Users(ctx context.Context) ([]models.User, error) {
	return t.store.ListUsers(ctx, t.identity.AccountID)
}

// FindUser resolves users of other accounts as store.ErrNotFound
func (t *TenantScope) FindUser(ctx context.Context, id string) (*models.User, error) {
	user, err := t.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.AccountID != t.identity.AccountID {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (t *TenantScope) CreateUser(ctx context.Context, user *models.User) error {
	user.AccountID = t.identity.AccountID
	return t.store.CreateUser(ctx, user)
}

func (t *TenantScope) UpdateUser(ctx context.Context, user *models.User) error {
	user.AccountID = t.identity.AccountID
	return t.store.UpdateUser(ctx, user)
}

func (t *TenantScope) DeleteUser(ctx context.Context, user *models.User) error {
	if user.AccountID != t.identity.AccountID {
		return store.ErrNotFound
	}
	return t.store.DeleteUser(ctx, user.ID)
}

// Categories

func (t *TenantScope) Categories(ctx context.Context) ([]models.Category, error) {
	return t.store.ListCategories(ctx, t.identity.AccountID)
}

func (t *TenantScope) FindCategory(ctx context.Context, id string) (*models.Category, error) {
	return t.store.FindCategory(ctx, t.identity.AccountID, id)
}

func (t *TenantScope) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return t.store.FindCategoryByName(ctx, t.identity.AccountID, name)
}

func (t *TenantScope) CreateCategory(ctx context.Context, category *models.Category) error {
	category.AccountID = t.identity.AccountID
	return t.store.CreateCategory(ctx, category)
}

// Expenses

func (t *TenantScope) Expenses(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error) {
	return t.store.ListExpenses(ctx, t.identity.AccountID, filter)
}

func (t *TenantScope) ExpenseDetails(ctx context.Context, filter models.ExpenseFilter) ([]models.ExpenseDetail, error) {
	return t.store.ListExpenseDetails(ctx, t.identity.AccountID, filter)
}

// FindExpense resolves soft-deleted rows as store.ErrNotFound
func (t *TenantScope) FindExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := t.store.FindExpense(ctx, t.identity.AccountID, id)
	if err != nil {
		return nil, err
	}
	if expense.Deleted() {
		return nil, store.ErrNotFound
	}
	return expense, nil
}

func (t *TenantScope) CreateExpense(ctx context.Context, expense *models.Expense) error {
	expense.AccountID = t.identity.AccountID
	expense.CreatedByID = t.identity.UserID
	return t.store.CreateExpense(ctx, expense)
}

func (t *TenantScope) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.AccountID = t.identity.AccountID
	return t.store.UpdateExpense(ctx, expense)
}

func (t *TenantScope) SoftDeleteExpense(ctx context.Context, id string, at time.Time) error {
	return t.store.SoftDeleteExpense(ctx, t.identity.AccountID, id, at)
}

// Audit logs

func (t *TenantScope) AuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	return t.store.ListAuditLogs(ctx, t.identity.AccountID)
}

// RecordAudit appends an audit row attributed to the caller
func (t *TenantScope) RecordAudit(ctx context.Context, action models.AuditAction, entity, entityID string, data any) (*models.AuditLog, error) {
	snapshot, err := models.SnapshotOf(data)
	if err != nil {
		return nil, err
	}

	entry := &models.AuditLog{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Data:      snapshot,
		UserID:    t.identity.UserID,
		AccountID: t.identity.AccountID,
	}
	if err := t.store.CreateAuditLog(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
