// Package store defines the persistence port used by the domain services and its
// postgres implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/spendwise/backend/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("record already exists")
)

// Store is the persistence port. Methods on tenant-owned entities take the owning
// account id explicitly; callers are expected to go through services.TenantScope.
type Store interface {
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	CreateAccount(ctx context.Context, account *models.Account) error

	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, accountID string) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error

	FindCategory(ctx context.Context, accountID, id string) (*models.Category, error)
	FindCategoryByName(ctx context.Context, accountID, name string) (*models.Category, error)
	ListCategories(ctx context.Context, accountID string) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error

	// FindExpense never returns soft-deleted rows.
	FindExpense(ctx context.Context, accountID, id string) (*models.Expense, error)
	ListExpenses(ctx context.Context, accountID string, filter models.ExpenseFilter) ([]models.Expense, error)
	ListExpenseDetails(ctx context.Context, accountID string, filter models.ExpenseFilter) ([]models.ExpenseDetail, error)
	CreateExpense(ctx context.Context, expense *models.Expense) error
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	SoftDeleteExpense(ctx context.Context, accountID, id string, at time.Time) error

	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, accountID string) ([]models.AuditLog, error)

	// WithinTx runs fn against a transactional Store. The transaction commits when
	// fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
