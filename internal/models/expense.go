package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record. Rows are never hard-deleted; DeletedAt marks
// a soft delete.
type Expense struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	Date        time.Time       `json:"date" db:"date"`
	CategoryID  string          `json:"categoryExpensesId" db:"category_id"`
	AccountID   string          `json:"accountId" db:"account_id"`
	CreatedByID string          `json:"createdById" db:"created_by_id"`
	DeletedAt   *time.Time      `json:"deletedAt" db:"deleted_at"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// Deleted reports whether the expense has been soft-deleted
func (e *Expense) Deleted() bool {
	return e.DeletedAt != nil
}

// ExpenseDetail is an expense joined with its category and creator, used by reports
type ExpenseDetail struct {
	Expense
	Category  Category    `json:"category"`
	CreatedBy UserSummary `json:"createdBy"`
}

// ExpenseFilter restricts expense listings. From is inclusive and To exclusive;
// zero values leave the bound open.
type ExpenseFilter struct {
	From        time.Time
	To          time.Time
	CreatedByID string
}
