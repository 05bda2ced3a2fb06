package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
)

const errExpenseAccess = "expense not found or access denied"

// CreateExpenseRequest represents a new expense
// @Description Expense creation request
type CreateExpenseRequest struct {
	Name        string          `json:"name" validate:"required,min=3" example:"Team lunch"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"42.50"`
	Description string          `json:"description" validate:"required,min=3" example:"Lunch with the team"`
	Date        string          `json:"date" validate:"required" example:"2024-06-15"`
	CategoryID  string          `json:"categoryExpensesId" validate:"required" example:"6f1c2a0e-4d3b-4a55-9b61-0c7f1f3f7c11"`
}

// UpdateExpenseRequest carries the fields to change; absent fields are kept
// @Description Expense update request
type UpdateExpenseRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=3"`
	Amount      *decimal.Decimal `json:"amount,omitempty" swaggertype:"string"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=3"`
	Date        *string          `json:"date,omitempty"`
	CategoryID  *string          `json:"categoryExpensesId,omitempty" validate:"omitempty,min=1"`
}

// ExpenseQuery holds the optional list filters. Day requires Month and Month
// requires Year.
type ExpenseQuery struct {
	Year        *int
	Month       *int
	Day         *int
	CreatedByID string
}

// Filter converts the query into a half-open date range:
// year+month+day → that day, year+month → that month, otherwise unbounded.
func (q ExpenseQuery) Filter() (models.ExpenseFilter, error) {
	filter := models.ExpenseFilter{CreatedByID: q.CreatedByID}
	fields := map[string]string{}

	if q.Month != nil && q.Year == nil {
		fields["month"] = "month requires year"
	}
	if q.Day != nil && q.Month == nil {
		fields["day"] = "day requires month"
	}
	if q.Month != nil && (*q.Month < 1 || *q.Month > 12) {
		fields["month"] = "month must be between 1 and 12"
	}
	if q.Year != nil && (*q.Year < 1 || *q.Year > 9999) {
		fields["year"] = "year is out of range"
	}
	if q.CreatedByID != "" {
		if _, err := uuid.Parse(q.CreatedByID); err != nil {
			fields["createdById"] = "createdById must be a valid id"
		}
	}
	if len(fields) > 0 {
		return filter, NewValidationError("Validation failed", fields)
	}

	switch {
	case q.Day != nil:
		from := time.Date(*q.Year, time.Month(*q.Month), *q.Day, 0, 0, 0, 0, time.UTC)
		if *q.Day < 1 || from.Month() != time.Month(*q.Month) {
			return filter, NewValidationError("Validation failed", map[string]string{"day": "day is out of range for month"})
		}
		filter.From, filter.To = from, from.AddDate(0, 0, 1)
	case q.Month != nil:
		from := time.Date(*q.Year, time.Month(*q.Month), 1, 0, 0, 0, 0, time.UTC)
		filter.From, filter.To = from, from.AddDate(0, 1, 0)
	}

	return filter, nil
}

// AuditPublisher receives audit rows after their transaction commits
type AuditPublisher interface {
	PublishAudit(ctx context.Context, entry models.AuditLog) error
}

// ExpenseService runs expense mutations and their audit rows in one transaction
type ExpenseService struct {
	store     store.Store
	publisher AuditPublisher
	validator *ValidationHelper
	now       func() time.Time
}

func NewExpenseService(s store.Store, publisher AuditPublisher) *ExpenseService {
	return &ExpenseService{
		store:     s,
		publisher: publisher,
		validator: NewValidationHelper(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ExpenseService) Create(ctx context.Context, identity Identity, req CreateExpenseRequest) (*models.Expense, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if req.Amount.Sign() <= 0 {
		return nil, NewValidationError("Validation failed", map[string]string{"amount": "amount must be a positive number"})
	}
	date, err := parseExpenseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if err := s.requireCategory(ctx, scope, req.CategoryID); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Name:        req.Name,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		CategoryID:  req.CategoryID,
	}

	var entry *models.AuditLog
	err = scope.WithinTx(ctx, func(tx *TenantScope) error {
		if err := tx.CreateExpense(ctx, expense); err != nil {
			return err
		}
		entry, err = tx.RecordAudit(ctx, models.AuditCreate, models.EntityExpense, expense.ID, expense)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	log.Printf("[EXPENSE] Expense %s created in account %s by %s", expense.ID, identity.AccountID, identity.UserID)
	s.publish(ctx, entry)
	return expense, nil
}

func (s *ExpenseService) Get(ctx context.Context, identity Identity, id string) (*models.Expense, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}

	expense, err := scope.FindExpense(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NewNotFoundError("expense not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, identity Identity, query ExpenseQuery) ([]models.Expense, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}

	expenses, err := scope.Expenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Update applies the given fields to an expense of the caller's account
func (s *ExpenseService) Update(ctx context.Context, identity Identity, id string, req UpdateExpenseRequest) (*models.Expense, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if req.Amount != nil && req.Amount.Sign() <= 0 {
		return nil, NewValidationError("Validation failed", map[string]string{"amount": "amount must be a positive number"})
	}
	var date time.Time
	if req.Date != nil {
		if date, err = parseExpenseDate(*req.Date); err != nil {
			return nil, err
		}
	}

	var updated *models.Expense
	var entry *models.AuditLog
	err = scope.WithinTx(ctx, func(tx *TenantScope) error {
		before, err := tx.FindExpense(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return NewAuthorizationError(errExpenseAccess)
		}
		if err != nil {
			return err
		}

		after := *before
		if req.Name != nil {
			after.Name = *req.Name
		}
		if req.Amount != nil {
			after.Amount = *req.Amount
		}
		if req.Description != nil {
			after.Description = *req.Description
		}
		if req.Date != nil {
			after.Date = date
		}
		if req.CategoryID != nil && *req.CategoryID != before.CategoryID {
			if err := s.requireCategory(ctx, tx, *req.CategoryID); err != nil {
				return err
			}
			after.CategoryID = *req.CategoryID
		}

		if err := tx.UpdateExpense(ctx, &after); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return NewAuthorizationError(errExpenseAccess)
			}
			return err
		}

		entry, err = tx.RecordAudit(ctx, models.AuditUpdate, models.EntityExpense, id, map[string]any{
			"before": before,
			"after":  after,
		})
		updated = &after
		return err
	})
	if err != nil {
		return nil, wrapDomain(err, "update expense")
	}

	log.Printf("[EXPENSE] Expense %s updated by %s", id, identity.UserID)
	s.publish(ctx, entry)
	return updated, nil
}

// Delete soft-deletes an expense. Deleted expenses are invisible to the scope, so
// a second delete fails the same way as a foreign id.
func (s *ExpenseService) Delete(ctx context.Context, identity Identity, id string) (*models.Expense, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}

	var deleted *models.Expense
	var entry *models.AuditLog
	err = scope.WithinTx(ctx, func(tx *TenantScope) error {
		before, err := tx.FindExpense(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return NewAuthorizationError(errExpenseAccess)
		}
		if err != nil {
			return err
		}

		at := s.now()
		if err := tx.SoftDeleteExpense(ctx, id, at); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return NewAuthorizationError(errExpenseAccess)
			}
			return err
		}

		entry, err = tx.RecordAudit(ctx, models.AuditSoftDelete, models.EntityExpense, id, before)
		after := *before
		after.DeletedAt = &at
		after.UpdatedAt = at
		deleted = &after
		return err
	})
	if err != nil {
		return nil, wrapDomain(err, "delete expense")
	}

	log.Printf("[EXPENSE] Expense %s soft-deleted by %s", id, identity.UserID)
	s.publish(ctx, entry)
	return deleted, nil
}

// Report aggregates the caller's expenses in the optional year/month window
func (s *ExpenseService) Report(ctx context.Context, identity Identity, query ExpenseQuery) (*Report, error) {
	scope, err := NewTenantScope(s.store, identity)
	if err != nil {
		return nil, err
	}
	query.Day, query.CreatedByID = nil, ""
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}

	details, err := scope.ExpenseDetails(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list expense details: %w", err)
	}

	report := BuildReport(details)
	return &report, nil
}

func (s *ExpenseService) requireCategory(ctx context.Context, scope *TenantScope, categoryID string) error {
	_, err := scope.FindCategory(ctx, categoryID)
	if errors.Is(err, store.ErrNotFound) {
		return NewNotFoundError("category not found")
	}
	if err != nil {
		return fmt.Errorf("find category: %w", err)
	}
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, entry *models.AuditLog) {
	if s.publisher == nil || entry == nil {
		return
	}
	if err := s.publisher.PublishAudit(ctx, *entry); err != nil {
		log.Printf("[AUDIT] Failed to publish audit log %s: %v", entry.ID, err)
	}
}

// parseExpenseDate accepts a calendar date or an RFC 3339 timestamp
func parseExpenseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, NewValidationError("Validation failed", map[string]string{"date": "date must be YYYY-MM-DD or RFC 3339"})
}

// wrapDomain keeps domain errors as they are and wraps anything else
func wrapDomain(err error, op string) error {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return fmt.Errorf("%s: %w", op, err)
}
