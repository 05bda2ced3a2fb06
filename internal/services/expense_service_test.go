package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
	"github.com/spendwise/backend/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	expenseID  = "c3e2f1a0-9b8c-4d7e-a6f5-4e3d2c1b0a03"
	categoryID = "5e4d3c2b-1a09-4f8e-b7d6-c5b4a3928106"
)

type recordingPublisher struct {
	mu      sync.Mutex
	entries []models.AuditLog
	err     error
}

func (p *recordingPublisher) PublishAudit(_ context.Context, entry models.AuditLog) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
	return p.err
}

func intPtr(i int) *int { return &i }

func TestExpenseQuery_Filter(t *testing.T) {
	utc := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		query     ExpenseQuery
		wantFrom  time.Time
		wantTo    time.Time
		wantField string
	}{
		{name: "unbounded", query: ExpenseQuery{}},
		{name: "year alone is unbounded", query: ExpenseQuery{Year: intPtr(2024)}},
		{name: "creator id", query: ExpenseQuery{CreatedByID: memberID}},
		{name: "malformed creator id", query: ExpenseQuery{CreatedByID: "abc"}, wantField: "createdById"},
		{name: "month", query: ExpenseQuery{Year: intPtr(2024), Month: intPtr(6)}, wantFrom: utc(2024, time.June, 1), wantTo: utc(2024, time.July, 1)},
		{name: "december rolls over", query: ExpenseQuery{Year: intPtr(2024), Month: intPtr(12)}, wantFrom: utc(2024, time.December, 1), wantTo: utc(2025, time.January, 1)},
		{name: "day", query: ExpenseQuery{Year: intPtr(2024), Month: intPtr(2), Day: intPtr(29)}, wantFrom: utc(2024, time.February, 29), wantTo: utc(2024, time.March, 1)},
		{name: "month without year", query: ExpenseQuery{Month: intPtr(6)}, wantField: "month"},
		{name: "day without month", query: ExpenseQuery{Year: intPtr(2024), Day: intPtr(3)}, wantField: "day"},
		{name: "month out of range", query: ExpenseQuery{Year: intPtr(2024), Month: intPtr(13)}, wantField: "month"},
		{name: "zero month", query: ExpenseQuery{Year: intPtr(2024), Month: intPtr(0)}, wantField: "month"},
		{name: "day past month end", query: ExpenseQuery{Year: intPtr(2023), Month: intPtr(2), Day: intPtr(29)}, wantField: "day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := tt.query.Filter()
			if tt.wantField != "" {
				require.Error(t, err)
				assert.Contains(t, err.(*Error).Fields, tt.wantField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, filter.From)
			assert.Equal(t, tt.wantTo, filter.To)
		})
	}
}

func validExpense() CreateExpenseRequest {
	return CreateExpenseRequest{
		Name:        "Team lunch",
		Amount:      decimal.RequireFromString("42.50"),
		Description: "Lunch with the team",
		Date:        "2024-06-15",
		CategoryID:  categoryID,
	}
}

func expectCreate(ms *storetest.MockStore) {
	ms.On("FindCategory", mock.Anything, accountA, categoryID).Return(&models.Category{ID: categoryID, AccountID: accountA}, nil)
	ms.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	ms.On("CreateExpense", mock.Anything, mock.AnythingOfType("*models.Expense")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Expense).ID = expenseID }).
		Return(nil)
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps caller and writes audit row", func(t *testing.T) {
		ms := new(storetest.MockStore)
		publisher := &recordingPublisher{}
		service := NewExpenseService(ms, publisher)
		expectCreate(ms)
		ms.On("CreateAuditLog", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
			return e.Action == models.AuditCreate && e.Entity == models.EntityExpense &&
				e.EntityID == expenseID && e.AccountID == accountA && e.UserID == memberID
		})).Return(nil).Once()

		expense, err := service.Create(ctx, memberA, validExpense())
		require.NoError(t, err)
		assert.Equal(t, accountA, expense.AccountID)
		assert.Equal(t, memberID, expense.CreatedByID)
		assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), expense.Date)

		require.Len(t, publisher.entries, 1)
		assert.Equal(t, "Team lunch", publisher.entries[0].Data["name"])
		ms.AssertExpectations(t)
	})

	t.Run("category of another account", func(t *testing.T) {
		ms := new(storetest.MockStore)
		service := NewExpenseService(ms, nil)
		ms.On("FindCategory", mock.Anything, accountA, categoryID).Return(nil, store.ErrNotFound)

		_, err := service.Create(ctx, memberA, validExpense())
		assert.Equal(t, KindNotFound, KindOf(err))
		ms.AssertNotCalled(t, "CreateExpense", mock.Anything, mock.Anything)
	})

	t.Run("non positive amount", func(t *testing.T) {
		service := NewExpenseService(new(storetest.MockStore), nil)
		req := validExpense()
		req.Amount = decimal.Zero

		_, err := service.Create(ctx, memberA, req)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("bad date", func(t *testing.T) {
		service := NewExpenseService(new(storetest.MockStore), nil)
		req := validExpense()
		req.Date = "15/06/2024"

		_, err := service.Create(ctx, memberA, req)
		require.Error(t, err)
		assert.Contains(t, err.(*Error).Fields, "date")
	})

	t.Run("audit failure aborts the mutation", func(t *testing.T) {
		ms := new(storetest.MockStore)
		publisher := &recordingPublisher{}
		service := NewExpenseService(ms, publisher)
		expectCreate(ms)
		ms.On("CreateAuditLog", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := service.Create(ctx, memberA, validExpense())
		assert.Error(t, err)
		assert.Empty(t, publisher.entries)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		ms := new(storetest.MockStore)
		service := NewExpenseService(ms, &recordingPublisher{err: errors.New("broker down")})
		expectCreate(ms)
		ms.On("CreateAuditLog", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Create(ctx, memberA, validExpense())
		assert.NoError(t, err)
	})
}

func storedExpense() *models.Expense {
	return &models.Expense{
		ID:          expenseID,
		Name:        "Team lunch",
		Amount:      decimal.RequireFromString("42.50"),
		Description: "Lunch with the team",
		Date:        time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		CategoryID:  categoryID,
		AccountID:   accountA,
		CreatedByID: memberID,
	}
}

func TestExpenseService_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	ms := new(storetest.MockStore)
	publisher := &recordingPublisher{}
	service := NewExpenseService(ms, publisher)

	expectCreate(ms)
	ms.On("FindExpense", mock.Anything, accountA, expenseID).Return(storedExpense(), nil)
	ms.On("UpdateExpense", mock.Anything, mock.AnythingOfType("*models.Expense")).Return(nil)
	ms.On("CreateAuditLog", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
		return e.EntityID == expenseID && e.AccountID == accountA
	})).Return(nil)

	_, err := service.Create(ctx, memberA, validExpense())
	require.NoError(t, err)

	amount := decimal.RequireFromString("50")
	updated, err := service.Update(ctx, memberA, expenseID, UpdateExpenseRequest{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, amount.Equal(updated.Amount))
	assert.Equal(t, "Team lunch", updated.Name)

	ms.AssertNumberOfCalls(t, "CreateAuditLog", 2)
	require.Len(t, publisher.entries, 2)
	assert.Equal(t, models.AuditCreate, publisher.entries[0].Action)
	assert.Equal(t, models.AuditUpdate, publisher.entries[1].Action)

	data := publisher.entries[1].Data
	require.Contains(t, data, "before")
	require.Contains(t, data, "after")
	assert.Equal(t, "42.5", data["before"].(map[string]any)["amount"])
	assert.Equal(t, "50", data["after"].(map[string]any)["amount"])
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("expense of another account", func(t *testing.T) {
		ms := new(storetest.MockStore)
		service := NewExpenseService(ms, nil)
		ms.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
		ms.On("FindExpense", mock.Anything, accountA, "foreign").Return(nil, store.ErrNotFound)

		_, err := service.Update(ctx, memberA, "foreign", UpdateExpenseRequest{Name: strPtr("Hijacked")})
		require.Error(t, err)
		assert.Equal(t, KindAuthorization, KindOf(err))
		assert.Equal(t, "expense not found or access denied", err.Error())
		ms.AssertNotCalled(t, "UpdateExpense", mock.Anything, mock.Anything)
		ms.AssertNotCalled(t, "CreateAuditLog", mock.Anything, mock.Anything)
	})

	t.Run("moving to a foreign category", func(t *testing.T) {
		ms := new(storetest.MockStore)
		service := NewExpenseService(ms, nil)
		ms.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
		ms.On("FindExpense", mock.Anything, accountA, expenseID).Return(storedExpense(), nil)
		ms.On("FindCategory", mock.Anything, accountA, "cat-b").Return(nil, store.ErrNotFound)

		_, err := service.Update(ctx, memberA, expenseID, UpdateExpenseRequest{CategoryID: strPtr("cat-b")})
		assert.Equal(t, KindNotFound, KindOf(err))
		ms.AssertNotCalled(t, "UpdateExpense", mock.Anything, mock.Anything)
	})

	t.Run("transaction failure", func(t *testing.T) {
		ms := new(storetest.MockStore)
		service := NewExpenseService(ms, nil)
		ms.On("WithinTx", mock.Anything, mock.Anything).Return(errors.New("begin failed"))

		_, err := service.Update(ctx, memberA, expenseID, UpdateExpenseRequest{Name: strPtr("Dinner")})
		require.Error(t, err)
		assert.Equal(t, Kind(""), KindOf(err))
	})
}

func TestExpenseService_Delete(t *testing.T) {
	ctx := context.Background()
	ms := new(storetest.MockStore)
	publisher := &recordingPublisher{}
	service := NewExpenseService(ms, publisher)
	at := time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return at }

	ms.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	ms.On("FindExpense", mock.Anything, accountA, expenseID).Return(storedExpense(), nil).Once()
	ms.On("SoftDeleteExpense", mock.Anything, accountA, expenseID, at).Return(nil).Once()
	ms.On("CreateAuditLog", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
		return e.Action == models.AuditSoftDelete && e.EntityID == expenseID
	})).Return(nil).Once()

	deleted, err := service.Delete(ctx, memberA, expenseID)
	require.NoError(t, err)
	require.NotNil(t, deleted.DeletedAt)
	assert.Equal(t, at, *deleted.DeletedAt)

	require.Len(t, publisher.entries, 1)
	assert.Nil(t, publisher.entries[0].Data["deletedAt"])

	t.Run("second delete does not resurrect", func(t *testing.T) {
		ms.On("FindExpense", mock.Anything, accountA, expenseID).Return(nil, store.ErrNotFound).Once()

		_, err := service.Delete(ctx, memberA, expenseID)
		assert.Equal(t, KindAuthorization, KindOf(err))
		ms.AssertNumberOfCalls(t, "SoftDeleteExpense", 1)
		ms.AssertNumberOfCalls(t, "CreateAuditLog", 1)
	})

	t.Run("soft deleted row is treated as missing", func(t *testing.T) {
		gone := storedExpense()
		gone.DeletedAt = &at
		ms.On("FindExpense", mock.Anything, accountA, expenseID).Return(gone, nil).Once()

		_, err := service.Delete(ctx, memberA, expenseID)
		assert.Equal(t, KindAuthorization, KindOf(err))
		ms.AssertNumberOfCalls(t, "SoftDeleteExpense", 1)
	})
}

func TestExpenseService_GetAndList(t *testing.T) {
	ctx := context.Background()
	ms := new(storetest.MockStore)
	service := NewExpenseService(ms, nil)

	ms.On("FindExpense", mock.Anything, accountA, "missing").Return(nil, store.ErrNotFound)
	_, err := service.Get(ctx, memberA, "missing")
	assert.Equal(t, KindNotFound, KindOf(err))

	june := models.ExpenseFilter{
		From:        time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		CreatedByID: memberID,
	}
	ms.On("ListExpenses", mock.Anything, accountA, june).Return([]models.Expense{*storedExpense()}, nil)

	expenses, err := service.List(ctx, memberA, ExpenseQuery{Year: intPtr(2024), Month: intPtr(6), CreatedByID: memberID})
	require.NoError(t, err)
	assert.Len(t, expenses, 1)

	_, err = service.List(ctx, memberA, ExpenseQuery{Month: intPtr(6)})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestExpenseService_Report(t *testing.T) {
	ms := new(storetest.MockStore)
	service := NewExpenseService(ms, nil)

	june := models.ExpenseFilter{
		From: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
	}
	ms.On("ListExpenseDetails", mock.Anything, accountA, june).Return([]models.ExpenseDetail{}, nil)

	report, err := service.Report(context.Background(), adminA, ExpenseQuery{Year: intPtr(2024), Month: intPtr(6), Day: intPtr(3)})
	require.NoError(t, err)
	assert.Nil(t, report.TopUser)
	assert.Nil(t, report.TopCategory)
	assert.Nil(t, report.PeakDay)
	ms.AssertExpectations(t)
}
