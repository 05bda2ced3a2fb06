package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accountID = "0b8f3c52-3a4e-4c1e-9f0a-5d7b2c1e6a01"
	userID    = "7a1d9e44-2b6c-4f3a-8e5d-1c0b9a8f7e02"
	expenseID = "c3e2f1a0-9b8c-4d7e-a6f5-4e3d2c1b0a03"
)

var expenseCols = []string{"id", "name", "amount", "description", "date", "category_id", "account_id", "created_by_id", "deleted_at", "created_at", "updated_at"}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_FindUserByEmail(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, role, account_id, created_at, updated_at FROM users WHERE email = \\$1").
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "account_id", "created_at", "updated_at"}).
				AddRow(userID, "Jane", "jane@example.com", "hash", "ADMIN", accountID, now, now))

		u, err := s.FindUserByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, u.ID)
		assert.Equal(t, models.RoleAdmin, u.Role)
		assert.Equal(t, accountID, u.AccountID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE email = \\$1").
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		u, err := s.FindUserByEmail(ctx, "ghost@example.com")
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_FindUserByID_MalformedID(t *testing.T) {
	s, mock := newMockStore(t)

	u, err := s.FindUserByID(context.Background(), "not-a-uuid")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateUser(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), "Jane", "jane@example.com", "hash", models.RoleUser, accountID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		u := &models.User{Name: "Jane", Email: "jane@example.com", Password: "hash", Role: models.RoleUser, AccountID: accountID}
		require.NoError(t, s.CreateUser(ctx, u))
		assert.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := s.CreateUser(ctx, &models.User{Name: "Jane", Email: "jane@example.com"})
		assert.ErrorIs(t, err, ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_UpdateUser_Missing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateUser(context.Background(), &models.User{ID: userID, Name: "Jane"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseWhere(t *testing.T) {
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	t.Run("unbounded", func(t *testing.T) {
		where, args := expenseWhere(accountID, models.ExpenseFilter{})
		assert.Equal(t, "e.account_id = $1 AND e.deleted_at IS NULL", where)
		assert.Equal(t, []any{accountID}, args)
	})

	t.Run("all filters", func(t *testing.T) {
		where, args := expenseWhere(accountID, models.ExpenseFilter{From: from, To: to, CreatedByID: userID})
		assert.Equal(t, "e.account_id = $1 AND e.deleted_at IS NULL AND e.date >= $2 AND e.date < $3 AND e.created_by_id = $4", where)
		assert.Equal(t, []any{accountID, from, to, userID}, args)
	})

	t.Run("creator only", func(t *testing.T) {
		where, args := expenseWhere(accountID, models.ExpenseFilter{CreatedByID: userID})
		assert.Equal(t, "e.account_id = $1 AND e.deleted_at IS NULL AND e.created_by_id = $2", where)
		assert.Len(t, args, 2)
	})
}

func TestPostgresStore_ListExpenses(t *testing.T) {
	s, mock := newMockStore(t)
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM expenses e WHERE e.account_id = \\$1 AND e.deleted_at IS NULL AND e.date >= \\$2 AND e.date < \\$3 ORDER BY e.date DESC").
		WithArgs(accountID, from, to).
		WillReturnRows(sqlmock.NewRows(expenseCols).
			AddRow(expenseID, "Lunch", "12.50", "Team lunch", from, "cat-1", accountID, userID, nil, now, now).
			AddRow("other", "Taxi", "8", "Ride", from, "cat-1", accountID, nil, nil, now, now))

	expenses, err := s.ListExpenses(context.Background(), accountID, models.ExpenseFilter{From: from, To: to})
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.True(t, decimal.RequireFromString("12.50").Equal(expenses[0].Amount))
	assert.Equal(t, userID, expenses[0].CreatedByID)
	assert.Nil(t, expenses[0].DeletedAt)
	assert.Empty(t, expenses[1].CreatedByID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListExpenseDetails(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	cols := append(append([]string{}, expenseCols...), "c_id", "c_name", "c_color", "c_icon", "c_account_id", "c_created_at", "u_id", "u_name", "u_email")
	mock.ExpectQuery("SELECT .* FROM expenses e JOIN categories c ON c.id = e.category_id LEFT JOIN users u ON u.id = e.created_by_id WHERE e.account_id = \\$1 AND e.deleted_at IS NULL ORDER BY e.created_at, e.id").
		WithArgs(accountID).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(expenseID, "Lunch", "10.005", "Team lunch", now, "cat-1", accountID, userID, nil, now, now,
				"cat-1", "Food", "#ff0000", "fork", accountID, now, userID, "Jane", "jane@example.com"))

	details, err := s.ListExpenseDetails(context.Background(), accountID, models.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Food", details[0].Category.Name)
	assert.Equal(t, "Jane", details[0].CreatedBy.Name)
	assert.Equal(t, "10.005", details[0].Amount.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindExpense(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT .* FROM expenses e WHERE e.account_id = \\$1 AND e.id = \\$2 AND e.deleted_at IS NULL").
		WithArgs(accountID, expenseID).
		WillReturnRows(sqlmock.NewRows(expenseCols))

	e, err := s.FindExpense(context.Background(), accountID, expenseID)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SoftDeleteExpense(t *testing.T) {
	s, mock := newMockStore(t)
	at := time.Now().UTC()

	t.Run("marks row", func(t *testing.T) {
		mock.ExpectExec("UPDATE expenses SET deleted_at = \\$1, updated_at = \\$1 WHERE id = \\$2 AND account_id = \\$3 AND deleted_at IS NULL").
			WithArgs(at, expenseID, accountID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.SoftDeleteExpense(context.Background(), accountID, expenseID, at))
	})

	t.Run("already deleted", func(t *testing.T) {
		mock.ExpectExec("UPDATE expenses SET deleted_at").
			WithArgs(at, expenseID, accountID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.SoftDeleteExpense(context.Background(), accountID, expenseID, at)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WithinTx(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").
			WithArgs(sqlmock.AnyArg(), "Acme", "acme@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := s.WithinTx(ctx, func(tx Store) error {
			account := &models.Account{Name: "Acme", Email: "acme@example.com"}
			if err := tx.CreateAccount(ctx, account); err != nil {
				return err
			}
			return tx.CreateUser(ctx, &models.User{Name: "Acme", Email: "acme@example.com", AccountID: account.ID, Role: models.RoleAdmin})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := s.WithinTx(ctx, func(tx Store) error {
			if err := tx.CreateAccount(ctx, &models.Account{Name: "Acme"}); err != nil {
				return err
			}
			return tx.CreateUser(ctx, &models.User{Name: "Acme"})
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_ListAuditLogs(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM audit_logs a LEFT JOIN users u ON u.id = a.user_id WHERE a.account_id = \\$1 ORDER BY a.created_at DESC").
		WithArgs(accountID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "entity", "entity_id", "data", "user_id", "account_id", "created_at", "u_id", "u_name", "u_email"}).
			AddRow("log-2", "UPDATE", "Expense", expenseID, []byte(`{"before":{"name":"a"},"after":{"name":"b"}}`), userID, accountID, now, userID, "Jane", "jane@example.com").
			AddRow("log-1", "CREATE", "Expense", expenseID, []byte(`{"name":"a"}`), nil, accountID, now, nil, nil, nil))

	logs, err := s.ListAuditLogs(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, models.AuditUpdate, logs[0].Action)
	require.NotNil(t, logs[0].User)
	assert.Equal(t, "Jane", logs[0].User.Name)
	assert.Contains(t, logs[0].Data, "before")

	assert.Nil(t, logs[1].User)
	assert.Empty(t, logs[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
