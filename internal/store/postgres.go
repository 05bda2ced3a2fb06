package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/spendwise/backend/internal/models"
)

const uniqueViolation = "23505"

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresStore implements Store on top of database/sql and lib/pq
type PostgresStore struct {
	db *sql.DB
	q  dbtx
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	// Already inside a transaction
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&PostgresStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Accounts

func (s *PostgresStore) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.q.QueryRowContext(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM accounts
		WHERE email = $1`, email).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (s *PostgresStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	account.CreatedAt, account.UpdatedAt = now, now

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO accounts (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		account.ID, account.Name, account.Email, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", mapError(err))
	}
	return nil
}

// Users

const userColumns = "id, name, email, password, role, account_id, created_at, updated_at"

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.AccountID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(s.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return scanUser(s.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (s *PostgresStore) ListUsers(ctx context.Context, accountID string) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE account_id = $1 ORDER BY created_at, id", accountID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, role, account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.AccountID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	result, err := s.q.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2, password = $3, role = $4, account_id = $5, updated_at = $6
		WHERE id = $7`,
		user.Name, user.Email, user.Password, user.Role, user.AccountID, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.ID, mapError(err))
	}
	return expectAffected(result)
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.q.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, mapError(err))
	}
	return expectAffected(result)
}

// Categories

const categoryColumns = "id, name, color, icon, account_id, created_at"

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.AccountID, &c.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (s *PostgresStore) FindCategory(ctx context.Context, accountID, id string) (*models.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return scanCategory(s.q.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE account_id = $1 AND id = $2", accountID, id))
}

func (s *PostgresStore) FindCategoryByName(ctx context.Context, accountID, name string) (*models.Category, error) {
	return scanCategory(s.q.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE account_id = $1 AND name = $2", accountID, name))
}

func (s *PostgresStore) ListCategories(ctx context.Context, accountID string) ([]models.Category, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE account_id = $1 ORDER BY name", accountID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	category.CreatedAt = time.Now().UTC()

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, icon, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.Name, category.Color, category.Icon, category.AccountID, category.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", mapError(err))
	}
	return nil
}

// Expenses

const expenseColumns = "e.id, e.name, e.amount, e.description, e.date, e.category_id, e.account_id, e.created_by_id, e.deleted_at, e.created_at, e.updated_at"

func expenseDest(e *models.Expense, createdBy *sql.NullString) []any {
	return []any{&e.ID, &e.Name, &e.Amount, &e.Description, &e.Date, &e.CategoryID, &e.AccountID, createdBy, &e.DeletedAt, &e.CreatedAt, &e.UpdatedAt}
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var e models.Expense
	var createdBy sql.NullString
	if err := row.Scan(expenseDest(&e, &createdBy)...); err != nil {
		return nil, mapError(err)
	}
	e.CreatedByID = createdBy.String
	return &e, nil
}

// expenseWhere builds the tenant and soft-delete filter shared by expense listings
func expenseWhere(accountID string, filter models.ExpenseFilter) (string, []any) {
	conds := []string{"e.account_id = $1", "e.deleted_at IS NULL"}
	args := []any{accountID}

	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("e.date >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, fmt.Sprintf("e.date < $%d", len(args)))
	}
	if filter.CreatedByID != "" {
		args = append(args, filter.CreatedByID)
		conds = append(conds, fmt.Sprintf("e.created_by_id = $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

func (s *PostgresStore) FindExpense(ctx context.Context, accountID, id string) (*models.Expense, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return scanExpense(s.q.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses e WHERE e.account_id = $1 AND e.id = $2 AND e.deleted_at IS NULL",
		accountID, id))
}

func (s *PostgresStore) ListExpenses(ctx context.Context, accountID string, filter models.ExpenseFilter) ([]models.Expense, error) {
	where, args := expenseWhere(accountID, filter)
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses e WHERE "+where+" ORDER BY e.date DESC, e.created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func (s *PostgresStore) ListExpenseDetails(ctx context.Context, accountID string, filter models.ExpenseFilter) ([]models.ExpenseDetail, error) {
	where, args := expenseWhere(accountID, filter)
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+expenseColumns+`,
			c.id, c.name, c.color, c.icon, c.account_id, c.created_at,
			u.id, u.name, u.email
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		LEFT JOIN users u ON u.id = e.created_by_id
		WHERE `+where+`
		ORDER BY e.created_at, e.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list expense details: %w", err)
	}
	defer rows.Close()

	details := []models.ExpenseDetail{}
	for rows.Next() {
		var d models.ExpenseDetail
		var createdBy, userID, userName, userEmail sql.NullString
		dest := append(expenseDest(&d.Expense, &createdBy),
			&d.Category.ID, &d.Category.Name, &d.Category.Color, &d.Category.Icon, &d.Category.AccountID, &d.Category.CreatedAt,
			&userID, &userName, &userEmail)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan expense detail: %w", err)
		}
		d.CreatedByID = createdBy.String
		d.CreatedBy = models.UserSummary{ID: userID.String, Name: userName.String, Email: userEmail.String}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (s *PostgresStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	expense.CreatedAt, expense.UpdatedAt = now, now

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO expenses (id, name, amount, description, date, category_id, account_id, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		expense.ID, expense.Name, expense.Amount, expense.Description, expense.Date,
		expense.CategoryID, expense.AccountID, expense.CreatedByID, expense.CreatedAt, expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().UTC()
	result, err := s.q.ExecContext(ctx, `
		UPDATE expenses
		SET name = $1, amount = $2, description = $3, date = $4, category_id = $5, updated_at = $6
		WHERE id = $7 AND account_id = $8 AND deleted_at IS NULL`,
		expense.Name, expense.Amount, expense.Description, expense.Date, expense.CategoryID,
		expense.UpdatedAt, expense.ID, expense.AccountID)
	if err != nil {
		return fmt.Errorf("update expense %s: %w", expense.ID, mapError(err))
	}
	return expectAffected(result)
}

func (s *PostgresStore) SoftDeleteExpense(ctx context.Context, accountID, id string, at time.Time) error {
	result, err := s.q.ExecContext(ctx, `
		UPDATE expenses
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND account_id = $3 AND deleted_at IS NULL`,
		at, id, accountID)
	if err != nil {
		return fmt.Errorf("soft delete expense %s: %w", id, err)
	}
	return expectAffected(result)
}

// Audit logs

func (s *PostgresStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now().UTC()

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO audit_logs (id, action, entity, entity_id, data, user_id, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.Action, entry.Entity, entry.EntityID, entry.Data, entry.UserID, entry.AccountID, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAuditLogs(ctx context.Context, accountID string) ([]models.AuditLog, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT a.id, a.action, a.entity, a.entity_id, a.data, a.user_id, a.account_id, a.created_at,
			u.id, u.name, u.email
		FROM audit_logs a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.account_id = $1
		ORDER BY a.created_at DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	logs := []models.AuditLog{}
	for rows.Next() {
		var l models.AuditLog
		var actor, userID, userName, userEmail sql.NullString
		if err := rows.Scan(&l.ID, &l.Action, &l.Entity, &l.EntityID, &l.Data, &actor, &l.AccountID, &l.CreatedAt,
			&userID, &userName, &userEmail); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		l.UserID = actor.String
		if userID.Valid {
			l.User = &models.UserSummary{ID: userID.String, Name: userName.String, Email: userEmail.String}
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func expectAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}
