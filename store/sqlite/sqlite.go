/*
Package sqlite provides a SQLite-backed implementation of ledger.Store.

PURPOSE:
  Persists transactions, budgets, goals, and accounts. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  transactions: Income/expense entries, including recurring templates
  budgets:      Monthly category caps (unique per category+month)
  goals:        Savings targets
  accounts:     Named buckets transactions belong to

MONEY AS TEXT:
  Amounts are stored as decimal strings, never REAL. SQLite floats
  would reintroduce the rounding drift decimal.Decimal exists to avoid.

INDEXES:
  - idx_transactions_date: Listing is newest-first
  - idx_transactions_recurrence: The scheduler polls recurring templates
  - idx_budgets_category_month: Enforces one budget per category+month

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/wallet.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - ledger/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/Raimal54/chai-wallet/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Transactions (one-off entries and recurring templates)
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		tx_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		recurrence TEXT NOT NULL DEFAULT '',
		account_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Listing is newest-first
	CREATE INDEX IF NOT EXISTS idx_transactions_date
		ON transactions(date DESC);

	-- The scheduler polls recurring templates
	CREATE INDEX IF NOT EXISTS idx_transactions_recurrence
		ON transactions(recurrence) WHERE recurrence != '';

	-- Budgets (one per category+month)
	CREATE TABLE IF NOT EXISTS budgets (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		month TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_budgets_category_month
		ON budgets(category, month);

	-- Goals
	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		target_amount TEXT NOT NULL,
		current_amount TEXT NOT NULL,
		deadline TEXT,
		created_at TEXT NOT NULL
	);

	-- Accounts
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TRANSACTION STORE
// =============================================================================

// AddTransaction inserts a transaction.
func (s *Store) AddTransaction(ctx context.Context, tx ledger.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO transactions (id, tx_type, amount, category, date, recurrence, account_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.Type,
		tx.Amount.String(),
		tx.Category,
		tx.Date.Format(time.RFC3339),
		tx.Recurrence,
		tx.AccountID,
		time.Now().UTC().Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return ledger.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction replaces an existing transaction.
func (s *Store) UpdateTransaction(ctx context.Context, tx ledger.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE transactions
		SET tx_type = ?, amount = ?, category = ?, date = ?, recurrence = ?, account_id = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Type,
		tx.Amount.String(),
		tx.Category,
		tx.Date.Format(time.RFC3339),
		tx.Recurrence,
		tx.AccountID,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// ListTransactions returns all transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, tx_type, amount, category, date, recurrence, account_id
		FROM transactions
		ORDER BY date DESC, id ASC
	`

	return s.queryTransactions(ctx, query)
}

// ListRecurringTransactions returns all recurring templates.
func (s *Store) ListRecurringTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, tx_type, amount, category, date, recurrence, account_id
		FROM transactions
		WHERE recurrence != ''
		ORDER BY date DESC, id ASC
	`

	return s.queryTransactions(ctx, query)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(rows *sql.Rows) (ledger.Transaction, error) {
	var (
		tx     ledger.Transaction
		amount string
		date   string
	)

	err := rows.Scan(&tx.ID, &tx.Type, &amount, &tx.Category, &date, &tx.Recurrence, &tx.AccountID)
	if err != nil {
		return tx, fmt.Errorf("failed to scan transaction: %w", err)
	}

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return tx, fmt.Errorf("transaction %s: bad stored amount %q: %w", tx.ID, amount, err)
	}
	tx.Date, err = time.Parse(time.RFC3339, date)
	if err != nil {
		return tx, fmt.Errorf("transaction %s: bad stored date %q: %w", tx.ID, date, err)
	}

	return tx, nil
}

// =============================================================================
// BUDGET STORE
// =============================================================================

// UpsertBudget inserts a budget, replacing any existing one for the
// same category+month.
func (s *Store) UpsertBudget(ctx context.Context, b ledger.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO budgets (id, category, amount, month, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(category, month) DO UPDATE SET
			id = excluded.id,
			amount = excluded.amount
	`

	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.Category, b.Amount.String(), b.Month,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}

// ListBudgets returns budgets, optionally filtered to one YYYY-MM month.
func (s *Store) ListBudgets(ctx context.Context, month string) ([]ledger.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, category, amount, month
		FROM budgets
		ORDER BY month ASC, category ASC
	`
	var args []any
	if month != "" {
		query = `
			SELECT id, category, amount, month
			FROM budgets
			WHERE month = ?
			ORDER BY month ASC, category ASC
		`
		args = []any{month}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []ledger.Budget
	for rows.Next() {
		var b ledger.Budget
		var amount string
		if err := rows.Scan(&b.ID, &b.Category, &amount, &b.Month); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("budget %s: bad stored amount %q: %w", b.ID, amount, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// DeleteBudget removes a budget by ID.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// =============================================================================
// GOAL STORE
// =============================================================================

// AddGoal inserts a goal.
func (s *Store) AddGoal(ctx context.Context, g ledger.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO goals (id, name, target_amount, current_amount, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		g.ID, g.Name, g.TargetAmount.String(), g.CurrentAmount.String(),
		formatDeadline(g.Deadline),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ledger.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// UpdateGoal replaces an existing goal.
func (s *Store) UpdateGoal(ctx context.Context, g ledger.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE goals
		SET name = ?, target_amount = ?, current_amount = ?, deadline = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		g.Name, g.TargetAmount.String(), g.CurrentAmount.String(),
		formatDeadline(g.Deadline), g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// ListGoals returns all goals.
func (s *Store) ListGoals(ctx context.Context) ([]ledger.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, target_amount, current_amount, deadline FROM goals ORDER BY id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []ledger.Goal
	for rows.Next() {
		var g ledger.Goal
		var target, current string
		var deadline sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &target, &current, &deadline); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.TargetAmount, err = decimal.NewFromString(target)
		if err != nil {
			return nil, fmt.Errorf("goal %s: bad stored target %q: %w", g.ID, target, err)
		}
		g.CurrentAmount, err = decimal.NewFromString(current)
		if err != nil {
			return nil, fmt.Errorf("goal %s: bad stored current amount %q: %w", g.ID, current, err)
		}
		if deadline.Valid && deadline.String != "" {
			g.Deadline, _ = time.Parse(time.RFC3339, deadline.String)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal by ID.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// =============================================================================
// ACCOUNT STORE
// =============================================================================

// AddAccount inserts an account.
func (s *Store) AddAccount(ctx context.Context, a ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, name, created_at) VALUES (?, ?, ?)",
		a.ID, a.Name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ledger.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// ListAccounts returns all accounts.
func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM accounts ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"transactions", "budgets", "goals", "accounts"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func formatDeadline(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
