/*
store.go - Persistence port for wallet records

PURPOSE:
  Defines the interface between the wallet's record types and whatever
  stores them. The original application kept these records in ambient
  browser storage; here persistence is an explicit injected dependency
  with error returns, so the domain stays testable without any storage
  backing.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite store
  - store/memory: In-memory store for tests and dev

SEE ALSO:
  - types.go: The records being persisted
*/
package ledger

import (
	"context"
	"errors"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when inserting a record whose ID
	// already exists.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrInvalidRecord is returned by Validate methods for malformed
	// records. Stores reject invalid records before writing.
	ErrInvalidRecord = errors.New("invalid record")
)

// =============================================================================
// STORE - Persistence port
// =============================================================================

// Store persists wallet records. All implementations must be safe for
// concurrent use.
type Store interface {
	TransactionStore
	BudgetStore
	GoalStore
	AccountStore
}

// TransactionStore persists transactions.
type TransactionStore interface {
	// AddTransaction inserts a transaction. Fails with ErrDuplicateID
	// if the ID exists.
	AddTransaction(ctx context.Context, tx Transaction) error

	// UpdateTransaction replaces a transaction by ID. Fails with
	// ErrNotFound if it doesn't exist. Used by the recurring scheduler
	// to advance a template's date.
	UpdateTransaction(ctx context.Context, tx Transaction) error

	// ListTransactions returns all transactions, newest first.
	ListTransactions(ctx context.Context) ([]Transaction, error)

	// ListRecurringTransactions returns only recurring templates.
	ListRecurringTransactions(ctx context.Context) ([]Transaction, error)
}

// BudgetStore persists budgets with upsert-per-category+month semantics.
type BudgetStore interface {
	// UpsertBudget inserts the budget, replacing any existing budget
	// for the same category and month.
	UpsertBudget(ctx context.Context, b Budget) error

	// ListBudgets returns budgets for a month; empty month means all.
	ListBudgets(ctx context.Context, month string) ([]Budget, error)

	// DeleteBudget removes a budget by ID.
	DeleteBudget(ctx context.Context, id string) error
}

// GoalStore persists savings goals.
type GoalStore interface {
	AddGoal(ctx context.Context, g Goal) error
	UpdateGoal(ctx context.Context, g Goal) error
	ListGoals(ctx context.Context) ([]Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

// AccountStore persists accounts.
type AccountStore interface {
	AddAccount(ctx context.Context, a Account) error
	ListAccounts(ctx context.Context) ([]Account, error)
}
