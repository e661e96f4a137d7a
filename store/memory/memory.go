// Package memory provides an in-memory ledger.Store for tests and dev.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Raimal54/chai-wallet/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu           sync.RWMutex
	transactions map[string]ledger.Transaction
	budgets      map[string]ledger.Budget
	goals        map[string]ledger.Goal
	accounts     map[string]ledger.Account
}

func New() *Store {
	return &Store{
		transactions: make(map[string]ledger.Transaction),
		budgets:      make(map[string]ledger.Budget),
		goals:        make(map[string]ledger.Goal),
		accounts:     make(map[string]ledger.Account),
	}
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func (s *Store) AddTransaction(_ context.Context, tx ledger.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.transactions[tx.ID]; exists {
		return ledger.ErrDuplicateID
	}
	s.transactions[tx.ID] = tx
	return nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx ledger.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.transactions[tx.ID]; !exists {
		return ledger.ErrNotFound
	}
	s.transactions[tx.ID] = tx
	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ledger.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		result = append(result, tx)
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *Store) ListRecurringTransactions(_ context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []ledger.Transaction
	for _, tx := range s.transactions {
		if tx.Recurrence != "" {
			result = append(result, tx)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(txs []ledger.Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID < txs[j].ID
	})
}

// =============================================================================
// BUDGETS
// =============================================================================

func (s *Store) UpsertBudget(_ context.Context, b ledger.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One budget per category+month: replace any existing entry.
	for id, existing := range s.budgets {
		if existing.Category == b.Category && existing.Month == b.Month {
			delete(s.budgets, id)
		}
	}
	s.budgets[b.ID] = b
	return nil
}

func (s *Store) ListBudgets(_ context.Context, month string) ([]ledger.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []ledger.Budget
	for _, b := range s.budgets {
		if month == "" || b.Month == month {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Month != result[j].Month {
			return result[i].Month < result[j].Month
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}

func (s *Store) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.budgets[id]; !exists {
		return ledger.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

// =============================================================================
// GOALS
// =============================================================================

func (s *Store) AddGoal(_ context.Context, g ledger.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.goals[g.ID]; exists {
		return ledger.ErrDuplicateID
	}
	s.goals[g.ID] = g
	return nil
}

func (s *Store) UpdateGoal(_ context.Context, g ledger.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.goals[g.ID]; !exists {
		return ledger.ErrNotFound
	}
	s.goals[g.ID] = g
	return nil
}

func (s *Store) ListGoals(_ context.Context) ([]ledger.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ledger.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) DeleteGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.goals[id]; !exists {
		return ledger.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func (s *Store) AddAccount(_ context.Context, a ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.ID]; exists {
		return ledger.ErrDuplicateID
	}
	s.accounts[a.ID] = a
	return nil
}

func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ledger.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
