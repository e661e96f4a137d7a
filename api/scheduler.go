/*
scheduler.go - Recurring transaction scheduler

PURPOSE:
  Periodically expands recurring transaction templates into posted
  ledger entries. A template is a transaction with a non-empty
  recurrence; each due occurrence since its date becomes a one-off
  transaction, and the template's date advances to the last posted
  occurrence.

DESIGN:
  - cron-driven background job (hourly by default)
  - Occurrence IDs derive from template ID + occurrence timestamp, so
    a crash between posting and advancing the template re-posts as a
    duplicate-ID no-op rather than double-counting
  - RunOnce is exported for manual triggering and tests

USAGE:
  scheduler := NewRecurringScheduler(store)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - ledger/recurrence.go: Due-occurrence expansion
  - cmd/server/main.go: Lifecycle wiring
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Raimal54/chai-wallet/ledger"
)

// RecurringScheduler posts due occurrences of recurring transactions.
type RecurringScheduler struct {
	Store ledger.Store
	Spec  string // cron spec, default hourly

	cron *cron.Cron
	now  func() time.Time
}

// NewRecurringScheduler creates a scheduler over the given store.
func NewRecurringScheduler(store ledger.Store) *RecurringScheduler {
	return &RecurringScheduler{
		Store: store,
		Spec:  "@hourly",
		now:   time.Now,
	}
}

// Start begins the cron loop and runs one expansion immediately so a
// restart catches up without waiting for the next tick.
func (s *RecurringScheduler) Start() error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.Spec, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			log.Printf("[Scheduler] expansion failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("bad cron spec %q: %w", s.Spec, err)
	}

	s.cron.Start()
	log.Printf("[Scheduler] Started with spec: %s", s.Spec)

	go func() {
		if err := s.RunOnce(context.Background()); err != nil {
			log.Printf("[Scheduler] initial expansion failed: %v", err)
		}
	}()
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *RecurringScheduler) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[Scheduler] Stopped")
}

// RunOnce expands all recurring templates due as of now.
func (s *RecurringScheduler) RunOnce(ctx context.Context) error {
	templates, err := s.Store.ListRecurringTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list recurring transactions: %w", err)
	}

	asOf := s.now()
	for _, template := range templates {
		if err := s.expand(ctx, template, asOf); err != nil {
			log.Printf("[Scheduler] template %s: %v", template.ID, err)
		}
	}
	return nil
}

func (s *RecurringScheduler) expand(ctx context.Context, template ledger.Transaction, asOf time.Time) error {
	due, err := ledger.DueOccurrences(template.Date, template.Recurrence, asOf)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	for _, occ := range due {
		posted := ledger.Transaction{
			ID:        occurrenceID(template.ID, occ),
			Type:      template.Type,
			Amount:    template.Amount,
			Category:  template.Category,
			Date:      occ,
			AccountID: template.AccountID,
		}
		err := s.Store.AddTransaction(ctx, posted)
		if err != nil && !errors.Is(err, ledger.ErrDuplicateID) {
			return fmt.Errorf("failed to post occurrence %s: %w", posted.ID, err)
		}
	}

	// Advance the template so the next run starts after the last
	// posted occurrence.
	template.Date = due[len(due)-1]
	if err := s.Store.UpdateTransaction(ctx, template); err != nil {
		return fmt.Errorf("failed to advance template: %w", err)
	}

	log.Printf("[Scheduler] posted %d occurrence(s) of %s", len(due), template.ID)
	return nil
}

func occurrenceID(templateID string, occ time.Time) string {
	return fmt.Sprintf("%s-%s", templateID, occ.UTC().Format("20060102T150405"))
}
