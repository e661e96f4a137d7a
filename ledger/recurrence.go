/*
recurrence.go - Due-occurrence expansion for recurring transactions

PURPOSE:
  Answers "which occurrences of this recurring transaction have come due
  since it last posted?" as a pure function of (last occurrence,
  recurrence rule, as-of date). No clock access, no storage: the
  scheduler owns the clock and the posting, this file owns the calendar
  arithmetic.

IMPLEMENTATION:
  Frequencies map onto RFC 5545 recurrence rules (rrule-go), which get
  month-length and leap-year handling right: a monthly transaction
  dated Jan 31 skips February instead of drifting into early March.

SEE ALSO:
  - api/scheduler.go: Posts the occurrences returned here
*/
package ledger

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// DueOccurrences returns the occurrence dates of a recurring rule that
// fall after last and at or before asOf, in chronological order. The
// last occurrence itself is excluded. Returns nil when nothing is due.
func DueOccurrences(last time.Time, rec Recurrence, asOf time.Time) ([]time.Time, error) {
	freq, err := frequencyOf(rec)
	if err != nil {
		return nil, err
	}
	if !asOf.After(last) {
		return nil, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: last,
	})
	if err != nil {
		return nil, fmt.Errorf("build recurrence rule: %w", err)
	}

	// Dtstart counts as the first occurrence; shift the window start
	// past it so only new occurrences are returned.
	return rule.Between(last.Add(time.Second), asOf, true), nil
}

// NextOccurrence returns the first occurrence strictly after last.
func NextOccurrence(last time.Time, rec Recurrence) (time.Time, error) {
	switch rec {
	case RecurDaily:
		return last.AddDate(0, 0, 1), nil
	case RecurWeekly:
		return last.AddDate(0, 0, 7), nil
	case RecurMonthly, RecurYearly:
		// Delegate to the rule so Jan 31 + 1 month doesn't land in
		// early March.
		due, err := DueOccurrences(last, rec, last.AddDate(2, 0, 0))
		if err != nil {
			return time.Time{}, err
		}
		if len(due) == 0 {
			return time.Time{}, fmt.Errorf("no next occurrence for %q after %s", rec, last)
		}
		return due[0], nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown recurrence %q", ErrInvalidRecord, rec)
	}
}

func frequencyOf(rec Recurrence) (rrule.Frequency, error) {
	switch rec {
	case RecurDaily:
		return rrule.DAILY, nil
	case RecurWeekly:
		return rrule.WEEKLY, nil
	case RecurMonthly:
		return rrule.MONTHLY, nil
	case RecurYearly:
		return rrule.YEARLY, nil
	default:
		return 0, fmt.Errorf("%w: unknown recurrence %q", ErrInvalidRecord, rec)
	}
}
