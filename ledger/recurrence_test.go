package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raimal54/chai-wallet/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueOccurrences_Monthly(t *testing.T) {
	// GIVEN: A monthly transaction last posted Jan 15
	// WHEN: Expanding as of Apr 20
	// THEN: Feb 15, Mar 15 and Apr 15 are due

	due, err := ledger.DueOccurrences(date(2025, time.January, 15), ledger.RecurMonthly, date(2025, time.April, 20))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2025, time.February, 15),
		date(2025, time.March, 15),
		date(2025, time.April, 15),
	}, due)
}

func TestDueOccurrences_Weekly(t *testing.T) {
	due, err := ledger.DueOccurrences(date(2025, time.March, 3), ledger.RecurWeekly, date(2025, time.March, 17))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2025, time.March, 10),
		date(2025, time.March, 17),
	}, due)
}

func TestDueOccurrences_NothingDue(t *testing.T) {
	due, err := ledger.DueOccurrences(date(2025, time.March, 3), ledger.RecurMonthly, date(2025, time.March, 20))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestDueOccurrences_AsOfBeforeLast(t *testing.T) {
	due, err := ledger.DueOccurrences(date(2025, time.March, 3), ledger.RecurDaily, date(2025, time.March, 1))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestDueOccurrences_MonthEnd_SkipsShortMonths(t *testing.T) {
	// Jan 31 monthly: February has no 31st, so the next occurrence is
	// March 31, not March 2/3.
	due, err := ledger.DueOccurrences(date(2025, time.January, 31), ledger.RecurMonthly, date(2025, time.April, 1))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{date(2025, time.March, 31)}, due)
}

func TestDueOccurrences_UnknownRecurrence(t *testing.T) {
	_, err := ledger.DueOccurrences(date(2025, time.March, 3), "fortnightly", date(2025, time.April, 3))
	assert.ErrorIs(t, err, ledger.ErrInvalidRecord)
}

func TestNextOccurrence(t *testing.T) {
	next, err := ledger.NextOccurrence(date(2025, time.March, 3), ledger.RecurDaily)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 4), next)

	next, err = ledger.NextOccurrence(date(2025, time.March, 3), ledger.RecurWeekly)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 10), next)

	next, err = ledger.NextOccurrence(date(2025, time.January, 31), ledger.RecurMonthly)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 31), next)
}
