package debt_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Raimal54/chai-wallet/debt"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func loan(name, balance, rate, minPayment string) debt.Loan {
	return debt.Loan{
		Name:           name,
		Balance:        dec(balance),
		InterestRate:   dec(rate),
		MinimumPayment: dec(minPayment),
	}
}

func assertMonotonic(t *testing.T, schedule *debt.RepaymentSchedule) {
	t.Helper()
	prev := decimal.Decimal{}
	for i, step := range schedule.Steps {
		if i > 0 && step.TotalRemainingBalance.GreaterThan(prev) {
			t.Errorf("balance increased at month %d: %v -> %v",
				step.Month, prev, step.TotalRemainingBalance)
		}
		prev = step.TotalRemainingBalance
	}
}

// =============================================================================
// SINGLE LOAN AMORTIZATION
// =============================================================================

func TestSimulate_SingleLoan_KnownSchedule(t *testing.T) {
	// GIVEN: 1200 balance at 12% APR (1%/month), 100 minimum, 100 extra
	// WHEN: Simulating to completion
	// THEN: 200 is paid every full month and the loan retires in month 7

	sim := debt.NewSimulator()
	ordering := debt.OrderLoans([]debt.Loan{loan("Personal Loan", "1200", "12", "100")}, debt.StrategyAvalanche)

	schedule, err := sim.Simulate(ordering, dec("2000"), dec("1800"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if schedule.Months() != 7 {
		t.Fatalf("expected 7 months, got %d", schedule.Months())
	}

	// Month 1: 1200 * 1.01 = 1212, minus 200 = 1012
	if !schedule.Steps[0].TotalRemainingBalance.Equal(dec("1012")) {
		t.Errorf("month 1 balance: expected 1012, got %v", schedule.Steps[0].TotalRemainingBalance)
	}

	for _, step := range schedule.Steps[:6] {
		if !step.MonthlyPayment.Equal(dec("200")) {
			t.Errorf("month %d payment: expected 200, got %v", step.Month, step.MonthlyPayment)
		}
	}

	// Final month pays only what is owed.
	last := schedule.Steps[6]
	if last.MonthlyPayment.GreaterThanOrEqual(dec("200")) {
		t.Errorf("final payment should be partial, got %v", last.MonthlyPayment)
	}
	if !last.TotalRemainingBalance.IsZero() {
		t.Errorf("final balance should be zero, got %v", last.TotalRemainingBalance)
	}

	assertMonotonic(t, schedule)
}

func TestSimulate_ZeroRateLoan_NoDrift(t *testing.T) {
	// GIVEN: 500 balance at 0% APR, 100 minimum, no extra
	// WHEN: Simulating
	// THEN: Balance decreases by exactly 100 each month, no rounding residue

	sim := debt.NewSimulator()
	ordering := debt.OrderLoans([]debt.Loan{loan("Interest Free", "500", "0", "100")}, debt.StrategyAvalanche)

	schedule, err := sim.Simulate(ordering, dec("1000"), dec("900"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if schedule.Months() != 5 {
		t.Fatalf("expected 5 months, got %d", schedule.Months())
	}

	expected := []string{"400", "300", "200", "100", "0"}
	for i, want := range expected {
		got := schedule.Steps[i].TotalRemainingBalance
		if !got.Equal(dec(want)) {
			t.Errorf("month %d balance: expected %s, got %v", i+1, want, got)
		}
	}

	if !schedule.TotalInterestPaid.IsZero() {
		t.Errorf("zero-rate loan accrued interest: %v", schedule.TotalInterestPaid)
	}
}

// =============================================================================
// ROLL-OVER
// =============================================================================

func TestSimulate_RollOver_RetiredMinimumFlowsToNextTarget(t *testing.T) {
	// GIVEN: Small loan (300, min 100) and large loan (5000, min 100),
	//        both 0% APR, 400/month disposable (extra = 200)
	// WHEN: Small loan retires in month 1
	// THEN: The large loan receives 400/month from month 2 on — the
	//       retired minimum rolled into the extra pool

	sim := debt.NewSimulator()
	ordering := debt.OrderLoans([]debt.Loan{
		loan("Small", "300", "0", "100"),
		loan("Large", "5000", "0", "100"),
	}, debt.StrategySnowball)

	schedule, err := sim.Simulate(ordering, dec("400"), dec("0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := schedule.PayoffMonth("Small"); got != 1 {
		t.Fatalf("expected Small to retire in month 1, got %d", got)
	}

	// Month 1: Small takes 300 (capped), Large takes its 100 minimum.
	if !schedule.Steps[0].MonthlyPayment.Equal(dec("400")) {
		t.Errorf("month 1 payment: expected 400, got %v", schedule.Steps[0].MonthlyPayment)
	}
	if !schedule.Steps[0].TotalRemainingBalance.Equal(dec("4900")) {
		t.Errorf("month 1 balance: expected 4900, got %v", schedule.Steps[0].TotalRemainingBalance)
	}

	// Month 2: Large is the target and receives the full 400.
	if !schedule.Steps[1].TotalRemainingBalance.Equal(dec("4500")) {
		t.Errorf("month 2 balance: expected 4500, got %v", schedule.Steps[1].TotalRemainingBalance)
	}

	assertMonotonic(t, schedule)
}

// =============================================================================
// TARGETING
// =============================================================================

func TestSimulate_Avalanche_TargetsHighestRateFirst(t *testing.T) {
	// GIVEN: Equal balances at 20% and 5% APR, 200 minimums, 600 extra
	// WHEN: Simulating the avalanche ordering
	// THEN: The 20% loan receives minimum + extra and retires first

	sim := debt.NewSimulator()
	ordering := debt.OrderLoans([]debt.Loan{
		loan("Low Rate", "5000", "5", "200"),
		loan("High Rate", "5000", "20", "200"),
	}, debt.StrategyAvalanche)

	if ordering.Loans[0].Name != "High Rate" {
		t.Fatalf("avalanche ordering should lead with High Rate, got %s", ordering.Loans[0].Name)
	}

	schedule, err := sim.Simulate(ordering, dec("3000"), dec("2000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Month 1, High Rate: 5000 * (1 + 20/1200) = 5083.33..., minus 800.
	// Month 1, Low Rate: 5000 * (1 + 5/1200) = 5020.83..., minus 200.
	highAfter := dec("5000").Mul(dec("1").Add(dec("20").Div(dec("1200")))).Sub(dec("800"))
	lowAfter := dec("5000").Mul(dec("1").Add(dec("5").Div(dec("1200")))).Sub(dec("200"))
	wantTotal := highAfter.Add(lowAfter)
	if !schedule.Steps[0].TotalRemainingBalance.Equal(wantTotal) {
		t.Errorf("month 1 balance: expected %v, got %v", wantTotal, schedule.Steps[0].TotalRemainingBalance)
	}

	if len(schedule.LoanPayoffs) == 0 || schedule.LoanPayoffs[0].Name != "High Rate" {
		t.Errorf("expected High Rate to retire first, got %+v", schedule.LoanPayoffs)
	}

	assertMonotonic(t, schedule)
}

// =============================================================================
// FAILURE MODES
// =============================================================================

func TestSimulate_InsufficientIncome_Fails(t *testing.T) {
	sim := debt.NewSimulator()
	ordering := debt.OrderLoans([]debt.Loan{loan("Car Loan", "5000", "10", "300")}, debt.StrategyAvalanche)

	schedule, err := sim.Simulate(ordering, dec("1000"), dec("800"))

	if schedule != nil {
		t.Error("no schedule should be produced on insufficient income")
	}
	if !errors.Is(err, debt.ErrInsufficientIncome) {
		t.Fatalf("expected ErrInsufficientIncome, got %v", err)
	}

	var detail *debt.InsufficientIncomeError
	if !errors.As(err, &detail) {
		t.Fatal("expected structured InsufficientIncomeError")
	}
	if !detail.Shortfall.Equal(dec("100")) {
		t.Errorf("expected shortfall 100, got %v", detail.Shortfall)
	}
}

func TestSimulate_RunawayInterest_Divergent(t *testing.T) {
	// GIVEN: Interest accrual that always exceeds the payment capacity
	// WHEN: Simulating
	// THEN: The iteration cap fails the run instead of looping forever

	sim := debt.NewSimulator()
	ordering := debt.OrderLoans([]debt.Loan{loan("Runaway", "10000", "600", "150")}, debt.StrategyAvalanche)

	_, err := sim.Simulate(ordering, dec("150"), dec("0"))
	if !errors.Is(err, debt.ErrScheduleDivergent) {
		t.Fatalf("expected ErrScheduleDivergent, got %v", err)
	}

	var detail *debt.ScheduleDivergentError
	if !errors.As(err, &detail) {
		t.Fatal("expected structured ScheduleDivergentError")
	}
	if detail.MaxMonths != debt.DefaultMaxMonths {
		t.Errorf("expected cap %d, got %d", debt.DefaultMaxMonths, detail.MaxMonths)
	}
}

func TestSimulate_EmptyOrdering_InvalidInput(t *testing.T) {
	sim := debt.NewSimulator()
	_, err := sim.Simulate(debt.RepaymentOrdering{Strategy: debt.StrategyAvalanche}, dec("100"), dec("0"))
	if !errors.Is(err, debt.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
