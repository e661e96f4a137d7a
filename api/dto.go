/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY FIELDS:
  All amounts are decimal.Decimal, which marshals as a quoted decimal
  string. Clients may send either a JSON number or a string; both
  unmarshal without float rounding.

VALIDATION:
  Validation is done in handlers and domain code, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - debt/types.go: Domain types these mirror
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Raimal54/chai-wallet/debt"
	"github.com/Raimal54/chai-wallet/invest"
	"github.com/Raimal54/chai-wallet/ledger"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// DEBT PLAN
// =============================================================================

// LoanDTO represents one loan in a debt-plan request or response.
type LoanDTO struct {
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
}

// DebtPlanRequest is the request to compute a repayment plan.
type DebtPlanRequest struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Loans    []LoanDTO       `json:"loans"`
}

// RepaymentStepDTO is one simulated month, chart-ready.
type RepaymentStepDTO struct {
	Month                 int             `json:"month"`
	TotalRemainingBalance decimal.Decimal `json:"total_remaining_balance"`
	MonthlyPayment        decimal.Decimal `json:"monthly_payment"`
}

// LoanPayoffDTO records the month a loan was retired.
type LoanPayoffDTO struct {
	Name  string `json:"name"`
	Month int    `json:"month"`
}

// DebtPlanSummaryDTO carries the derived figures the UI displays.
type DebtPlanSummaryDTO struct {
	Months            int             `json:"months"`
	Years             int             `json:"years"`
	RemainingMonths   int             `json:"remaining_months"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
	Disposable        decimal.Decimal `json:"disposable"`
}

// DebtPlanResponse is the computed plan.
type DebtPlanResponse struct {
	Strategy string             `json:"strategy"`
	Order    []string           `json:"order"`
	Summary  DebtPlanSummaryDTO `json:"summary"`
	Schedule []RepaymentStepDTO `json:"schedule"`
	Payoffs  []LoanPayoffDTO    `json:"payoffs"`
}

func toLoan(dto LoanDTO) debt.Loan {
	return debt.Loan{
		Name:           dto.Name,
		Balance:        dto.Balance,
		InterestRate:   dto.InterestRate,
		MinimumPayment: dto.MinimumPayment,
	}
}

func toDebtPlanResponse(plan debt.Plan, schedule *debt.RepaymentSchedule) DebtPlanResponse {
	ordering := debt.OrderLoans(plan.Loans, schedule.Strategy)
	order := make([]string, len(ordering.Loans))
	for i, l := range ordering.Loans {
		order[i] = l.Name
	}

	steps := make([]RepaymentStepDTO, len(schedule.Steps))
	for i, s := range schedule.Steps {
		steps[i] = RepaymentStepDTO{
			Month:                 s.Month,
			TotalRemainingBalance: s.TotalRemainingBalance,
			MonthlyPayment:        s.MonthlyPayment,
		}
	}

	payoffs := make([]LoanPayoffDTO, len(schedule.LoanPayoffs))
	for i, p := range schedule.LoanPayoffs {
		payoffs[i] = LoanPayoffDTO{Name: p.Name, Month: p.Month}
	}

	years, months := schedule.Horizon()
	return DebtPlanResponse{
		Strategy: string(schedule.Strategy),
		Order:    order,
		Summary: DebtPlanSummaryDTO{
			Months:            schedule.Months(),
			Years:             years,
			RemainingMonths:   months,
			TotalInterestPaid: schedule.TotalInterestPaid,
			Disposable:        plan.Disposable(),
		},
		Schedule: steps,
		Payoffs:  payoffs,
	}
}

// =============================================================================
// LEDGER
// =============================================================================

// TransactionDTO represents a transaction in API responses.
type TransactionDTO struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Date       string          `json:"date"`
	Recurrence string          `json:"recurrence,omitempty"`
	AccountID  string          `json:"account_id,omitempty"`
}

// CreateTransactionRequest is the request to record a transaction.
// ID is optional; the server generates one when absent.
type CreateTransactionRequest struct {
	ID         string          `json:"id,omitempty"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Date       string          `json:"date"`
	Recurrence string          `json:"recurrence,omitempty"`
	AccountID  string          `json:"account_id,omitempty"`
}

// TotalsDTO carries overall income/expense totals.
type TotalsDTO struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// TransactionListResponse bundles the list with its summary so the UI
// renders both from one call.
type TransactionListResponse struct {
	Transactions []TransactionDTO `json:"transactions"`
	Summary      TotalsDTO        `json:"summary"`
}

func toTransactionDTO(tx ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:         tx.ID,
		Type:       string(tx.Type),
		Amount:     tx.Amount,
		Category:   string(tx.Category),
		Date:       tx.Date.Format(time.RFC3339),
		Recurrence: string(tx.Recurrence),
		AccountID:  tx.AccountID,
	}
}

// BudgetDTO represents a monthly category budget.
type BudgetDTO struct {
	ID       string          `json:"id,omitempty"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    string          `json:"month"`
}

// BudgetStatusDTO is a budget with spending measured against it.
type BudgetStatusDTO struct {
	BudgetDTO
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Over      bool            `json:"over"`
}

// GoalDTO represents a savings goal.
type GoalDTO struct {
	ID            string          `json:"id,omitempty"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline,omitempty"`
	Progress      decimal.Decimal `json:"progress"`
}

// ContributionRequest adds money to a goal.
type ContributionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func toGoalDTO(g ledger.Goal) GoalDTO {
	dto := GoalDTO{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Progress:      g.Progress(),
	}
	if !g.Deadline.IsZero() {
		dto.Deadline = g.Deadline.Format("2006-01-02")
	}
	return dto
}

// AccountDTO represents a named account.
type AccountDTO struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// =============================================================================
// INVESTMENT PROJECTION
// =============================================================================

// ProjectionRequest is the request for a SIP growth projection.
type ProjectionRequest struct {
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	Years         int             `json:"years"`
}

// YearPointDTO is one year of projected growth.
type YearPointDTO struct {
	Year     int             `json:"year"`
	Invested decimal.Decimal `json:"invested"`
	Value    decimal.Decimal `json:"value"`
}

// ProjectionResponse is the computed projection.
type ProjectionResponse struct {
	TotalInvested decimal.Decimal `json:"total_invested"`
	FinalValue    decimal.Decimal `json:"final_value"`
	Points        []YearPointDTO  `json:"points"`
}

func toProjectionResponse(points []invest.YearPoint) ProjectionResponse {
	dtos := make([]YearPointDTO, len(points))
	for i, p := range points {
		dtos[i] = YearPointDTO{Year: p.Year, Invested: p.Invested, Value: p.Value}
	}
	resp := ProjectionResponse{Points: dtos}
	if len(points) > 0 {
		last := points[len(points)-1]
		resp.TotalInvested = last.Invested
		resp.FinalValue = last.Value
	}
	return resp
}
