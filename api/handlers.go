/*
handlers.go - HTTP API handlers for the wallet

PURPOSE:
  Exposes the debt engine and the ledger via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Debt:
    POST   /api/debt-plan              Compute a repayment plan

  Transactions:
    GET    /api/transactions           List with summary
    POST   /api/transactions           Record a transaction
    GET    /api/transactions/export    Download CSV

  Budgets:
    GET    /api/budgets                List with spending status (?month=)
    PUT    /api/budgets                Upsert a category+month budget
    DELETE /api/budgets/{id}           Remove a budget

  Goals:
    GET    /api/goals                  List goals with progress
    POST   /api/goals                  Create a goal
    POST   /api/goals/{id}/contributions  Add to a goal
    DELETE /api/goals/{id}             Remove a goal

  Accounts:
    GET    /api/accounts               List accounts
    POST   /api/accounts               Create an account

  Invest:
    POST   /api/invest/projection      SIP growth projection

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (planner, ledger, projection)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, insufficient income
  - 404: Resource not found
  - 409: Duplicate IDs
  - 422: Schedule failed to terminate within the iteration cap
  - 500: Internal errors

PLAN CACHING:
  Computed debt plans are cached by input fingerprint. A hit returns
  the stored response body verbatim; a miss computes, stores, returns.
  Cache failures are logged and degrade to recomputation.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - cache/cache.go: Plan fingerprinting
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Raimal54/chai-wallet/cache"
	"github.com/Raimal54/chai-wallet/debt"
	"github.com/Raimal54/chai-wallet/invest"
	"github.com/Raimal54/chai-wallet/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   ledger.Store
	Planner *debt.Planner
	Cache   cache.Cache
}

// NewHandler creates a new handler. A nil planner gets the defaults; a
// nil cache disables plan caching.
func NewHandler(store ledger.Store, planner *debt.Planner, c cache.Cache) *Handler {
	if planner == nil {
		planner = debt.NewPlanner()
	}
	return &Handler{Store: store, Planner: planner, Cache: c}
}

// =============================================================================
// DEBT PLAN
// =============================================================================

// CreateDebtPlan computes a repayment plan.
// POST /api/debt-plan
func (h *Handler) CreateDebtPlan(w http.ResponseWriter, r *http.Request) {
	var req DebtPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	plan := debt.Plan{Income: req.Income, Expenses: req.Expenses}
	for _, l := range req.Loans {
		plan.Loans = append(plan.Loans, toLoan(l))
	}

	var key string
	if h.Cache != nil {
		key = cache.PlanKey(plan)
		if body, ok := h.Cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(body))
			return
		}
	}

	schedule, err := h.Planner.Build(plan)
	if err != nil {
		switch {
		case errors.Is(err, debt.ErrScheduleDivergent):
			writeError(w, http.StatusUnprocessableEntity, "Schedule did not terminate", err)
		case debt.IsClientError(err):
			writeError(w, http.StatusBadRequest, "Invalid plan", err)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to build plan", err)
		}
		return
	}

	resp := toDebtPlanResponse(plan, schedule)

	if h.Cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			if err := h.Cache.Set(key, string(body)); err != nil {
				log.Printf("[API] plan cache set failed: %v", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// ListTransactions returns all transactions with overall totals.
// GET /api/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Store.ListTransactions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}

	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}

	totals := ledger.Summarize(txs)
	writeJSON(w, http.StatusOK, TransactionListResponse{
		Transactions: dtos,
		Summary: TotalsDTO{
			Income:   totals.Income,
			Expenses: totals.Expenses,
			Balance:  totals.Balance,
		},
	})
}

// CreateTransaction records a transaction.
// POST /api/transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use RFC 3339 or YYYY-MM-DD)", err)
		return
	}

	tx := ledger.Transaction{
		ID:         req.ID,
		Type:       ledger.TransactionType(req.Type),
		Amount:     req.Amount,
		Category:   ledger.Category(req.Category),
		Date:       date,
		Recurrence: ledger.Recurrence(req.Recurrence),
		AccountID:  req.AccountID,
	}
	if tx.ID == "" {
		tx.ID = newID("txn")
	}

	if err := h.Store.AddTransaction(r.Context(), tx); err != nil {
		writeStoreError(w, "Failed to record transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

// ExportTransactions streams all transactions as CSV.
// GET /api/transactions/export
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Store.ListTransactions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := ledger.WriteCSV(w, txs); err != nil {
		// Headers are already sent; all we can do is log.
		log.Printf("[API] CSV export failed: %v", err)
	}
}

// =============================================================================
// BUDGETS
// =============================================================================

// ListBudgets returns budgets with spending measured against them.
// GET /api/budgets?month=YYYY-MM
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	month := r.URL.Query().Get("month")

	budgets, err := h.Store.ListBudgets(ctx, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list budgets", err)
		return
	}
	txs, err := h.Store.ListTransactions(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}

	statuses := ledger.BudgetReport(budgets, txs)
	dtos := make([]BudgetStatusDTO, len(statuses))
	for i, s := range statuses {
		dtos[i] = BudgetStatusDTO{
			BudgetDTO: BudgetDTO{
				ID:       s.Budget.ID,
				Category: string(s.Budget.Category),
				Amount:   s.Budget.Amount,
				Month:    s.Budget.Month,
			},
			Spent:     s.Spent,
			Remaining: s.Remaining,
			Over:      s.Over,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpsertBudget creates or replaces the budget for a category+month.
// PUT /api/budgets
func (h *Handler) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	var req BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	b := ledger.Budget{
		ID:       req.ID,
		Category: ledger.Category(req.Category),
		Amount:   req.Amount,
		Month:    req.Month,
	}
	if b.ID == "" {
		b.ID = newID("bud")
	}

	if err := h.Store.UpsertBudget(r.Context(), b); err != nil {
		writeStoreError(w, "Failed to save budget", err)
		return
	}

	req.ID = b.ID
	writeJSON(w, http.StatusOK, req)
}

// DeleteBudget removes a budget.
// DELETE /api/budgets/{id}
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteBudget(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete budget", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// GOALS
// =============================================================================

// ListGoals returns all goals with computed progress.
// GET /api/goals
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.Store.ListGoals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list goals", err)
		return
	}

	dtos := make([]GoalDTO, len(goals))
	for i, g := range goals {
		dtos[i] = toGoalDTO(g)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateGoal creates a savings goal.
// POST /api/goals
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	g := ledger.Goal{
		ID:            req.ID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	}
	if g.ID == "" {
		g.ID = newID("goal")
	}
	if req.Deadline != "" {
		deadline, err := parseDate(req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid deadline (use YYYY-MM-DD)", err)
			return
		}
		g.Deadline = deadline
	}

	if err := h.Store.AddGoal(r.Context(), g); err != nil {
		writeStoreError(w, "Failed to create goal", err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalDTO(g))
}

// AddContribution adds money to a goal's saved amount.
// POST /api/goals/{id}/contributions
func (h *Handler) AddContribution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "Contribution must be positive", nil)
		return
	}

	ctx := r.Context()
	goals, err := h.Store.ListGoals(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list goals", err)
		return
	}

	for _, g := range goals {
		if g.ID != id {
			continue
		}
		g.CurrentAmount = g.CurrentAmount.Add(req.Amount)
		if err := h.Store.UpdateGoal(ctx, g); err != nil {
			writeStoreError(w, "Failed to update goal", err)
			return
		}
		writeJSON(w, http.StatusOK, toGoalDTO(g))
		return
	}

	writeError(w, http.StatusNotFound, "Goal not found", nil)
}

// DeleteGoal removes a goal.
// DELETE /api/goals/{id}
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteGoal(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete goal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ACCOUNTS
// =============================================================================

// ListAccounts returns all accounts.
// GET /api/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list accounts", err)
		return
	}

	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = AccountDTO{ID: a.ID, Name: a.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAccount creates an account.
// POST /api/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req AccountDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Account name must not be empty", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("acct")
	}

	if err := h.Store.AddAccount(r.Context(), ledger.Account{ID: req.ID, Name: req.Name}); err != nil {
		writeStoreError(w, "Failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// INVESTMENT PROJECTION
// =============================================================================

// CreateProjection computes a SIP growth projection.
// POST /api/invest/projection
func (h *Handler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	var req ProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	points, err := invest.Project(invest.Input{
		MonthlyAmount: req.MonthlyAmount,
		AnnualRate:    req.AnnualRate,
		Years:         req.Years,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid projection input", err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectionResponse(points))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps ledger store errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, ledger.ErrDuplicateID):
		writeError(w, http.StatusConflict, message, err)
	case errors.Is(err, ledger.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

// parseDate accepts RFC 3339 or plain YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
