package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/auth"
	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
)

type dashboardService interface {
	AddExpense(ctx context.Context, ownerID uuid.UUID, category domain.ExpenseCategory, amount decimal.Decimal, description string, dueDate time.Time) (*domain.Expense, error)
	AddIncome(ctx context.Context, ownerID uuid.UUID, source string, amount decimal.Decimal, description string, dueDate time.Time) (*domain.Income, error)
	ExpensesCategorySummary(ctx context.Context, ownerID uuid.UUID, days int) (map[string]decimal.Decimal, error)
	IncomesSourceSummary(ctx context.Context, ownerID uuid.UUID, days int) (map[string]decimal.Decimal, error)
	UpcomingExpenses(ctx context.Context, ownerID uuid.UUID, days int) ([]domain.Expense, error)
}

type DashboardHandler struct {
	dashboard dashboardService
}

func NewDashboardHandler(dashboard dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

type expenseDTO struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     string          `json:"date"`
}

type createExpenseRequest struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     string          `json:"date"`
}

func (r createExpenseRequest) Validate() []FieldError {
	var errs []FieldError
	switch domain.ExpenseCategory(r.Category) {
	case domain.ExpenseCategoryOnlineServices, domain.ExpenseCategoryBus,
		domain.ExpenseCategoryFood, domain.ExpenseCategoryRent, domain.ExpenseCategoryOthers:
	default:
		errs = append(errs, FieldError{Field: "category", Message: "unknown category"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	}
	if _, err := time.Parse(time.DateOnly, r.DueDate); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	return errs
}

func (h *DashboardHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	dueDate, _ := time.Parse(time.DateOnly, req.DueDate)
	expense, err := h.dashboard.AddExpense(r.Context(), p.UserID, domain.ExpenseCategory(req.Category), req.Amount, req.Description, dueDate)
	if err != nil {
		logging.FromContext(r.Context()).Error("create expense failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, expenseDTO{
		ID:          expense.ID,
		Category:    string(expense.Category),
		Amount:      expense.Amount,
		Description: expense.Description,
		DueDate:     expense.DueDate.Format(time.DateOnly),
	})
}

type createIncomeRequest struct {
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     string          `json:"date"`
}

func (r createIncomeRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Source == "" {
		errs = append(errs, FieldError{Field: "source", Message: "required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	}
	if _, err := time.Parse(time.DateOnly, r.DueDate); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	return errs
}

type incomeDTO struct {
	ID          uuid.UUID       `json:"id"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     string          `json:"date"`
}

func (h *DashboardHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req createIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	dueDate, _ := time.Parse(time.DateOnly, req.DueDate)
	income, err := h.dashboard.AddIncome(r.Context(), p.UserID, req.Source, req.Amount, req.Description, dueDate)
	if err != nil {
		logging.FromContext(r.Context()).Error("create income failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, incomeDTO{
		ID:          income.ID,
		Source:      income.Source,
		Amount:      income.Amount,
		Description: income.Description,
		DueDate:     income.DueDate.Format(time.DateOnly),
	})
}

func (h *DashboardHandler) ExpensesCategorySummary(w http.ResponseWriter, r *http.Request) {
	p, days, ok := h.principalAndDays(w, r)
	if !ok {
		return
	}

	sums, err := h.dashboard.ExpensesCategorySummary(r.Context(), p.UserID, days)
	if err != nil {
		logging.FromContext(r.Context()).Error("expense summary failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"category_data_total_amount": sums,
	})
}

func (h *DashboardHandler) IncomesSourceSummary(w http.ResponseWriter, r *http.Request) {
	p, days, ok := h.principalAndDays(w, r)
	if !ok {
		return
	}

	sums, err := h.dashboard.IncomesSourceSummary(r.Context(), p.UserID, days)
	if err != nil {
		logging.FromContext(r.Context()).Error("income summary failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"income_data_total_amount": sums,
	})
}

func (h *DashboardHandler) ExpensesComingSummary(w http.ResponseWriter, r *http.Request) {
	p, days, ok := h.principalAndDays(w, r)
	if !ok {
		return
	}

	expenses, err := h.dashboard.UpcomingExpenses(r.Context(), p.UserID, days)
	if err != nil {
		logging.FromContext(r.Context()).Error("upcoming expenses failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]expenseDTO, len(expenses))
	for i, e := range expenses {
		dtos[i] = expenseDTO{
			ID:          e.ID,
			Category:    string(e.Category),
			Amount:      e.Amount,
			Description: e.Description,
			DueDate:     e.DueDate.Format(time.DateOnly),
		}
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *DashboardHandler) principalAndDays(w http.ResponseWriter, r *http.Request) (auth.Principal, int, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return auth.Principal{}, 0, false
	}

	days, err := strconv.Atoi(r.PathValue("days"))
	if err != nil || days < 0 {
		RespondValidationError(w, []FieldError{{Field: "days", Message: "must be a non-negative integer"}})
		return auth.Principal{}, 0, false
	}

	return p, days, true
}
