package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/auth"
	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
)

// Page sizes per report window, supplied here rather than by the report
// service.
const (
	reportPageSize        = 30
	reportDaysAgoPageSize = 10
)

type reportService interface {
	Report(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, int, error)
	ReportToday(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, int, error)
	ReportDaysAgo(ctx context.Context, accountID uuid.UUID, days, limit, offset int) ([]domain.Transaction, int, error)
}

type ReportHandler struct {
	reports reportService
}

func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type transactionDTO struct {
	ID             uuid.UUID       `json:"id"`
	AccountID      uuid.UUID       `json:"account"`
	Timestamp      time.Time       `json:"timestamp"`
	Amount         decimal.Decimal `json:"amount"`
	BalanceAfter   decimal.Decimal `json:"balance_after_transaction"`
	Type           string          `json:"transaction_type"`
	SenderUserName *string         `json:"sender_user_name"`
}

func toTransactionDTOs(txns []domain.Transaction) []transactionDTO {
	dtos := make([]transactionDTO, len(txns))
	for i, t := range txns {
		dtos[i] = transactionDTO{
			ID:             t.ID,
			AccountID:      t.AccountID,
			Timestamp:      t.CreatedAt,
			Amount:         t.Amount,
			BalanceAfter:   t.BalanceAfter,
			Type:           string(t.Type),
			SenderUserName: t.Counterparty,
		}
	}
	return dtos
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	offset := pageOffset(r, reportPageSize)
	txns, total, err := h.reports.Report(r.Context(), p.AccountID, reportPageSize, offset)
	if err != nil {
		logging.FromContext(r.Context()).Error("report failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	respondReport(w, txns, total, reportPageSize, offset)
}

func (h *ReportHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	offset := pageOffset(r, reportPageSize)
	txns, total, err := h.reports.ReportToday(r.Context(), p.AccountID, reportPageSize, offset)
	if err != nil {
		logging.FromContext(r.Context()).Error("today report failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	respondReport(w, txns, total, reportPageSize, offset)
}

func (h *ReportHandler) ListDaysAgo(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	days, err := strconv.Atoi(r.PathValue("days"))
	if err != nil || days < 0 {
		RespondValidationError(w, []FieldError{{Field: "days", Message: "must be a non-negative integer"}})
		return
	}

	offset := pageOffset(r, reportDaysAgoPageSize)
	txns, total, svcErr := h.reports.ReportDaysAgo(r.Context(), p.AccountID, days, reportDaysAgoPageSize, offset)
	if svcErr != nil {
		logging.FromContext(r.Context()).Error("days-ago report failed", "error", svcErr)
		RespondDomainError(w, svcErr)
		return
	}

	respondReport(w, txns, total, reportDaysAgoPageSize, offset)
}

func respondReport(w http.ResponseWriter, txns []domain.Transaction, total, limit, offset int) {
	RespondSuccess(w, http.StatusOK, Paginated{
		Items:  toTransactionDTOs(txns),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// pageOffset turns the 1-based ?page= query parameter into a row offset.
func pageOffset(r *http.Request, pageSize int) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
