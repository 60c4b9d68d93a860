package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

type transactionReader interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID, since time.Time, limit, offset int) ([]domain.Transaction, int, error)
}

// ReportService serves read-only transaction reports. Page size policy is
// supplied by the caller; the service only applies the time window.
type ReportService struct {
	transactions transactionReader
}

func NewReportService(transactions transactionReader) *ReportService {
	return &ReportService{transactions: transactions}
}

func (s *ReportService) Report(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, int, error) {
	txns, total, err := s.transactions.ListByAccount(ctx, accountID, time.Time{}, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("Report: %w", err)
	}
	return txns, total, nil
}

func (s *ReportService) ReportToday(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, int, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	txns, total, err := s.transactions.ListByAccount(ctx, accountID, midnight, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ReportToday: %w", err)
	}
	return txns, total, nil
}

func (s *ReportService) ReportDaysAgo(ctx context.Context, accountID uuid.UUID, days, limit, offset int) ([]domain.Transaction, int, error) {
	if days < 0 {
		return nil, 0, fmt.Errorf("ReportDaysAgo: days: %w", domain.ErrInvalidRequest)
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	txns, total, err := s.transactions.ListByAccount(ctx, accountID, since, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ReportDaysAgo: %w", err)
	}
	return txns, total, nil
}
