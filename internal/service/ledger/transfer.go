package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
)

type TransferRequest struct {
	InitiatorUserID          uuid.UUID
	UserName                 string
	DestinationAccountNumber int64
	Amount                   decimal.Decimal
}

// TransferResult describes a completed double-entry transfer from the
// initiator's point of view.
type TransferResult struct {
	Username                 string
	BalanceBefore            decimal.Decimal
	Amount                   decimal.Decimal
	BalanceAfter             decimal.Decimal
	DestinationAccountNumber int64
	Type                     domain.TransactionType
}

func (s *Service) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	log := logging.FromContext(ctx)

	initiator, err := s.users.GetByID(ctx, req.InitiatorUserID)
	if err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}
	senderAcct, err := s.accounts.GetByUserID(ctx, req.InitiatorUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Transfer: %w", domain.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	destAcct, err := s.validateTransfer(ctx, req, initiator, senderAcct)
	if err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	destOwner, err := s.users.GetByID(ctx, destAcct.UserID)
	if err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	res, err := withRetry(func() (*TransferResult, error) {
		return s.executeTransfer(ctx, req, initiator, destOwner, senderAcct.ID, destAcct.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	log.Info("transfer completed",
		"sender_account", senderAcct.ID,
		"destination_account", destAcct.ID,
		"destination_number", req.DestinationAccountNumber,
		"amount", req.Amount,
	)

	s.notifyTransferReceived(ctx, destOwner, initiator.Username, req.Amount)

	return res, nil
}

// validateTransfer applies the business rules in order, failing fast on the
// first violation, and resolves the destination account. The supplied user
// name is checked against the authenticated identity to reject spoofed
// payloads; it is not the authorization mechanism itself.
func (s *Service) validateTransfer(ctx context.Context, req TransferRequest, initiator *domain.User, sender *domain.Account) (*domain.Account, error) {
	if req.UserName != initiator.Username {
		return nil, fmt.Errorf("validateTransfer: %w", domain.ErrUsernameMismatch)
	}

	if req.DestinationAccountNumber == sender.AccountNumber {
		return nil, fmt.Errorf("validateTransfer: %w", domain.ErrSelfTransfer)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("validateTransfer: %w", domain.ErrInvalidAmount)
	}
	if req.Amount.GreaterThan(sender.Balance) {
		return nil, fmt.Errorf("validateTransfer: current balance is %s: %w",
			sender.Balance, domain.ErrInsufficientFunds)
	}

	destAcct, err := s.accounts.GetByNumber(ctx, req.DestinationAccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("validateTransfer: %w", domain.ErrDestinationNotFound)
		}
		return nil, fmt.Errorf("validateTransfer: %w", err)
	}

	return destAcct, nil
}

// executeTransfer is the atomic unit: both accounts locked in ascending id
// order, two Transaction rows, one MoneyTransfer row and both balance
// updates in a single commit.
func (s *Service) executeTransfer(
	ctx context.Context,
	req TransferRequest,
	initiator, destOwner *domain.User,
	senderID, destID uuid.UUID,
) (*TransferResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("executeTransfer: begin tx: %w", err)
	}
	defer tx.Rollback()

	locked, err := s.lockAccountsInOrder(ctx, tx, senderID, destID)
	if err != nil {
		return nil, fmt.Errorf("executeTransfer: %w", err)
	}
	sender, dest := locked[senderID], locked[destID]

	if req.Amount.GreaterThan(sender.Balance) {
		return nil, fmt.Errorf("executeTransfer: current balance is %s: %w",
			sender.Balance, domain.ErrInsufficientFunds)
	}

	senderBalance := sender.Balance.Sub(req.Amount)
	destBalance := dest.Balance.Add(req.Amount)
	now := time.Now().UTC()

	sent := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    sender.ID,
		Amount:       req.Amount,
		BalanceAfter: senderBalance,
		Type:         domain.TransactionTypeTransferSent,
		Counterparty: &destOwner.Username,
		CreatedAt:    now,
	}
	if err := s.transactions.Create(ctx, tx, sent); err != nil {
		return nil, fmt.Errorf("executeTransfer: sent transaction: %w", err)
	}

	received := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    dest.ID,
		Amount:       req.Amount,
		BalanceAfter: destBalance,
		Type:         domain.TransactionTypeTransferReceived,
		Counterparty: &initiator.Username,
		CreatedAt:    now,
	}
	if err := s.transactions.Create(ctx, tx, received); err != nil {
		return nil, fmt.Errorf("executeTransfer: received transaction: %w", err)
	}

	audit := &domain.MoneyTransfer{
		ID:                       uuid.New(),
		UserName:                 initiator.Username,
		DestinationAccountNumber: req.DestinationAccountNumber,
		Amount:                   req.Amount,
		CreatedAt:                now,
	}
	if err := s.transfers.Create(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("executeTransfer: audit record: %w", err)
	}

	if err := s.accounts.UpdateBalance(ctx, tx, sender.ID, senderBalance, sender.Version+1); err != nil {
		return nil, fmt.Errorf("executeTransfer: update sender: %w", err)
	}
	if err := s.accounts.UpdateBalance(ctx, tx, dest.ID, destBalance, dest.Version+1); err != nil {
		return nil, fmt.Errorf("executeTransfer: update destination: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("executeTransfer: commit: %w", err)
	}

	return &TransferResult{
		Username:                 initiator.Username,
		BalanceBefore:            sender.Balance,
		Amount:                   req.Amount,
		BalanceAfter:             senderBalance,
		DestinationAccountNumber: req.DestinationAccountNumber,
		Type:                     domain.TransactionTypeTransferSent,
	}, nil
}

// lockAccountsInOrder acquires both row locks in ascending account id order
// so concurrent transfers touching the same pair cannot deadlock.
func (s *Service) lockAccountsInOrder(ctx context.Context, tx *sql.Tx, ids ...uuid.UUID) (map[uuid.UUID]*domain.Account, error) {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	locked := make(map[uuid.UUID]*domain.Account, len(ids))
	for _, id := range sorted {
		acct, err := s.accounts.GetForUpdate(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("lockAccountsInOrder: %w", err)
		}
		locked[id] = acct
	}
	return locked, nil
}

// notifyTransferReceived emails the receiver after commit. Failures are
// logged and never affect the completed transfer.
func (s *Service) notifyTransferReceived(ctx context.Context, destOwner *domain.User, fromUsername string, amount decimal.Decimal) {
	if s.mailer == nil {
		return
	}
	log := logging.FromContext(ctx)
	go func() {
		body := fmt.Sprintf("Hi %s, you received a transfer of %s from %s.",
			destOwner.Username, amount, fromUsername)
		if err := s.mailer.Send(destOwner.Email, "You received a transfer", body); err != nil {
			log.Warn("transfer notification email failed", "error", err, "to", destOwner.Email)
		}
	}()
}
