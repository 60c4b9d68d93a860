package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
)

type userRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type accountRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account, numberStartFrom int64) error
}

// AccountService provisions users with their bank account and serves account
// lookups. Registration over HTTP is out of scope; this is the internal
// surface used by the seed command and tests.
type AccountService struct {
	users           userRepository
	accounts        accountRepository
	numberStartFrom int64
}

func NewAccountService(users userRepository, accounts accountRepository, numberStartFrom int64) *AccountService {
	return &AccountService{
		users:           users,
		accounts:        accounts,
		numberStartFrom: numberStartFrom,
	}
}

// CreateUserWithAccount creates the user and their single bank account. The
// account number is assigned at creation from the configured offset.
func (s *AccountService) CreateUserWithAccount(ctx context.Context, email, username, password string, accountType domain.AccountType) (*domain.User, *domain.Account, error) {
	log := logging.FromContext(ctx)

	if !accountType.IsValid() {
		return nil, nil, fmt.Errorf("CreateUserWithAccount: account type %q: %w", accountType, domain.ErrInvalidRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("CreateUserWithAccount: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsVerified:   true,
		CreatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("CreateUserWithAccount: %w", err)
	}

	account := &domain.Account{
		ID:          uuid.New(),
		UserID:      user.ID,
		AccountType: accountType,
		Version:     1,
		CreatedAt:   now,
	}
	if err := s.accounts.Create(ctx, account, s.numberStartFrom); err != nil {
		return nil, nil, fmt.Errorf("CreateUserWithAccount: %w", err)
	}

	log.Info("user account created",
		"user_id", user.ID,
		"account_id", account.ID,
		"account_number", account.AccountNumber,
		"account_type", accountType,
	)

	return user, account, nil
}

func (s *AccountService) GetAccountForUser(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetAccountForUser: %w", err)
	}
	return account, nil
}
