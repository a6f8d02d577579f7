package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harambee-token/harambee/internal/ledger"
)

const statusActive = "active"

// Service exposes account operations backed by the ledger.
type Service struct {
	repo   Repository
	ledger ledger.Ledger
}

// NewService builds an account service instance.
func NewService(repo Repository, ledger ledger.Ledger) *Service {
	return &Service{repo: repo, ledger: ledger}
}

// CreateInput captures data required to open an account.
type CreateInput struct {
	HolderID string
}

// Create provisions an account and its ledger counterpart.
func (s *Service) Create(ctx context.Context, input CreateInput) (Account, error) {
	acctID := uuid.New().String()
	code := fmt.Sprintf("acct:%s", acctID)

	if input.HolderID == "" {
		input.HolderID = uuid.New().String()
	}

	if err := s.ledger.EnsureAccount(ctx, code); err != nil {
		return Account{}, err
	}

	acct := Account{
		ID:        acctID,
		HolderID:  input.HolderID,
		Code:      code,
		Status:    statusActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		return Account{}, err
	}

	return acct, nil
}

// Get retrieves account metadata.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.Get(ctx, id)
}

// Balance returns the ledger balance for the account.
func (s *Service) Balance(ctx context.Context, id string) (Balance, error) {
	acct, err := s.repo.Get(ctx, id)
	if err != nil {
		return Balance{}, err
	}
	amount, err := s.ledger.Balance(ctx, acct.Code)
	if err != nil {
		return Balance{}, err
	}
	return Balance{AccountID: acct.ID, Amount: amount, AsOf: time.Now().UTC()}, nil
}
