package issuance

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/harambee-token/harambee/internal/ledger"
	"github.com/harambee-token/harambee/internal/notification"
)

// genesisTxID is the fixed client transaction id of the one-time initial
// mint; ledger-level dedup makes EnsureGenesis safe to call on every boot.
const genesisTxID = "genesis"

// ErrInvalidAccount indicates an issuance request without a target account.
var ErrInvalidAccount = errors.New("invalid account")

// Service handles supply issuance: the one-time genesis mint plus
// administrative mint and burn. These paths bypass the transfer guard and
// tax policy entirely and talk to the ledger directly.
type Service struct {
	ledger   ledger.Ledger
	notifier notification.Notifier
	treasury string
	supply   uint64
}

// NewService builds the issuance service. treasury receives the genesis
// supply; supply is the configured fixed total.
func NewService(l ledger.Ledger, notifier notification.Notifier, treasury string, supply uint64) *Service {
	return &Service{ledger: l, notifier: notifier, treasury: treasury, supply: supply}
}

// EnsureGenesis mints the configured fixed supply to the treasury account.
// Subsequent calls are no-ops.
func (s *Service) EnsureGenesis(ctx context.Context) error {
	if s.supply == 0 {
		return nil
	}
	if err := s.ledger.EnsureAccount(ctx, s.treasury); err != nil {
		return err
	}
	_, err := s.ledger.Mint(ctx, s.treasury, ledger.KindGenesis, genesisTxID, s.supply)
	if errors.Is(err, ledger.ErrDuplicateTransaction) {
		return nil
	}
	return err
}

// SupplyInput captures an administrative mint or burn request.
type SupplyInput struct {
	Account    string
	Amount     uint64
	ClientTxID string
}

// Mint credits new supply to an account.
func (s *Service) Mint(ctx context.Context, input SupplyInput) (ledger.SupplyResult, error) {
	if input.Account == "" {
		return ledger.SupplyResult{}, ErrInvalidAccount
	}
	if input.ClientTxID == "" {
		input.ClientTxID = uuid.New().String()
	}
	res, err := s.ledger.Mint(ctx, input.Account, ledger.KindMint, input.ClientTxID, input.Amount)
	if err != nil {
		return ledger.SupplyResult{}, err
	}
	s.notify(ctx, notification.KindSupplyMinted, input, res)
	return res, nil
}

// Burn removes supply from an account.
func (s *Service) Burn(ctx context.Context, input SupplyInput) (ledger.SupplyResult, error) {
	if input.Account == "" {
		return ledger.SupplyResult{}, ErrInvalidAccount
	}
	if input.ClientTxID == "" {
		input.ClientTxID = uuid.New().String()
	}
	res, err := s.ledger.Burn(ctx, input.Account, input.ClientTxID, input.Amount)
	if err != nil {
		return ledger.SupplyResult{}, err
	}
	s.notify(ctx, notification.KindSupplyBurned, input, res)
	return res, nil
}

func (s *Service) notify(ctx context.Context, kind string, input SupplyInput, res ledger.SupplyResult) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{
		Kind: kind,
		Attrs: map[string]any{
			"account":      input.Account,
			"amount":       input.Amount,
			"total_supply": res.TotalSupply,
		},
	})
}
