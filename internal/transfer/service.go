package transfer

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harambee-token/harambee/internal/guard"
	"github.com/harambee-token/harambee/internal/ledger"
	"github.com/harambee-token/harambee/internal/notification"
	"github.com/harambee-token/harambee/internal/policy"
	"github.com/harambee-token/harambee/internal/tax"
)

// ErrInvalidAccount indicates a transfer named an empty account identifier
// or the same account on both sides. Mint and burn have their own entry
// points; there is no reserved null account code on this path.
var ErrInvalidAccount = errors.New("invalid account")

// Service orchestrates taxed transfers over the ledger. It is the only
// component that mutates balances on the transfer path. A single mutex
// serializes whole requests: the policy snapshot, the guard checks, and the
// ledger posting of one request never interleave with another.
type Service struct {
	mu       sync.Mutex
	ledger   ledger.Ledger
	policy   policy.Provider
	notifier notification.Notifier
}

// NewService constructs the transfer orchestrator.
func NewService(l ledger.Ledger, p policy.Provider, notifier notification.Notifier) *Service {
	return &Service{ledger: l, policy: p, notifier: notifier}
}

// TransferInput captures a requested transfer between two ledger accounts.
type TransferInput struct {
	From       string
	To         string
	Amount     uint64
	ClientTxID string
}

// TransferResult describes the settled outcome of a transfer.
type TransferResult struct {
	TransactionID string
	Gross         uint64
	Principal     uint64
	WealthCut     uint64
	CharityCut    uint64
	FromBalance   uint64
	CompletedAt   time.Time
}

// Submit validates, taxes and settles one transfer as a single atomic unit.
// The policy snapshot is read once up front and held for the whole request.
// On any failure no balance changes; the tax legs and the principal leg land
// in one ledger posting.
func (s *Service) Submit(ctx context.Context, input TransferInput) (TransferResult, error) {
	if input.From == "" || input.To == "" || input.From == input.To {
		return TransferResult{}, ErrInvalidAccount
	}
	if input.ClientTxID == "" {
		input.ClientTxID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.policy.Snapshot(ctx)
	if err != nil {
		return TransferResult{}, err
	}
	fromFlags, err := s.policy.AccountFlags(ctx, input.From)
	if err != nil {
		return TransferResult{}, err
	}
	toFlags, err := s.policy.AccountFlags(ctx, input.To)
	if err != nil {
		return TransferResult{}, err
	}

	// Gate and transaction ceiling run against the gross amount.
	if err := guard.TradingGate(snap, fromFlags, toFlags); err != nil {
		return TransferResult{}, err
	}
	if err := guard.TxCeiling(input.Amount, snap, fromFlags, toFlags); err != nil {
		return TransferResult{}, err
	}

	split := tax.Compute(input.Amount, snap, fromFlags, toFlags)

	legs := make([]ledger.Leg, 0, 3)
	if split.WealthCut > 0 {
		legs = append(legs, ledger.Leg{From: input.From, To: snap.WealthFund, Amount: split.WealthCut})
	}
	if split.CharityCut > 0 {
		legs = append(legs, ledger.Leg{From: input.From, To: snap.CharityFund, Amount: split.CharityCut})
	}

	// The wallet ceiling uses the balance the recipient would hold after the
	// principal only, including any tax cut that happens to land on it when
	// the recipient is itself a fund account.
	projected, err := s.ledger.Balance(ctx, input.To)
	if err != nil {
		return TransferResult{}, err
	}
	for _, leg := range legs {
		if leg.To != input.To {
			continue
		}
		if projected > math.MaxUint64-leg.Amount {
			return TransferResult{}, ledger.ErrOverflow
		}
		projected += leg.Amount
	}
	if projected > math.MaxUint64-split.Principal {
		return TransferResult{}, ledger.ErrOverflow
	}
	projected += split.Principal
	if err := guard.WalletCeiling(projected, snap, toFlags); err != nil {
		return TransferResult{}, err
	}

	if split.Principal > 0 {
		legs = append(legs, ledger.Leg{From: input.From, To: input.To, Amount: split.Principal})
	}

	outcome := TransferResult{
		Gross:       input.Amount,
		Principal:   split.Principal,
		WealthCut:   split.WealthCut,
		CharityCut:  split.CharityCut,
		CompletedAt: time.Now().UTC(),
	}

	// A zero-amount transfer is a valid no-op once the checks pass.
	if len(legs) > 0 {
		res, err := s.ledger.Post(ctx, ledger.KindTransfer, input.ClientTxID, legs)
		if err != nil {
			return TransferResult{}, err
		}
		outcome.TransactionID = res.TransactionID
		outcome.FromBalance = res.FromBalance
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind: notification.KindTransferSettled,
			Attrs: map[string]any{
				"from":        input.From,
				"to":          input.To,
				"gross":       outcome.Gross,
				"principal":   outcome.Principal,
				"wealth_cut":  outcome.WealthCut,
				"charity_cut": outcome.CharityCut,
			},
		})
	}

	return outcome, nil
}

// BalanceOf reads the committed balance for an account code.
func (s *Service) BalanceOf(ctx context.Context, code string) (uint64, error) {
	return s.ledger.Balance(ctx, code)
}

// TotalSupply reads the circulating supply.
func (s *Service) TotalSupply(ctx context.Context) (uint64, error) {
	return s.ledger.TotalSupply(ctx)
}
