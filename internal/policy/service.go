package policy

import (
	"context"
	"sync"

	"github.com/harambee-token/harambee/internal/notification"
)

// Service owns policy mutation. The transfer core only sees it through the
// Provider interface; setters are reached from the admin API. A single
// mutex serializes read-modify-write cycles so two concurrent setters
// cannot interleave, and every successful change emits a policy_updated
// notification.
type Service struct {
	mu       sync.Mutex
	repo     Repository
	notifier notification.Notifier
}

// NewService builds the policy service.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Snapshot returns the current policy view. Callers receive a copy; later
// setter calls never mutate it.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	return s.repo.Load(ctx)
}

// AccountFlags returns the exemption flags for an account code.
func (s *Service) AccountFlags(ctx context.Context, code string) (Flags, error) {
	return s.repo.Flags(ctx, code)
}

// SetTradingEnabled opens or closes the trading gate.
func (s *Service) SetTradingEnabled(ctx context.Context, enabled bool) error {
	return s.update(ctx, "trading_enabled", enabled, func(snap *Snapshot) {
		snap.TradingEnabled = enabled
	})
}

// SetMaxTxAmount sets the per-transaction ceiling. Zero removes it.
func (s *Service) SetMaxTxAmount(ctx context.Context, amount uint64) error {
	return s.update(ctx, "max_tx_amount", amount, func(snap *Snapshot) {
		snap.MaxTxAmount = amount
	})
}

// SetMaxWalletAmount sets the per-wallet ceiling. Zero removes it.
func (s *Service) SetMaxWalletAmount(ctx context.Context, amount uint64) error {
	return s.update(ctx, "max_wallet_amount", amount, func(snap *Snapshot) {
		snap.MaxWalletAmount = amount
	})
}

// SetTransferTax sets the tax rate and its split between the two funds.
func (s *Service) SetTransferTax(ctx context.Context, taxBps, wealthBps, charityBps uint16) error {
	return s.update(ctx, "transfer_tax_bps", taxBps, func(snap *Snapshot) {
		snap.TransferTaxBps = taxBps
		snap.WealthShareBps = wealthBps
		snap.CharityShareBps = charityBps
	})
}

// SetFunds redirects the tax cuts to new fund accounts.
func (s *Service) SetFunds(ctx context.Context, wealthFund, charityFund string) error {
	return s.update(ctx, "funds", wealthFund+","+charityFund, func(snap *Snapshot) {
		snap.WealthFund = wealthFund
		snap.CharityFund = charityFund
	})
}

// SetAccountFlags stores the exemption flags for an account code.
func (s *Service) SetAccountFlags(ctx context.Context, code string, flags Flags) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveFlags(ctx, code, flags); err != nil {
		return err
	}
	s.notify(ctx, map[string]any{
		"field":        "account_flags",
		"account":      code,
		"fee_exempt":   flags.FeeExempt,
		"limit_exempt": flags.LimitExempt,
	})
	return nil
}

func (s *Service) update(ctx context.Context, field string, value any, mutate func(*Snapshot)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	mutate(&snap)
	if err := Validate(snap); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		return err
	}
	s.notify(ctx, map[string]any{"field": field, "value": value})
	return nil
}

func (s *Service) notify(ctx context.Context, attrs map[string]any) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{Kind: notification.KindPolicyUpdated, Attrs: attrs})
}
