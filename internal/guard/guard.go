package guard

import (
	"errors"

	"github.com/harambee-token/harambee/internal/policy"
)

var (
	// ErrTradingDisabled indicates the trading gate is closed and neither
	// party is limit-exempt.
	ErrTradingDisabled = errors.New("trading disabled")

	// ErrMaxTxExceeded indicates the gross amount is above the per-transaction
	// ceiling.
	ErrMaxTxExceeded = errors.New("max transaction amount exceeded")

	// ErrMaxWalletExceeded indicates the recipient would end above the
	// per-wallet ceiling.
	ErrMaxWalletExceeded = errors.New("max wallet amount exceeded")
)

// TradingGate rejects transfers while trading is disabled unless either
// party is limit-exempt.
func TradingGate(snap policy.Snapshot, from, to policy.Flags) error {
	if snap.TradingEnabled || from.LimitExempt || to.LimitExempt {
		return nil
	}
	return ErrTradingDisabled
}

// TxCeiling checks the gross transfer amount against the per-transaction
// ceiling. A zero ceiling means unlimited.
func TxCeiling(amount uint64, snap policy.Snapshot, from, to policy.Flags) error {
	if snap.MaxTxAmount == 0 || from.LimitExempt || to.LimitExempt {
		return nil
	}
	if amount > snap.MaxTxAmount {
		return ErrMaxTxExceeded
	}
	return nil
}

// WalletCeiling checks the balance the recipient would hold after receiving
// the principal. The caller supplies the projected balance; the check runs
// against the post-tax principal, not the gross amount.
func WalletCeiling(projected uint64, snap policy.Snapshot, to policy.Flags) error {
	if snap.MaxWalletAmount == 0 || to.LimitExempt {
		return nil
	}
	if projected > snap.MaxWalletAmount {
		return ErrMaxWalletExceeded
	}
	return nil
}
