package guard

import (
	"testing"

	"github.com/harambee-token/harambee/internal/policy"
)

func TestTradingGate(t *testing.T) {
	closed := policy.Snapshot{TradingEnabled: false}

	if err := TradingGate(closed, policy.Flags{}, policy.Flags{}); err != ErrTradingDisabled {
		t.Fatalf("expected ErrTradingDisabled, got %v", err)
	}
	if err := TradingGate(closed, policy.Flags{LimitExempt: true}, policy.Flags{}); err != nil {
		t.Fatalf("exempt sender should pass: %v", err)
	}
	if err := TradingGate(closed, policy.Flags{}, policy.Flags{LimitExempt: true}); err != nil {
		t.Fatalf("exempt recipient should pass: %v", err)
	}
	if err := TradingGate(policy.Snapshot{TradingEnabled: true}, policy.Flags{}, policy.Flags{}); err != nil {
		t.Fatalf("open gate should pass: %v", err)
	}
}

func TestTxCeiling(t *testing.T) {
	snap := policy.Snapshot{MaxTxAmount: 1_000}

	if err := TxCeiling(1_000, snap, policy.Flags{}, policy.Flags{}); err != nil {
		t.Fatalf("at-ceiling amount should pass: %v", err)
	}
	if err := TxCeiling(1_001, snap, policy.Flags{}, policy.Flags{}); err != ErrMaxTxExceeded {
		t.Fatalf("expected ErrMaxTxExceeded, got %v", err)
	}
	if err := TxCeiling(1_001, snap, policy.Flags{LimitExempt: true}, policy.Flags{}); err != nil {
		t.Fatalf("exempt sender should pass: %v", err)
	}
	if err := TxCeiling(1_000_000, policy.Snapshot{}, policy.Flags{}, policy.Flags{}); err != nil {
		t.Fatalf("zero ceiling means unlimited: %v", err)
	}
}

func TestWalletCeiling(t *testing.T) {
	snap := policy.Snapshot{MaxWalletAmount: 1_000}

	if err := WalletCeiling(1_000, snap, policy.Flags{}); err != nil {
		t.Fatalf("at-ceiling balance should pass: %v", err)
	}
	if err := WalletCeiling(1_050, snap, policy.Flags{}); err != ErrMaxWalletExceeded {
		t.Fatalf("expected ErrMaxWalletExceeded, got %v", err)
	}
	if err := WalletCeiling(1_050, snap, policy.Flags{LimitExempt: true}); err != nil {
		t.Fatalf("exempt recipient should pass: %v", err)
	}
	if err := WalletCeiling(1_000_000, policy.Snapshot{}, policy.Flags{}); err != nil {
		t.Fatalf("zero ceiling means unlimited: %v", err)
	}
}
