package policy

import (
	"context"
	"testing"
)

func validSnapshot() Snapshot {
	return Snapshot{
		TradingEnabled:  true,
		TransferTaxBps:  300,
		WealthShareBps:  6000,
		CharityShareBps: 4000,
		WealthFund:      "fund:wealth",
		CharityFund:     "fund:charity",
	}
}

func TestSetTransferTaxValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(validSnapshot()), nil)
	ctx := context.Background()

	if err := svc.SetTransferTax(ctx, 501, 6000, 4000); err != ErrTaxTooHigh {
		t.Fatalf("expected ErrTaxTooHigh, got %v", err)
	}
	if err := svc.SetTransferTax(ctx, 500, 6000, 4001); err != ErrBadShareSplit {
		t.Fatalf("expected ErrBadShareSplit, got %v", err)
	}
	if err := svc.SetTransferTax(ctx, 500, 6000, 4000); err != nil {
		t.Fatalf("valid tax rejected: %v", err)
	}

	snap, _ := svc.Snapshot(ctx)
	if snap.TransferTaxBps != 500 {
		t.Fatalf("tax not persisted: %+v", snap)
	}
}

func TestFailedSetterLeavesPolicyUntouched(t *testing.T) {
	svc := NewService(NewMemoryRepository(validSnapshot()), nil)
	ctx := context.Background()

	if err := svc.SetFunds(ctx, "", "fund:charity"); err != ErrEmptyFund {
		t.Fatalf("expected ErrEmptyFund, got %v", err)
	}

	snap, _ := svc.Snapshot(ctx)
	if snap.WealthFund != "fund:wealth" {
		t.Fatalf("rejected setter mutated policy: %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	svc := NewService(NewMemoryRepository(validSnapshot()), nil)
	ctx := context.Background()

	before, _ := svc.Snapshot(ctx)
	if err := svc.SetMaxTxAmount(ctx, 99); err != nil {
		t.Fatalf("set max tx: %v", err)
	}

	if before.MaxTxAmount != 0 {
		t.Fatalf("held snapshot changed under a concurrent setter: %+v", before)
	}
	after, _ := svc.Snapshot(ctx)
	if after.MaxTxAmount != 99 {
		t.Fatalf("setter not visible in new snapshot: %+v", after)
	}
}

func TestAccountFlagsDefaultToZero(t *testing.T) {
	svc := NewService(NewMemoryRepository(validSnapshot()), nil)
	ctx := context.Background()

	flags, err := svc.AccountFlags(ctx, "acct:unknown")
	if err != nil {
		t.Fatalf("flags lookup failed: %v", err)
	}
	if flags.FeeExempt || flags.LimitExempt {
		t.Fatalf("expected zero flags, got %+v", flags)
	}

	if err := svc.SetAccountFlags(ctx, "acct:a", Flags{FeeExempt: true}); err != nil {
		t.Fatalf("set flags: %v", err)
	}
	flags, _ = svc.AccountFlags(ctx, "acct:a")
	if !flags.FeeExempt || flags.LimitExempt {
		t.Fatalf("unexpected flags: %+v", flags)
	}
}
