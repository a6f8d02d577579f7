package tax

import (
	"math"
	"testing"

	"github.com/harambee-token/harambee/internal/policy"
)

func snapshot(taxBps, wealthBps, charityBps uint16) policy.Snapshot {
	return policy.Snapshot{
		TransferTaxBps:  taxBps,
		WealthShareBps:  wealthBps,
		CharityShareBps: charityBps,
		WealthFund:      "fund:wealth",
		CharityFund:     "fund:charity",
	}
}

func TestComputeFivepercentSplit(t *testing.T) {
	split := Compute(1_000, snapshot(500, 6000, 4000), policy.Flags{}, policy.Flags{})

	if split.Tax() != 50 {
		t.Fatalf("expected tax 50, got %d", split.Tax())
	}
	if split.WealthCut != 30 || split.CharityCut != 20 {
		t.Fatalf("unexpected cuts: %+v", split)
	}
	if split.Principal != 950 {
		t.Fatalf("expected principal 950, got %d", split.Principal)
	}
}

func TestComputeZeroRate(t *testing.T) {
	split := Compute(100, snapshot(0, 6000, 4000), policy.Flags{}, policy.Flags{})
	if split.Principal != 100 || split.WealthCut != 0 || split.CharityCut != 0 {
		t.Fatalf("expected untaxed split, got %+v", split)
	}
}

func TestComputeFeeExemptShortCircuit(t *testing.T) {
	snap := snapshot(500, 6000, 4000)

	for _, tc := range []struct {
		name     string
		from, to policy.Flags
	}{
		{"sender exempt", policy.Flags{FeeExempt: true}, policy.Flags{}},
		{"recipient exempt", policy.Flags{}, policy.Flags{FeeExempt: true}},
	} {
		split := Compute(1_000, snap, tc.from, tc.to)
		if split.Principal != 1_000 || split.Tax() != 0 {
			t.Fatalf("%s: expected untaxed split, got %+v", tc.name, split)
		}
	}
}

func TestComputeNoRoundingLeakage(t *testing.T) {
	// Odd splits force division remainders; the charity cut must absorb them
	// so the three parts always sum back to the gross amount.
	snap := snapshot(123, 3333, 6667)
	for amount := uint64(0); amount < 5_000; amount++ {
		split := Compute(amount, snap, policy.Flags{}, policy.Flags{})
		tax := amount * uint64(snap.TransferTaxBps) / policy.BpsDenominator
		if split.Tax() != tax {
			t.Fatalf("amount %d: cuts sum to %d, want tax %d", amount, split.Tax(), tax)
		}
		if split.Principal+split.WealthCut+split.CharityCut != amount {
			t.Fatalf("amount %d: split loses value: %+v", amount, split)
		}
	}
}

func TestComputeHugeAmountNoOverflow(t *testing.T) {
	amount := uint64(math.MaxUint64)
	split := Compute(amount, snapshot(500, 6000, 4000), policy.Flags{}, policy.Flags{})

	if split.Principal+split.WealthCut+split.CharityCut != amount {
		t.Fatalf("split loses value at max amount: %+v", split)
	}
	// 5% of MaxUint64, floored.
	wantTax := uint64(922337203685477580)
	if split.Tax() != wantTax {
		t.Fatalf("expected tax %d, got %d", wantTax, split.Tax())
	}
}
