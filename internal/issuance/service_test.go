package issuance

import (
	"context"
	"testing"

	"github.com/harambee-token/harambee/internal/ledger"
)

func TestEnsureGenesisIdempotent(t *testing.T) {
	led := ledger.NewInMemory()
	svc := NewService(led, nil, "fund:treasury", 1_000_000)
	ctx := context.Background()

	if err := svc.EnsureGenesis(ctx); err != nil {
		t.Fatalf("genesis failed: %v", err)
	}
	if err := svc.EnsureGenesis(ctx); err != nil {
		t.Fatalf("second genesis call should be a no-op: %v", err)
	}

	supply, _ := led.TotalSupply(ctx)
	if supply != 1_000_000 {
		t.Fatalf("expected supply 1000000, got %d", supply)
	}
	balance, _ := led.Balance(ctx, "fund:treasury")
	if balance != 1_000_000 {
		t.Fatalf("expected treasury balance 1000000, got %d", balance)
	}
}

func TestMintAndBurn(t *testing.T) {
	led := ledger.NewInMemory()
	svc := NewService(led, nil, "fund:treasury", 0)
	ctx := context.Background()

	res, err := svc.Mint(ctx, SupplyInput{Account: "acct:a", Amount: 5_000, ClientTxID: "m-1"})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if res.TotalSupply != 5_000 {
		t.Fatalf("expected supply 5000, got %d", res.TotalSupply)
	}

	burned, err := svc.Burn(ctx, SupplyInput{Account: "acct:a", Amount: 2_000, ClientTxID: "b-1"})
	if err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	if burned.Balance != 3_000 || burned.TotalSupply != 3_000 {
		t.Fatalf("unexpected burn result: %+v", burned)
	}

	if _, err := svc.Burn(ctx, SupplyInput{Account: "acct:a", Amount: 10_000, ClientTxID: "b-2"}); err != ledger.ErrInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if _, err := svc.Mint(ctx, SupplyInput{Amount: 100}); err != ErrInvalidAccount {
		t.Fatalf("expected invalid account, got %v", err)
	}
}
