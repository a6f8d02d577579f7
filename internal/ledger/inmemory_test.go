package ledger

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
)

func TestInMemoryLedger_PostMaintainsBalance(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	SeedBalance(l, "acct:a", 10_000)

	res, err := l.Post(ctx, KindTransfer, "client-1", []Leg{
		{From: "acct:a", To: "fund:wealth", Amount: 30},
		{From: "acct:a", To: "fund:charity", Amount: 20},
		{From: "acct:a", To: "acct:b", Amount: 950},
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if res.FromBalance != 9_000 {
		t.Fatalf("expected from balance 9000, got %d", res.FromBalance)
	}

	impl := l.(*inMemoryLedger)
	total := impl.balances["acct:a"] + impl.balances["acct:b"] +
		impl.balances["fund:wealth"] + impl.balances["fund:charity"]
	if total != 10_000 {
		t.Fatalf("ledger not balanced, total=%d", total)
	}
}

func TestInMemoryLedger_PostAllOrNothing(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	SeedBalance(l, "acct:a", 100)

	// Third leg cannot be covered; the first two must not stick.
	_, err := l.Post(ctx, KindTransfer, "client-1", []Leg{
		{From: "acct:a", To: "fund:wealth", Amount: 30},
		{From: "acct:a", To: "fund:charity", Amount: 20},
		{From: "acct:a", To: "acct:b", Amount: 951},
	})
	if err != ErrInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	for code, want := range map[string]uint64{"acct:a": 100, "acct:b": 0, "fund:wealth": 0, "fund:charity": 0} {
		got, _ := l.Balance(ctx, code)
		if got != want {
			t.Fatalf("%s: expected %d after aborted post, got %d", code, want, got)
		}
	}
}

func TestInMemoryLedger_PostOverflowAborts(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	SeedBalance(l, "acct:a", 10)
	SeedBalance(l, "acct:b", math.MaxUint64-5)

	if _, err := l.Post(ctx, KindTransfer, "client-1", []Leg{
		{From: "acct:a", To: "acct:b", Amount: 6},
	}); err != ErrOverflow {
		t.Fatalf("expected overflow, got %v", err)
	}
	if got, _ := l.Balance(ctx, "acct:a"); got != 10 {
		t.Fatalf("balance changed after aborted post: %d", got)
	}
}

func TestInMemoryLedger_SameAccountLegNetsZero(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, "acct:a", 1_000)

	res, err := l.Post(ctx, KindTransfer, "client-1", []Leg{
		{From: "acct:a", To: "acct:a", Amount: 600},
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if res.FromBalance != 1_000 {
		t.Fatalf("expected from balance 1000, got %d", res.FromBalance)
	}
	if got, _ := l.Balance(ctx, "acct:a"); got != 1_000 {
		t.Fatalf("same-account leg changed balance: %d", got)
	}
	if supply, _ := l.TotalSupply(ctx); supply != 1_000 {
		t.Fatalf("same-account leg changed supply: %d", supply)
	}

	// The debit side is still enforced.
	if _, err := l.Post(ctx, KindTransfer, "client-2", []Leg{
		{From: "acct:a", To: "acct:a", Amount: 1_001},
	}); err != ErrInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
}

func TestInMemoryLedger_DuplicatePost(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, "acct:a", 5_000)

	legs := []Leg{{From: "acct:a", To: "acct:b", Amount: 500}}
	if _, err := l.Post(ctx, KindTransfer, "dup", legs); err != nil {
		t.Fatalf("initial post failed: %v", err)
	}
	if _, err := l.Post(ctx, KindTransfer, "dup", legs); err != ErrDuplicateTransaction {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if got, _ := l.Balance(ctx, "acct:b"); got != 500 {
		t.Fatalf("duplicate post applied twice: %d", got)
	}
}

func TestInMemoryLedger_MintAndBurn(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	res, err := l.Mint(ctx, "fund:treasury", KindGenesis, "genesis", 1_000_000)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if res.TotalSupply != 1_000_000 || res.Balance != 1_000_000 {
		t.Fatalf("unexpected mint result: %+v", res)
	}

	if _, err := l.Mint(ctx, "fund:treasury", KindGenesis, "genesis", 1_000_000); err != ErrDuplicateTransaction {
		t.Fatalf("expected duplicate genesis, got %v", err)
	}

	burned, err := l.Burn(ctx, "fund:treasury", "burn-1", 400_000)
	if err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	if burned.TotalSupply != 600_000 || burned.Balance != 600_000 {
		t.Fatalf("unexpected burn result: %+v", burned)
	}

	if _, err := l.Burn(ctx, "fund:treasury", "burn-2", 700_000); err != ErrInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
}

func TestInMemoryLedger_ConcurrentPosts(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, "acct:a", 100_000)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			txID := fmt.Sprintf("tx-%d", i)
			if _, err := l.Post(ctx, KindTransfer, txID, []Leg{{From: "acct:a", To: "acct:b", Amount: 500}}); err != nil {
				t.Errorf("post %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	impl := l.(*inMemoryLedger)
	total := impl.balances["acct:a"] + impl.balances["acct:b"]
	if total != 100_000 {
		t.Fatalf("ledger not balanced after concurrency, total=%d", total)
	}
}
