package account

import (
	"context"
	"strings"
	"testing"

	"github.com/harambee-token/harambee/internal/ledger"
)

func TestCreateAndBalance(t *testing.T) {
	led := ledger.NewInMemory()
	svc := NewService(NewMemoryRepository(), led)
	ctx := context.Background()

	acct, err := svc.Create(ctx, CreateInput{HolderID: "holder-1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(acct.Code, "acct:") {
		t.Fatalf("unexpected account code %q", acct.Code)
	}
	if acct.Status != statusActive {
		t.Fatalf("unexpected status %q", acct.Status)
	}

	ledger.SeedBalance(led, acct.Code, 2_500)

	balance, err := svc.Balance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance.Amount != 2_500 {
		t.Fatalf("expected 2500, got %d", balance.Amount)
	}
}

func TestGetUnknownAccount(t *testing.T) {
	svc := NewService(NewMemoryRepository(), ledger.NewInMemory())

	if _, err := svc.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
