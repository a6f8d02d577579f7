package ledger

import (
	"context"
	"math"
	"sync"
)

type inMemoryLedger struct {
	mu           sync.RWMutex
	balances     map[string]uint64
	supply       uint64
	transactions map[string]PostResult
	supplyTx     map[string]SupplyResult
}

// NewInMemory creates a concurrency-safe in-memory ledger useful for unit
// tests and development mode.
func NewInMemory() Ledger {
	return &inMemoryLedger{
		balances:     make(map[string]uint64),
		transactions: make(map[string]PostResult),
		supplyTx:     make(map[string]SupplyResult),
	}
}

func (l *inMemoryLedger) EnsureAccount(_ context.Context, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.balances[code]; !exists {
		l.balances[code] = 0
	}
	return nil
}

func (l *inMemoryLedger) Balance(_ context.Context, code string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[code], nil
}

func (l *inMemoryLedger) TotalSupply(_ context.Context) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supply, nil
}

// Post stages every leg against a scratch copy of the touched balances and
// commits only when all of them clear, so a failing leg leaves no trace.
func (l *inMemoryLedger) Post(_ context.Context, kind, clientTxID string, legs []Leg) (PostResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := kind + ":" + clientTxID
	if res, exists := l.transactions[key]; exists {
		return res, ErrDuplicateTransaction
	}

	staged := make(map[string]uint64, len(legs)*2)
	load := func(code string) uint64 {
		if v, ok := staged[code]; ok {
			return v
		}
		return l.balances[code]
	}

	for _, leg := range legs {
		fromBal := load(leg.From)
		if fromBal < leg.Amount {
			return PostResult{}, ErrInsufficientFunds
		}
		// A same-account leg nets to zero; staging both sides would let the
		// credit overwrite the debit and conjure value.
		if leg.From == leg.To {
			continue
		}
		toBal := load(leg.To)
		if toBal > math.MaxUint64-leg.Amount {
			return PostResult{}, ErrOverflow
		}
		staged[leg.From] = fromBal - leg.Amount
		staged[leg.To] = toBal + leg.Amount
	}

	for code, balance := range staged {
		l.balances[code] = balance
	}

	res := PostResult{TransactionID: key}
	if len(legs) > 0 {
		res.FromBalance = l.balances[legs[0].From]
	}
	l.transactions[key] = res
	return res, nil
}

func (l *inMemoryLedger) Mint(_ context.Context, code, kind, clientTxID string, amount uint64) (SupplyResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := kind + ":" + clientTxID
	if res, exists := l.supplyTx[key]; exists {
		return res, ErrDuplicateTransaction
	}

	balance := l.balances[code]
	if l.supply > math.MaxUint64-amount || balance > math.MaxUint64-amount {
		return SupplyResult{}, ErrOverflow
	}

	balance += amount
	l.balances[code] = balance
	l.supply += amount

	res := SupplyResult{TransactionID: key, Balance: balance, TotalSupply: l.supply}
	l.supplyTx[key] = res
	return res, nil
}

func (l *inMemoryLedger) Burn(_ context.Context, code, clientTxID string, amount uint64) (SupplyResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := KindBurn + ":" + clientTxID
	if res, exists := l.supplyTx[key]; exists {
		return res, ErrDuplicateTransaction
	}

	balance := l.balances[code]
	if balance < amount {
		return SupplyResult{}, ErrInsufficientFunds
	}

	balance -= amount
	l.balances[code] = balance
	l.supply -= amount

	res := SupplyResult{TransactionID: key, Balance: balance, TotalSupply: l.supply}
	l.supplyTx[key] = res
	return res, nil
}
