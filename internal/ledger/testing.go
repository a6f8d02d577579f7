package ledger

// SeedBalance is a test helper that seeds the balance for an account when
// using the in-memory ledger. The total supply grows by the same amount so
// conservation checks stay meaningful.
func SeedBalance(l Ledger, code string, amount uint64) {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		old := mem.balances[code]
		if amount >= old {
			mem.supply += amount - old
		} else {
			mem.supply -= old - amount
		}
		mem.balances[code] = amount
	}
}
