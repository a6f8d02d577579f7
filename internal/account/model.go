package account

import "time"

// Account maps a holder to a ledger account code.
type Account struct {
	ID        string
	HolderID  string
	Code      string
	Status    string
	CreatedAt time.Time
}

// Balance encapsulates the committed funds for an account.
type Balance struct {
	AccountID string
	Amount    uint64
	AsOf      time.Time
}
