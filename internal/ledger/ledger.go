package ledger

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientFunds occurs when the source account lacks available balance
	// to cover a requested posting.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOverflow occurs when a credit would push a balance or the total supply
	// past the representable range.
	ErrOverflow = errors.New("balance overflow")

	// ErrDuplicateTransaction indicates the provided client transaction identifier
	// already exists and therefore the operation should be treated as idempotent.
	ErrDuplicateTransaction = errors.New("duplicate transaction")
)

const (
	// KindTransfer marks a taxed peer transfer posting.
	KindTransfer = "transfer"
	// KindGenesis marks the one-time initial supply mint.
	KindGenesis = "genesis"
	// KindMint marks a supply-increasing issuance posting.
	KindMint = "mint"
	// KindBurn marks a supply-decreasing issuance posting.
	KindBurn = "burn"
)

// Leg is one balance movement inside an atomic posting. Amount flows from
// the From account to the To account.
type Leg struct {
	From   string
	To     string
	Amount uint64
}

// PostResult captures the outcome of a multi-leg posting.
type PostResult struct {
	TransactionID string
	FromBalance   uint64
}

// SupplyResult captures the outcome of a mint or burn.
type SupplyResult struct {
	TransactionID string
	Balance       uint64
	TotalSupply   uint64
}

// Ledger defines the contract implemented by ledger backends (e.g. Postgres).
// Post applies every leg or none. Mint and Burn are the only operations that
// change the total supply; they carry no policy semantics of their own.
// Accounts exist implicitly with a zero balance; EnsureAccount only
// materializes a record ahead of time.
type Ledger interface {
	EnsureAccount(ctx context.Context, code string) error
	Balance(ctx context.Context, code string) (uint64, error)
	TotalSupply(ctx context.Context) (uint64, error)
	Post(ctx context.Context, kind, clientTxID string, legs []Leg) (PostResult, error)
	Mint(ctx context.Context, code, kind, clientTxID string, amount uint64) (SupplyResult, error)
	Burn(ctx context.Context, code, clientTxID string, amount uint64) (SupplyResult, error)
}
