package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IssuedSupplyAccountCode is the equity account that mirrors every mint and
// burn, keeping postings balanced. Its negated balance equals the total
// supply in circulation.
const IssuedSupplyAccountCode = "supply:issued"

// PostgresLedger persists ledger entries in PostgreSQL ensuring double-entry
// balance. Amounts are stored as signed BIGINT, so postings above
// math.MaxInt64 are rejected with ErrOverflow.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// EnsureAccount guarantees an account row exists for the provided code.
func (l *PostgresLedger) EnsureAccount(ctx context.Context, code string) error {
	_, err := l.db.Exec(ctx, `INSERT INTO accounts (id, code) VALUES ($1, $2)
        ON CONFLICT (code) DO NOTHING`, uuid.New(), code)
	return err
}

// Balance returns the summed balance for the specified account code.
// Accounts without a row hold a zero balance.
func (l *PostgresLedger) Balance(ctx context.Context, code string) (uint64, error) {
	const query = `
        SELECT COALESCE(SUM(e.amount), 0)
        FROM accounts a
        LEFT JOIN entries e ON e.account_id = a.id
        WHERE a.code = $1`
	var balance int64
	if err := l.db.QueryRow(ctx, query, code).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return uint64(balance), nil
}

// TotalSupply derives the circulating supply from the issued-supply equity
// account, which is stored as a negative mirror of every mint and burn.
func (l *PostgresLedger) TotalSupply(ctx context.Context) (uint64, error) {
	const query = `
        SELECT COALESCE(SUM(e.amount), 0)
        FROM accounts a
        LEFT JOIN entries e ON e.account_id = a.id
        WHERE a.code = $1`
	var issued int64
	if err := l.db.QueryRow(ctx, query, IssuedSupplyAccountCode).Scan(&issued); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return uint64(-issued), nil
}

// Post records all legs inside one database transaction. Row locks are taken
// on every touched account so the staged balance checks hold until commit.
func (l *PostgresLedger) Post(ctx context.Context, kind, clientTxID string, legs []Leg) (PostResult, error) {
	for _, leg := range legs {
		if leg.Amount > math.MaxInt64 {
			return PostResult{}, ErrOverflow
		}
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return PostResult{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	const existingTxQuery = `SELECT id FROM transactions WHERE client_tx_id = $1 AND kind = $2`
	var existingTxID uuid.UUID
	if err := tx.QueryRow(ctx, existingTxQuery, clientTxID, kind).Scan(&existingTxID); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return PostResult{}, err
		}
	} else {
		return PostResult{TransactionID: existingTxID.String()}, ErrDuplicateTransaction
	}

	accountIDs := make(map[string]uuid.UUID, len(legs)*2)
	staged := make(map[string]int64, len(legs)*2)
	load := func(code string) (int64, error) {
		if bal, ok := staged[code]; ok {
			return bal, nil
		}
		id, err := lockAccount(ctx, tx, code)
		if err != nil {
			return 0, err
		}
		accountIDs[code] = id
		bal, err := balanceForAccount(ctx, tx, id)
		if err != nil {
			return 0, err
		}
		staged[code] = bal
		return bal, nil
	}

	for _, leg := range legs {
		fromBal, err := load(leg.From)
		if err != nil {
			return PostResult{}, err
		}
		amount := int64(leg.Amount)
		if fromBal < amount {
			return PostResult{}, ErrInsufficientFunds
		}
		// A same-account leg nets to zero; staging both sides would let the
		// credit overwrite the debit.
		if leg.From == leg.To {
			continue
		}
		toBal, err := load(leg.To)
		if err != nil {
			return PostResult{}, err
		}
		if toBal > math.MaxInt64-amount {
			return PostResult{}, ErrOverflow
		}
		staged[leg.From] = fromBal - amount
		staged[leg.To] = toBal + amount
	}

	txID := uuid.New()
	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, client_tx_id, kind) VALUES ($1, $2, $3)`, txID, clientTxID, kind); err != nil {
		return PostResult{}, err
	}

	for _, leg := range legs {
		amount := int64(leg.Amount)
		if _, err := tx.Exec(ctx, `INSERT INTO entries (id, transaction_id, account_id, amount) VALUES ($1, $2, $3, $4)`, uuid.New(), txID, accountIDs[leg.From], -amount); err != nil {
			return PostResult{}, err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO entries (id, transaction_id, account_id, amount) VALUES ($1, $2, $3, $4)`, uuid.New(), txID, accountIDs[leg.To], amount); err != nil {
			return PostResult{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return PostResult{}, err
	}

	res := PostResult{TransactionID: txID.String()}
	if len(legs) > 0 {
		res.FromBalance = uint64(staged[legs[0].From])
	}
	return res, nil
}

// Mint credits an account and debits the issued-supply equity account.
func (l *PostgresLedger) Mint(ctx context.Context, code, kind, clientTxID string, amount uint64) (SupplyResult, error) {
	return l.supplyPosting(ctx, code, kind, clientTxID, amount, false)
}

// Burn debits an account and credits the issued-supply equity account.
func (l *PostgresLedger) Burn(ctx context.Context, code, clientTxID string, amount uint64) (SupplyResult, error) {
	return l.supplyPosting(ctx, code, KindBurn, clientTxID, amount, true)
}

func (l *PostgresLedger) supplyPosting(ctx context.Context, code, kind, clientTxID string, amount uint64, burn bool) (SupplyResult, error) {
	if amount > math.MaxInt64 {
		return SupplyResult{}, ErrOverflow
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return SupplyResult{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	const existingQuery = `SELECT id FROM transactions WHERE client_tx_id = $1 AND kind = $2`
	var existingTxID uuid.UUID
	if err := tx.QueryRow(ctx, existingQuery, clientTxID, kind).Scan(&existingTxID); err == nil {
		return SupplyResult{TransactionID: existingTxID.String()}, ErrDuplicateTransaction
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return SupplyResult{}, err
	}

	accountID, err := lockAccount(ctx, tx, code)
	if err != nil {
		return SupplyResult{}, err
	}
	supplyID, err := lockAccount(ctx, tx, IssuedSupplyAccountCode)
	if err != nil {
		return SupplyResult{}, err
	}

	balance, err := balanceForAccount(ctx, tx, accountID)
	if err != nil {
		return SupplyResult{}, err
	}

	delta := int64(amount)
	if burn {
		if balance < delta {
			return SupplyResult{}, ErrInsufficientFunds
		}
		delta = -delta
	} else if balance > math.MaxInt64-delta {
		return SupplyResult{}, ErrOverflow
	}

	txID := uuid.New()
	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, client_tx_id, kind) VALUES ($1, $2, $3)`, txID, clientTxID, kind); err != nil {
		return SupplyResult{}, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO entries (id, transaction_id, account_id, amount) VALUES ($1, $2, $3, $4)`, uuid.New(), txID, accountID, delta); err != nil {
		return SupplyResult{}, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO entries (id, transaction_id, account_id, amount) VALUES ($1, $2, $3, $4)`, uuid.New(), txID, supplyID, -delta); err != nil {
		return SupplyResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return SupplyResult{}, err
	}

	updated, err := l.Balance(ctx, code)
	if err != nil {
		return SupplyResult{}, err
	}
	supply, err := l.TotalSupply(ctx)
	if err != nil {
		return SupplyResult{}, err
	}
	return SupplyResult{TransactionID: txID.String(), Balance: updated, TotalSupply: supply}, nil
}

// lockAccount takes a row lock on the account, creating the row first if it
// does not exist yet (accounts exist implicitly with a zero balance).
func lockAccount(ctx context.Context, tx pgx.Tx, code string) (uuid.UUID, error) {
	if _, err := tx.Exec(ctx, `INSERT INTO accounts (id, code) VALUES ($1, $2)
        ON CONFLICT (code) DO NOTHING`, uuid.New(), code); err != nil {
		return uuid.Nil, err
	}
	const query = `SELECT id FROM accounts WHERE code = $1 FOR UPDATE`
	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, code).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("lock account %s: %w", code, err)
	}
	return id, nil
}

func balanceForAccount(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (int64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM entries WHERE account_id = $1`
	var balance int64
	if err := tx.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}
