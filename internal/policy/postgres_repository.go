package policy

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores the policy document as a single row plus an
// account_flags table.
type PostgresRepository struct {
	db       *pgxpool.Pool
	fallback Snapshot
}

// NewPostgresRepository builds a repository backed by PostgreSQL. The
// fallback snapshot is returned (and persisted on first Save) when no policy
// row exists yet.
func NewPostgresRepository(db *pgxpool.Pool, fallback Snapshot) *PostgresRepository {
	return &PostgresRepository{db: db, fallback: fallback}
}

// Load fetches the current policy row.
func (r *PostgresRepository) Load(ctx context.Context) (Snapshot, error) {
	const query = `SELECT trading_enabled, max_tx_amount, max_wallet_amount,
        transfer_tax_bps, wealth_share_bps, charity_share_bps, wealth_fund, charity_fund
        FROM policy WHERE id = 1`
	var snap Snapshot
	var maxTx, maxWallet int64
	var taxBps, wealthBps, charityBps int32
	err := r.db.QueryRow(ctx, query).Scan(&snap.TradingEnabled, &maxTx, &maxWallet,
		&taxBps, &wealthBps, &charityBps, &snap.WealthFund, &snap.CharityFund)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.fallback, nil
	}
	if err != nil {
		return Snapshot{}, err
	}
	snap.MaxTxAmount = uint64(maxTx)
	snap.MaxWalletAmount = uint64(maxWallet)
	snap.TransferTaxBps = uint16(taxBps)
	snap.WealthShareBps = uint16(wealthBps)
	snap.CharityShareBps = uint16(charityBps)
	return snap, nil
}

// Save upserts the single policy row.
func (r *PostgresRepository) Save(ctx context.Context, snap Snapshot) error {
	if snap.MaxTxAmount > math.MaxInt64 || snap.MaxWalletAmount > math.MaxInt64 {
		return errors.New("ceiling exceeds storable range")
	}
	_, err := r.db.Exec(ctx, `INSERT INTO policy (id, trading_enabled, max_tx_amount, max_wallet_amount,
        transfer_tax_bps, wealth_share_bps, charity_share_bps, wealth_fund, charity_fund)
        VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (id) DO UPDATE SET trading_enabled = $1, max_tx_amount = $2,
        max_wallet_amount = $3, transfer_tax_bps = $4, wealth_share_bps = $5,
        charity_share_bps = $6, wealth_fund = $7, charity_fund = $8`,
		snap.TradingEnabled, int64(snap.MaxTxAmount), int64(snap.MaxWalletAmount),
		int32(snap.TransferTaxBps), int32(snap.WealthShareBps), int32(snap.CharityShareBps),
		snap.WealthFund, snap.CharityFund)
	return err
}

// Flags fetches the exemption flags for an account code. Accounts without a
// row carry zero flags.
func (r *PostgresRepository) Flags(ctx context.Context, code string) (Flags, error) {
	const query = `SELECT fee_exempt, limit_exempt FROM account_flags WHERE account_code = $1`
	var flags Flags
	err := r.db.QueryRow(ctx, query, code).Scan(&flags.FeeExempt, &flags.LimitExempt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Flags{}, nil
	}
	if err != nil {
		return Flags{}, err
	}
	return flags, nil
}

// SaveFlags upserts the exemption flags for an account code.
func (r *PostgresRepository) SaveFlags(ctx context.Context, code string, flags Flags) error {
	_, err := r.db.Exec(ctx, `INSERT INTO account_flags (account_code, fee_exempt, limit_exempt)
        VALUES ($1, $2, $3)
        ON CONFLICT (account_code) DO UPDATE SET fee_exempt = $2, limit_exempt = $3`,
		code, flags.FeeExempt, flags.LimitExempt)
	return err
}
