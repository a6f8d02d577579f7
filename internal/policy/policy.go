package policy

import (
	"context"
	"errors"
)

const (
	// BpsDenominator is the basis-point scale: 10000 bps == 100%.
	BpsDenominator = 10_000
	// MaxTransferTaxBps caps the transfer tax at 5%.
	MaxTransferTaxBps = 500
)

var (
	// ErrTaxTooHigh indicates a requested transfer tax above MaxTransferTaxBps.
	ErrTaxTooHigh = errors.New("transfer tax above maximum")

	// ErrBadShareSplit indicates wealth and charity shares that do not sum to
	// the full basis-point scale.
	ErrBadShareSplit = errors.New("fund shares must sum to 10000 bps")

	// ErrEmptyFund indicates a fund account code was left blank.
	ErrEmptyFund = errors.New("fund account code required")
)

// Snapshot is the immutable policy view a transfer reads once at the start
// of its pipeline. Zero ceilings mean unlimited.
type Snapshot struct {
	TradingEnabled  bool
	MaxTxAmount     uint64
	MaxWalletAmount uint64
	TransferTaxBps  uint16
	WealthShareBps  uint16
	CharityShareBps uint16
	WealthFund      string
	CharityFund     string
}

// Flags are the per-account policy exemptions.
type Flags struct {
	FeeExempt   bool
	LimitExempt bool
}

// Provider is the read-only view the transfer core consumes.
type Provider interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	AccountFlags(ctx context.Context, code string) (Flags, error)
}

// Repository persists the policy document and per-account flags.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Flags(ctx context.Context, code string) (Flags, error)
	SaveFlags(ctx context.Context, code string, flags Flags) error
}

// Validate checks the internal consistency of a snapshot. Setters run it
// before persisting so an invalid policy never becomes visible.
func Validate(snap Snapshot) error {
	if snap.TransferTaxBps > MaxTransferTaxBps {
		return ErrTaxTooHigh
	}
	if int(snap.WealthShareBps)+int(snap.CharityShareBps) != BpsDenominator {
		return ErrBadShareSplit
	}
	if snap.WealthFund == "" || snap.CharityFund == "" {
		return ErrEmptyFund
	}
	return nil
}
