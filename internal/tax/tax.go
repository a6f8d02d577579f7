package tax

import (
	"math/bits"

	"github.com/harambee-token/harambee/internal/policy"
)

// Split is the outcome of applying the transfer tax to a gross amount.
// Principal is what the recipient receives; the cuts go to the wealth and
// charity funds. Principal + WealthCut + CharityCut always equals the gross
// amount.
type Split struct {
	Principal  uint64
	WealthCut  uint64
	CharityCut uint64
}

// Tax returns the total amount redirected away from the recipient.
func (s Split) Tax() uint64 {
	return s.WealthCut + s.CharityCut
}

// Compute derives the tax split for a gross transfer amount under the given
// policy snapshot. A fee-exempt party on either side, or a zero tax rate,
// short-circuits to a tax-free split. The charity fund absorbs the division
// remainder so WealthCut+CharityCut equals the computed tax exactly.
func Compute(amount uint64, snap policy.Snapshot, from, to policy.Flags) Split {
	if snap.TransferTaxBps == 0 || from.FeeExempt || to.FeeExempt {
		return Split{Principal: amount}
	}

	taxed := mulDivBps(amount, snap.TransferTaxBps)
	wealth := mulDivBps(taxed, snap.WealthShareBps)

	return Split{
		Principal:  amount - taxed,
		WealthCut:  wealth,
		CharityCut: taxed - wealth,
	}
}

// mulDivBps computes floor(v * bps / 10000) through a 128-bit intermediate
// so the product cannot overflow before narrowing.
func mulDivBps(v uint64, bps uint16) uint64 {
	hi, lo := bits.Mul64(v, uint64(bps))
	q, _ := bits.Div64(hi, lo, policy.BpsDenominator)
	return q
}
