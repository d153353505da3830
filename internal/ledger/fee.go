package ledger

import (
	"fmt"
	"math/bits"
)

// feeDenominator is the fixed-point scale for donation fee rates: a rate
// of 500 basis points is 5%.
const feeDenominator = 10_000

// FeeSchedule computes the platform cut of a gross donation. The rate is
// fixed at construction and not owner-mutable.
type FeeSchedule struct {
	rateBps uint64
}

// NewFeeSchedule builds a schedule from a rate in basis points.
func NewFeeSchedule(rateBps uint64) (FeeSchedule, error) {
	if rateBps > feeDenominator {
		return FeeSchedule{}, fmt.Errorf("fee rate %d exceeds %d basis points", rateBps, feeDenominator)
	}
	return FeeSchedule{rateBps: rateBps}, nil
}

// RateBps returns the configured rate in basis points.
func (f FeeSchedule) RateBps() uint64 { return f.rateBps }

// Fee returns floor(gross * rate). The 128-bit intermediate product keeps
// the multiply exact for any uint64 gross amount; the quotient fits in 64
// bits because the rate never exceeds the denominator.
func (f FeeSchedule) Fee(gross uint64) uint64 {
	hi, lo := bits.Mul64(gross, f.rateBps)
	q, _ := bits.Div64(hi, lo, feeDenominator)
	return q
}

// Split returns the fee and net portions of a gross amount such that
// fee + net == gross. The underflow guard is unreachable while the rate
// stays at or below 100%, but it is verified rather than assumed.
func (f FeeSchedule) Split(gross uint64) (fee, net uint64, err error) {
	fee = f.Fee(gross)
	if fee > gross {
		return 0, 0, fmt.Errorf("fee %d exceeds gross amount %d", fee, gross)
	}
	return fee, gross - fee, nil
}

func addChecked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, fmt.Errorf("amount overflow adding %d and %d", a, b)
	}
	return sum, nil
}
