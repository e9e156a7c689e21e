package reit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Supply is the number of shares every property is split into.
const Supply int64 = 100_000

// supplyDigits is log10(Supply): dividing by Supply is an exact decimal shift.
const supplyDigits = 5

var (
	floorRatio   = decimal.RequireFromString("0.98")
	ceilingRatio = decimal.RequireFromString("1.02")
)

// Property is a listed asset whose shares are priced by a linear bonding
// curve: the fewer shares remain, the higher the price of the next one.
//
// The price of a share at a supply level r (remaining shares) is
//
//	floor + (ceiling - floor) * (Supply - r) / Supply
//
// where floor is 98% and ceiling 102% of the value per share.
type Property struct {
	name      string
	value     Money
	remaining int64
	floor     Money
	ceiling   Money
}

// NewProperty lists a property with all its shares available.
func NewProperty(name string, value Money) (*Property, error) {
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: property value %s must be positive", ErrInvalidAmount, value)
	}
	perShare := value.shift(-supplyDigits)
	return &Property{
		name:      name,
		value:     value,
		remaining: Supply,
		floor:     perShare.scale(floorRatio),
		ceiling:   perShare.scale(ceilingRatio),
	}, nil
}

func (p *Property) Name() string     { return p.name }
func (p *Property) Value() Money     { return p.value }
func (p *Property) Remaining() int64 { return p.remaining }
func (p *Property) Sold() int64      { return Supply - p.remaining }
func (p *Property) Floor() Money     { return p.floor }
func (p *Property) Ceiling() Money   { return p.ceiling }

// Price returns the spot price at the current supply level.
func (p *Property) Price() Money { return p.PriceAt(p.remaining) }

// PriceAt returns the price of a share when remaining shares are left.
//
// It panics if remaining is outside [0, Supply].
func (p *Property) PriceAt(remaining int64) Money {
	if remaining < 0 || remaining > Supply {
		panic(fmt.Sprintf("remaining shares %d out of [0, %d]", remaining, Supply))
	}
	return p.levels(remaining, 1)
}

// CostOfBuying returns the total price of n shares bought when remaining are
// left.
//
// Each share is priced at the level it leaves behind, so the sum covers the
// levels remaining-n to remaining-1.
func (p *Property) CostOfBuying(remaining, n int64) (Money, error) {
	if n <= 0 {
		return Money{}, fmt.Errorf("%w: got %d", ErrInvalidShareCount, n)
	}
	if remaining > Supply || remaining < 0 {
		return Money{}, fmt.Errorf("remaining shares %d out of [0, %d]", remaining, Supply)
	}
	if n > remaining {
		return Money{}, fmt.Errorf("%w: %d requested, %d remaining", ErrInsufficientShares, n, remaining)
	}
	return p.levels(remaining-n, n), nil
}

// ProceedsOfSelling returns the total price of n shares sold back when
// remaining are left.
//
// The sum covers the levels remaining to remaining+n-1: the exact interval a
// buy of n shares at remaining+n covers, so a round trip is neutral.
func (p *Property) ProceedsOfSelling(remaining, n int64) (Money, error) {
	if n <= 0 {
		return Money{}, fmt.Errorf("%w: got %d", ErrInvalidShareCount, n)
	}
	if remaining < 0 || remaining > Supply {
		return Money{}, fmt.Errorf("remaining shares %d out of [0, %d]", remaining, Supply)
	}
	if remaining+n > Supply {
		return Money{}, fmt.Errorf("%w: %d returned to %d remaining", ErrSupplyExceeded, n, remaining)
	}
	return p.levels(remaining, n), nil
}

// levels sums the price over the n supply levels lo, lo+1, ..., lo+n-1.
//
//	n*floor + spread * sum(Supply-r) / Supply
//	sum(Supply-r) = n*(Supply-lo) - n*(n-1)/2
func (p *Property) levels(lo, n int64) Money {
	sold := n*(Supply-lo) - n*(n-1)/2
	spread := p.ceiling.Sub(p.floor)
	return p.floor.Mul(n).Add(spread.Mul(sold).shift(-supplyDigits))
}
