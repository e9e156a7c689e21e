package reit

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the unit of account of the market.
const Currency = "REIT"

func init() {
	// REIT is not an ISO currency: register it so that go-money can format it.
	// Three fraction digits, the precision balances were always displayed with.
	money.AddCurrency(Currency, Currency, "1 $", ".", ",", 3)
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value.
//
// Its value is kept with full precision, rounding only happens when it is
// formatted.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates Money in the given currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// R creates Money in the market currency.
func R[T float64 | int | int64 | decimal.Decimal](value T) Money { return M(value, Currency) }

// ParseMoney parses a decimal amount, as typed by a user, in the given currency.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return M(d, currency), nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, rounded to
// the currency fraction.
func (m Money) String() string {
	c := m.currency()
	return format(c.Formatter(), m.value)
}

// format lays out d like f.Format does for minor units, without the int64
// limit on the amount.
func format(f *money.Formatter, d decimal.Decimal) string {
	d = d.Round(int32(f.Fraction))
	sa := d.Abs().Shift(int32(f.Fraction)).StringFixed(0)
	if len(sa) <= f.Fraction {
		sa = strings.Repeat("0", f.Fraction-len(sa)+1) + sa
	}
	if f.Thousand != "" {
		for i := len(sa) - f.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + f.Thousand + sa[i:]
		}
	}
	if f.Fraction > 0 {
		sa = sa[:len(sa)-f.Fraction] + f.Decimal + sa[len(sa)-f.Fraction:]
	}
	sa = strings.Replace(f.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)
	if d.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

// Simple wrapper around decimal.Decimal

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Mul(n int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(n)), cur: m.cur}
}

// shift multiplies by 10^exp. It is exact, unlike a division.
func (m Money) shift(exp int32) Money { return Money{value: m.value.Shift(exp), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// scale multiplies by an exact decimal ratio.
func (m Money) scale(r decimal.Decimal) Money { return Money{value: m.value.Mul(r), cur: m.cur} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// MarshalJSON writes the amount with all its digits, and the currency.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.value)
	w.Optional("currency", m.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the object written by MarshalJSON.
func (m *Money) UnmarshalJSON(data []byte) error {
	var a amountCmd
	if err := jsonUnmarshal(data, &a); err != nil {
		return err
	}
	*m = a.Money()
	return nil
}
