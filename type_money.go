package agendah

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// cashCurrency is the ledger currency. The go-money registry supplies its
// fraction digits and symbol; the rendering itself follows the journal's own
// convention: "R$ 1234,56", comma decimal separator, no thousand grouping.
const cashCurrency = money.BRL

// Amount is a non-negative monetary value of the cashbook.
// The zero value renders blank, never "R$ 0,00".
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from a float or decimal value. Negative values are
// clamped to zero: the cashbook models credit and debit as two separate
// non-negative columns.
func A[T float32 | float64 | int | int64 | decimal.Decimal](value T) Amount {
	var d decimal.Decimal
	switch v := any(value).(type) {
	case decimal.Decimal:
		d = v
	case float32:
		d = decimal.NewFromFloat32(v)
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	return Amount{value: d}
}

// ParseAmount parses user input in the pt-BR convention: "1.234,56" or
// "1234,56". A dot is a thousands separator, the comma the decimal mark.
// Blank input is the zero Amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("invalid amount %q: must not be negative", s)
	}
	return Amount{value: d}, nil
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a.value.IsZero() }

// IsPositive reports whether the amount is strictly positive.
func (a Amount) IsPositive() bool { return a.value.IsPositive() }

// Add returns the sum of two amounts.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }

// Decimal returns the exact value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func fraction() int32 {
	return int32(money.New(0, cashCurrency).Currency().Fraction)
}

// String renders the amount with the currency prefix, e.g. "R$ 1234,50".
// A zero amount renders as the empty string.
func (a Amount) String() string {
	if a.value.IsZero() {
		return ""
	}
	fixed := a.value.StringFixed(fraction())
	return "R$ " + strings.Replace(fixed, ".", ",", 1)
}

// Signed renders the amount prefixed with its cashbook direction,
// e.g. "+ R$ 10,00" for credits and "- R$ 10,00" for debits.
func (a Amount) Signed(credit bool) string {
	s := a.String()
	if s == "" {
		return ""
	}
	if credit {
		return "+ " + s
	}
	return "- " + s
}

// store returns the canonical persisted form: a plain decimal string with a
// dot separator, or "0" for the zero value.
func (a Amount) store() string { return a.value.String() }

func amountFromStore(s string) (Amount, error) {
	if s == "" {
		return Amount{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid stored amount %q: %w", s, err)
	}
	return A(d), nil
}

// MarshalJSON encodes the amount as a plain JSON number, the snapshot format
// inherited from the first version of the app.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.MarshalJSON()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = A(d)
	return nil
}
