package models

import "github.com/shopspring/decimal"

// Money is a decimal amount serialized with exactly two fraction digits.
// Scanning, driver values and JSON decoding come from the embedded decimal.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON renders the amount as a quoted string such as "50.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// NullMoney is a nullable Money, used for optional prices.
type NullMoney struct {
	decimal.NullDecimal
}

// NewNullMoney returns a valid NullMoney holding d.
func NewNullMoney(d decimal.Decimal) NullMoney {
	return NullMoney{NullDecimal: decimal.NewNullDecimal(d)}
}

// MarshalJSON renders null or the amount with two fraction digits.
func (m NullMoney) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return NewMoney(m.Decimal).MarshalJSON()
}
