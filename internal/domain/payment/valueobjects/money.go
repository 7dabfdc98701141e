package valueobjects

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
)

// Money is an amount in the currency's minor unit (paise for INR).
type Money struct {
	amountMinor int64
	currency    currency.Unit
}

// NewMoney validates the ISO 4217 code.
func NewMoney(amountMinor int64, code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	return Money{amountMinor: amountMinor, currency: unit}, nil
}

// FromMajor converts a whole-unit amount such as 499 INR into minor units.
func FromMajor(amount int64, code string) (Money, error) {
	m, err := NewMoney(0, code)
	if err != nil {
		return Money{}, err
	}
	m.amountMinor = amount * m.minorPerMajor()
	return m, nil
}

func (m Money) minorPerMajor() int64 {
	scale, _ := currency.Standard.Rounding(m.currency)
	return int64(math.Pow10(scale))
}

func (m Money) AmountMinor() int64 {
	return m.amountMinor
}

// AmountMajor truncates to whole units.
func (m Money) AmountMajor() int64 {
	return m.amountMinor / m.minorPerMajor()
}

func (m Money) Currency() string {
	return m.currency.String()
}

func (m Money) IsPositive() bool {
	return m.amountMinor > 0
}

func (m Money) String() string {
	per := m.minorPerMajor()
	scale, _ := currency.Standard.Rounding(m.currency)
	return fmt.Sprintf("%s %.*f", m.currency, scale, float64(m.amountMinor)/float64(per))
}
