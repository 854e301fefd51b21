package shipping

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in minor units (cents) with an ISO currency code.
type Money struct {
	Cents    int64
	Currency string
}

// ParseMoney reads a decimal carrier amount such as "12.34".
func ParseMoney(amount, currency string) (Money, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return Money{}, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return Money{Cents: int64(RoundTo(v*100, 0)), Currency: strings.TrimSpace(currency)}, nil
}

// Decimal formats the amount with two fractional digits.
func (m Money) Decimal() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (m Money) String() string {
	if m.Currency == "" {
		return m.Decimal()
	}
	return m.Decimal() + " " + m.Currency
}
