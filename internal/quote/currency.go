package quote

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Currency is one of the fixed display currencies supported by the quote
// builder.  GBP is the base currency for all stored prices; every other
// currency is reached through a resolved conversion rate.
type Currency string

const (
	CurrencyGBP Currency = "GBP"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
)

// ErrUnknownCurrency is returned when a currency code is outside the
// supported set.
var ErrUnknownCurrency = errors.New("unknown currency")

// ParseCurrency validates a currency code against the supported set.  Codes
// are matched case-insensitively.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencyGBP:
		return CurrencyGBP, nil
	case CurrencyUSD:
		return CurrencyUSD, nil
	case CurrencyEUR:
		return CurrencyEUR, nil
	case CurrencyAUD:
		return CurrencyAUD, nil
	case CurrencyCAD:
		return CurrencyCAD, nil
	}
	return "", ErrUnknownCurrency
}

// Symbol returns the display prefix used when rendering amounts.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyAUD:
		return "A$"
	case CurrencyCAD:
		return "C$"
	default:
		return "£"
	}
}

// Display renders a converted total the way the console shows it: the
// currency symbol followed by the amount truncated to whole units.  A zero
// total is rendered as "0.00" so an empty selection reads as a price, not a
// count.
func Display(amount float64, c Currency) string {
	if amount == 0 {
		return c.Symbol() + "0.00"
	}
	return fmt.Sprintf("%s%d", c.Symbol(), int64(math.Trunc(amount)))
}
