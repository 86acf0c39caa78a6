// Package converters turns stored values into display strings and back.
// Money is stored in minor units (cents) everywhere.
package converters

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrInvalidAmount is returned for input that is not a decimal amount
var ErrInvalidAmount = errors.New("invalid amount")

// ParseMoney converts a decimal amount like "1,250.50" into minor units.
// An empty string is zero.
func ParseMoney(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	return int64(math.Round(f * 100)), nil
}

// FormatMoney renders minor units with the currency symbol and thousands separators
func FormatMoney(currency string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, currency, humanize.Comma(cents/100), cents%100)
}

// FormatMoneyShort renders whole units, e.g. "$1,250", for narrow lane headers
func FormatMoneyShort(currency string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + currency + humanize.Comma(int64(math.Round(float64(cents)/100)))
}

// FormatRate renders a closing rate percentage with one decimal
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}
