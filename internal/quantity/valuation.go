package quantity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned when a unit price is not a decimal number.
var ErrInvalidPrice = errors.New("invalid unit price")

// ParsePrice parses a unit price as text. Empty text is treated as "0",
// matching how imported rows default a missing price.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidPrice, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w %q: negative", ErrInvalidPrice, s)
	}
	return d, nil
}

// StockValue returns totalUnits * unitPrice.
func StockValue(totalUnits int64, unitPrice string) (decimal.Decimal, error) {
	price, err := ParsePrice(unitPrice)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(decimal.NewFromInt(totalUnits)), nil
}
