// Package quantity converts packaging hierarchies into unit counts.
//
// Stock is physically packaged as box -> carton -> strip -> unit. Operators
// only fill in the levels their supplier actually uses, so a level left at 0
// means "not applicable" and is skipped rather than zeroing the total.
package quantity

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeQuantity is returned by Validate when a level is below zero.
	ErrNegativeQuantity = errors.New("quantity must be non-negative")

	// ErrQuantityOverflow is returned by TotalUnits when the product of the
	// levels does not fit in an int64.
	ErrQuantityOverflow = errors.New("quantity total out of range")
)

// Breakdown describes how a stock entry is packaged.
type Breakdown struct {
	Boxes           int64 `json:"boxes"`
	CartonsPerBox   int64 `json:"cartonsPerBox"`
	StripsPerCarton int64 `json:"stripsPerCarton"`
	UnitsPerStrip   int64 `json:"unitsPerStrip"`
}

// Levels returns the packaging levels from outermost to innermost.
func (b Breakdown) Levels() []int64 {
	return []int64{b.Boxes, b.CartonsPerBox, b.StripsPerCarton, b.UnitsPerStrip}
}

// Validate reports the first negative level.
// ResolveTotalUnits does not call this; validation is left to callers.
func (b Breakdown) Validate() error {
	names := []string{"boxes", "cartonsPerBox", "stripsPerCarton", "unitsPerStrip"}
	for i, v := range b.Levels() {
		if v < 0 {
			return fmt.Errorf("%s=%d: %w", names[i], v, ErrNegativeQuantity)
		}
	}
	return nil
}

// TotalUnits returns the product of the strictly positive levels, or 0 when
// no level is positive. It fails with ErrQuantityOverflow instead of
// wrapping around.
func TotalUnits(b Breakdown) (int64, error) {
	var (
		total int64 = 1
		used  bool
	)
	for _, v := range b.Levels() {
		if v <= 0 {
			continue
		}
		if v > math.MaxInt64/total {
			return 0, fmt.Errorf("%+v: %w", b, ErrQuantityOverflow)
		}
		total *= v
		used = true
	}
	if !used {
		return 0, nil
	}
	return total, nil
}

// ResolveTotalUnits is TotalUnits for callers that cannot report an error.
// A product past the int64 range saturates at math.MaxInt64.
func ResolveTotalUnits(b Breakdown) int64 {
	total, err := TotalUnits(b)
	if err != nil {
		return math.MaxInt64
	}
	return total
}
