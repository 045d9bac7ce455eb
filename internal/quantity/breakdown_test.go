package quantity

import (
	"errors"
	"math"
	"testing"
)

func TestResolveTotalUnits(t *testing.T) {
	tests := []struct {
		name string
		in   Breakdown
		want int64
	}{
		{"all zero", Breakdown{}, 0},
		{"boxes and units only", Breakdown{Boxes: 2, UnitsPerStrip: 10}, 20},
		{"full hierarchy", Breakdown{Boxes: 2, CartonsPerBox: 3, StripsPerCarton: 4, UnitsPerStrip: 10}, 240},
		{"single level", Breakdown{StripsPerCarton: 7}, 7},
		{"ones", Breakdown{Boxes: 1, CartonsPerBox: 1, StripsPerCarton: 1, UnitsPerStrip: 1}, 1},
		{"negative skipped", Breakdown{Boxes: -3, UnitsPerStrip: 5}, 5},
		{"only negative", Breakdown{Boxes: -3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTotalUnits(tt.in); got != tt.want {
				t.Errorf("ResolveTotalUnits(%+v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// Zero iff every level is zero, otherwise the product of the positive levels.
func TestResolveTotalUnits_Properties(t *testing.T) {
	for a := int64(0); a <= 3; a++ {
		for b := int64(0); b <= 3; b++ {
			for c := int64(0); c <= 3; c++ {
				for d := int64(0); d <= 3; d++ {
					in := Breakdown{a, b, c, d}
					got := ResolveTotalUnits(in)

					allZero := a == 0 && b == 0 && c == 0 && d == 0
					if (got == 0) != allZero {
						t.Fatalf("ResolveTotalUnits(%+v) = %d, zero-iff-all-zero violated", in, got)
					}

					want := int64(1)
					for _, v := range in.Levels() {
						if v > 0 {
							want *= v
						}
					}
					if allZero {
						want = 0
					}
					if got != want {
						t.Fatalf("ResolveTotalUnits(%+v) = %d, want %d", in, got, want)
					}
				}
			}
		}
	}
}

func TestBreakdownValidate(t *testing.T) {
	if err := (Breakdown{Boxes: 1}).Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	err := Breakdown{Boxes: 1, StripsPerCarton: -2}.Validate()
	if !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("Validate() error = %v, want ErrNegativeQuantity", err)
	}
	if got := err.Error(); got != "stripsPerCarton=-2: quantity must be non-negative" {
		t.Errorf("Validate() message = %q", got)
	}
}

func TestTotalUnits_Overflow(t *testing.T) {
	tests := []struct {
		name string
		in   Breakdown
	}{
		{"wraps to zero", Breakdown{Boxes: 1 << 32, UnitsPerStrip: 1 << 32}},
		{"wraps negative", Breakdown{Boxes: 1 << 62, UnitsPerStrip: 3}},
		{"four levels", Breakdown{Boxes: 1 << 16, CartonsPerBox: 1 << 16, StripsPerCarton: 1 << 16, UnitsPerStrip: 1 << 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalUnits(tt.in)
			if !errors.Is(err, ErrQuantityOverflow) {
				t.Fatalf("TotalUnits(%+v) = %d, %v; want ErrQuantityOverflow", tt.in, got, err)
			}
			if r := ResolveTotalUnits(tt.in); r != math.MaxInt64 {
				t.Errorf("ResolveTotalUnits(%+v) = %d, want MaxInt64", tt.in, r)
			}
		})
	}
}

func TestTotalUnits_AtLimit(t *testing.T) {
	got, err := TotalUnits(Breakdown{Boxes: math.MaxInt64, UnitsPerStrip: 1})
	if err != nil {
		t.Fatalf("TotalUnits() error = %v", err)
	}
	if got != math.MaxInt64 {
		t.Errorf("TotalUnits() = %d, want MaxInt64", got)
	}

	got, err = TotalUnits(Breakdown{Boxes: 1 << 31, CartonsPerBox: 1 << 31})
	if err != nil || got != 1<<62 {
		t.Errorf("TotalUnits() = %d, %v; want 1<<62", got, err)
	}
}
