package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64 { return &v }
func str(v string) *string { return &v }

func TestDraft_UpdateQuantity(t *testing.T) {
	var d Draft

	d = d.UpdateQuantity(QuantityPatch{Boxes: i64(2)})
	assert.Equal(t, int64(2), d.TotalUnits)

	d = d.UpdateQuantity(QuantityPatch{UnitsPerStrip: i64(10)})
	assert.Equal(t, Breakdown{Boxes: 2, UnitsPerStrip: 10}, d.Quantity)
	assert.Equal(t, int64(20), d.TotalUnits)

	d = d.UpdateQuantity(QuantityPatch{Boxes: i64(0)})
	assert.Equal(t, int64(10), d.TotalUnits)
}

func TestDraft_UpdateQuantityDoesNotMutateReceiver(t *testing.T) {
	orig := Draft{Quantity: Breakdown{Boxes: 1}, TotalUnits: 1}

	next := orig.UpdateQuantity(QuantityPatch{Boxes: i64(5)})

	assert.Equal(t, int64(1), orig.Quantity.Boxes)
	assert.Equal(t, int64(1), orig.TotalUnits)
	assert.Equal(t, int64(5), next.TotalUnits)
}

func TestDraft_UpdateQuantityNoValidation(t *testing.T) {
	d := Draft{}.UpdateQuantity(QuantityPatch{Boxes: i64(-4), UnitsPerStrip: i64(3)})

	assert.Equal(t, int64(-4), d.Quantity.Boxes)
	assert.Equal(t, int64(3), d.TotalUnits)
}

func TestDraft_UpdateMedicine(t *testing.T) {
	d := Draft{Quantity: Breakdown{Boxes: 3}, TotalUnits: 3}

	d = d.UpdateMedicine(MedicinePatch{Name: str("Napa"), Strength: str("500mg")})
	d = d.UpdateMedicine(MedicinePatch{Manufacturer: str("Square Pharmaceuticals")})

	assert.Equal(t, "Napa", d.Medicine.Name)
	assert.Equal(t, "500mg", d.Medicine.Strength)
	assert.Equal(t, "Square Pharmaceuticals", d.Medicine.Manufacturer)
	assert.Equal(t, int64(3), d.TotalUnits, "medicine patch must not touch quantity")

	d = d.UpdateMedicine(MedicinePatch{Name: str("")})
	assert.Empty(t, d.Medicine.Name, "explicit empty value overwrites")
	assert.Equal(t, "500mg", d.Medicine.Strength)
}

func TestDraft_Clear(t *testing.T) {
	d := Draft{}.
		UpdateMedicine(MedicinePatch{Name: str("Napa")}).
		UpdateQuantity(QuantityPatch{Boxes: i64(2)})

	cleared := d.Clear()

	assert.Equal(t, Draft{}, cleared)
	assert.Equal(t, "Napa", d.Medicine.Name)
}
