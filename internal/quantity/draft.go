package quantity

// draft.go holds the in-progress "add medicine" form state.
//
// A Draft belongs to one editing session. It is passed in and returned by
// value; none of the operations mutate their receiver, so there is no shared
// state to lock. Concurrent sessions each thread their own Draft.

// MedicineDraft is the free-form part of the form. Nothing here is validated
// until the draft is submitted.
type MedicineDraft struct {
	Name         string `json:"name"`
	Generic      string `json:"generic"`
	Strength     string `json:"strength"`
	DosageType   string `json:"dosageType"`
	Manufacturer string `json:"manufacturer"`
	UnitPrice    string `json:"unitPrice"`
	PackageSize  string `json:"packageSize"`
	BatchNumber  string `json:"batchNumber"`
	ExpiryDate   string `json:"expiryDate"`
}

// Draft is the full form state: descriptive fields, packaging and the
// derived unit count.
type Draft struct {
	Medicine   MedicineDraft `json:"medicine"`
	Quantity   Breakdown     `json:"quantity"`
	TotalUnits int64         `json:"totalUnits"`
}

// QuantityPatch carries the packaging levels a form step changed.
// Nil fields are left untouched.
type QuantityPatch struct {
	Boxes           *int64 `json:"boxes,omitempty"`
	CartonsPerBox   *int64 `json:"cartonsPerBox,omitempty"`
	StripsPerCarton *int64 `json:"stripsPerCarton,omitempty"`
	UnitsPerStrip   *int64 `json:"unitsPerStrip,omitempty"`
}

// MedicinePatch carries the descriptive fields a form step changed.
type MedicinePatch struct {
	Name         *string `json:"name,omitempty"`
	Generic      *string `json:"generic,omitempty"`
	Strength     *string `json:"strength,omitempty"`
	DosageType   *string `json:"dosageType,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	UnitPrice    *string `json:"unitPrice,omitempty"`
	PackageSize  *string `json:"packageSize,omitempty"`
	BatchNumber  *string `json:"batchNumber,omitempty"`
	ExpiryDate   *string `json:"expiryDate,omitempty"`
}

// UpdateQuantity merges p into the packaging and recomputes TotalUnits.
func (d Draft) UpdateQuantity(p QuantityPatch) Draft {
	setInt(&d.Quantity.Boxes, p.Boxes)
	setInt(&d.Quantity.CartonsPerBox, p.CartonsPerBox)
	setInt(&d.Quantity.StripsPerCarton, p.StripsPerCarton)
	setInt(&d.Quantity.UnitsPerStrip, p.UnitsPerStrip)
	d.TotalUnits = ResolveTotalUnits(d.Quantity)
	return d
}

// UpdateMedicine merges p into the descriptive fields.
// TotalUnits is not touched.
func (d Draft) UpdateMedicine(p MedicinePatch) Draft {
	m := &d.Medicine
	setString(&m.Name, p.Name)
	setString(&m.Generic, p.Generic)
	setString(&m.Strength, p.Strength)
	setString(&m.DosageType, p.DosageType)
	setString(&m.Manufacturer, p.Manufacturer)
	setString(&m.UnitPrice, p.UnitPrice)
	setString(&m.PackageSize, p.PackageSize)
	setString(&m.BatchNumber, p.BatchNumber)
	setString(&m.ExpiryDate, p.ExpiryDate)
	return d
}

// Clear returns the zero draft.
func (d Draft) Clear() Draft {
	return Draft{}
}

func setInt(dst *int64, v *int64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
