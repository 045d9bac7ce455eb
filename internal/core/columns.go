package core

// columns.go maps loosely named CSV headers onto the canonical medicine schema.
//
// The alias table is fixed configuration. Matching is exact and
// case-sensitive: "UnitPrice" is accepted, "unitprice" is not. For each field
// the aliases are tried in order and the first non-empty cell wins.

import "strings"

// Canonical field names.
const (
	FieldName            = "name"
	FieldDosageType      = "dosageType"
	FieldGeneric         = "generic"
	FieldStrength        = "strength"
	FieldManufacturer    = "manufacturer"
	FieldUnitPrice       = "unitPrice"
	FieldPackageSize     = "packageSize"
	FieldBoxes           = "boxes"
	FieldCartonsPerBox   = "cartonsPerBox"
	FieldStripsPerCarton = "stripsPerCarton"
	FieldUnitsPerStrip   = "unitsPerStrip"
)

// ColumnSpec binds a canonical field to the source headers it may come from.
type ColumnSpec struct {
	Field   string
	Aliases []string // Priority order, matched exactly
	Default string   // Used when every alias is missing or blank
}

// MedicineColumns is the alias table for medicine imports.
var MedicineColumns = []ColumnSpec{
	{Field: FieldName, Aliases: []string{"name"}},
	{Field: FieldDosageType, Aliases: []string{"dosageType", "dosage_type"}},
	{Field: FieldGeneric, Aliases: []string{"generic", "generic_name"}},
	{Field: FieldStrength, Aliases: []string{"strength"}},
	{Field: FieldManufacturer, Aliases: []string{"manufacturer", "company"}},
	{Field: FieldUnitPrice, Aliases: []string{"UnitPrice", "unit_price"}, Default: "0"},
	{Field: FieldPackageSize, Aliases: []string{"PackageSize", "package_size"}},
}

// PackagingColumns are optional; when present they feed the quantity resolver.
var PackagingColumns = []ColumnSpec{
	{Field: FieldBoxes, Aliases: []string{"boxes"}},
	{Field: FieldCartonsPerBox, Aliases: []string{"cartonsPerBox", "cartons_per_box"}},
	{Field: FieldStripsPerCarton, Aliases: []string{"stripsPerCarton", "strips_per_carton"}},
	{Field: FieldUnitsPerStrip, Aliases: []string{"unitsPerStrip", "units_per_strip"}},
}

// HeaderIndex maps header names (exact, whitespace-trimmed) to their position.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header record.
// When a name repeats, the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.TrimSpace(h)
		if key == "" {
			continue
		}
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// Has reports whether any alias of spec is in the header.
func (idx HeaderIndex) Has(spec ColumnSpec) bool {
	for _, alias := range spec.Aliases {
		if _, ok := idx[alias]; ok {
			return true
		}
	}
	return false
}

// Resolve returns the trimmed value for spec from record, or spec.Default.
func (idx HeaderIndex) Resolve(record []string, spec ColumnSpec) string {
	var raw string
	for _, alias := range spec.Aliases {
		pos, ok := idx[alias]
		if !ok || pos >= len(record) {
			continue
		}
		if record[pos] != "" {
			raw = record[pos]
			break
		}
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return spec.Default
	}
	return value
}

// Canonical header order for the downloadable template.
var templateHeader = []string{"name", "dosageType", "generic", "strength", "manufacturer", "UnitPrice", "PackageSize"}
