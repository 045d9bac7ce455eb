package store

// convert.go turns canonical import rows into pgtype values for COPY.
//
// Import rows are all text. Blank text becomes NULL, prices become NUMERIC
// when they parse as decimals and NULL otherwise, so a bad price never fails
// a batch that ingestion already accepted.

import (
	"strings"

	"github.com/JonMunkholm/pharmastock/internal/core"
	"github.com/JonMunkholm/pharmastock/internal/quantity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// medicineColumns is the COPY column order; medicineCopyRows must match it.
var medicineColumns = []string{
	"import_id",
	"position",
	"name",
	"dosage_type",
	"generic",
	"strength",
	"manufacturer",
	"unit_price",
	"package_size",
	"boxes",
	"cartons_per_box",
	"strips_per_carton",
	"units_per_strip",
	"total_units",
	"stock_value",
}

// medicineCopyRows converts rows to COPY values. position is 1-based in
// accepted order.
func medicineCopyRows(importID pgtype.UUID, rows []core.MedicineImportRow) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		var unitPrice, value pgtype.Numeric
		if price, err := quantity.ParsePrice(r.UnitPrice); err == nil {
			unitPrice = toPgNumeric(price)
			value = toPgNumeric(price.Mul(decimal.NewFromInt(r.TotalUnits)))
		}

		out[i] = []any{
			importID,
			int32(i + 1),
			r.Name,
			toPgText(r.DosageType),
			toPgText(r.Generic),
			toPgText(r.Strength),
			toPgText(r.Manufacturer),
			unitPrice,
			toPgText(r.PackageSize),
			r.Packaging.Boxes,
			r.Packaging.CartonsPerBox,
			r.Packaging.StripsPerCarton,
			r.Packaging.UnitsPerStrip,
			r.TotalUnits,
			value,
		}
	}
	return out
}

// toPgText returns NULL for blank strings.
func toPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// toPgNumeric converts through the decimal's exact text form.
func toPgNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}
	}
	return n
}

// toPgUUID returns an invalid UUID for empty or malformed input.
func toPgUUID(s string) pgtype.UUID {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// pgUUIDToString returns "" for NULL.
func pgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
