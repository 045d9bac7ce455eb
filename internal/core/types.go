package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/pharmastock/internal/quantity"
)

// MedicineImportRow is one accepted row in canonical form.
// All descriptive fields are trimmed text; typing happens in the store.
type MedicineImportRow struct {
	Name         string             `json:"name"`
	DosageType   string             `json:"dosageType"`
	Generic      string             `json:"generic"`
	Strength     string             `json:"strength"`
	Manufacturer string             `json:"manufacturer"`
	UnitPrice    string             `json:"unitPrice"`
	PackageSize  string             `json:"packageSize"`
	Packaging    quantity.Breakdown `json:"packaging"`
	TotalUnits   int64              `json:"totalUnits"`
}

// RowError describes a non-terminal problem with one data row.
type RowError struct {
	Row     int    `json:"row"`  // 1-based data row, header excluded
	Line    int    `json:"line"` // physical line in the file
	Message string `json:"message"`
}

// ImportResult is the outcome of ingesting one file.
type ImportResult struct {
	Rows          []MedicineImportRow `json:"rows"`
	TotalAccepted int                 `json:"totalAccepted"`
	Dropped       int                 `json:"dropped"`
	ParseErrors   []RowError          `json:"parseErrors"`
}

// ImportBatch is what the service hands to the Store.
type ImportBatch struct {
	ID        string
	FileName  string
	Rows      []MedicineImportRow
	Dropped   int
	CreatedAt time.Time
}

// ImportRecord is a stored batch as listed in the import history.
type ImportRecord struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	Accepted  int       `json:"accepted"`
	Dropped   int       `json:"dropped"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImportOutcome is returned by Service.Import.
// ImportID is empty when nothing was accepted and nothing was stored.
type ImportOutcome struct {
	ImportID string        `json:"importId,omitempty"`
	FileName string        `json:"fileName"`
	Result   ImportResult  `json:"result"`
	Duration time.Duration `json:"durationNs"`
}

// Store persists accepted rows. Satisfied by *store.MedicineStore.
type Store interface {
	SaveImport(ctx context.Context, batch ImportBatch) error
	ListImports(ctx context.Context, limit int) ([]ImportRecord, error)
	DeleteImport(ctx context.Context, id string) (int64, error)
}
