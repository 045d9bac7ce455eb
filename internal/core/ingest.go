package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/pharmastock/internal/quantity"
)

// msgMissingName is reported for rows dropped because the name is blank.
const msgMissingName = "missing name"

// csvRecord is a parsed record and the line it started on.
type csvRecord struct {
	line   int
	fields []string
}

// Ingest parses an uploaded medicine CSV into canonical rows.
//
// fileName must end in ".csv" (any case). The first record is the header;
// every later record must have the same number of fields. Syntax problems
// fail the whole upload with an *IngestError. Field-level gaps do not: rows
// without a name are dropped and reported, everything else is accepted.
func Ingest(data []byte, fileName string) (ImportResult, error) {
	result, _, err := ingest(data, fileName)
	return result, err
}

// ingest is Ingest that also returns the header record.
func ingest(data []byte, fileName string) (ImportResult, []string, error) {
	if !IsCSVFileName(fileName) {
		return ImportResult{}, nil, unsupportedFileType(fileName)
	}

	records, err := parseCSV(decodeText(data))
	if err != nil {
		return ImportResult{}, nil, parseError(err)
	}

	result := ImportResult{
		Rows:        []MedicineImportRow{},
		ParseErrors: []RowError{},
	}
	if len(records) == 0 {
		return result, nil, nil
	}

	header := records[0].fields
	idx := MakeHeaderIndex(header)

	for i, rec := range records[1:] {
		rowNum := i + 1

		if isEmptyRow(rec.fields) {
			continue
		}

		row, issues := mapRow(rec.fields, idx)
		if row.Name == "" {
			result.Dropped++
			result.ParseErrors = append(result.ParseErrors, RowError{
				Row:     rowNum,
				Line:    rec.line,
				Message: msgMissingName,
			})
			continue
		}

		for _, msg := range issues {
			result.ParseErrors = append(result.ParseErrors, RowError{
				Row:     rowNum,
				Line:    rec.line,
				Message: msg,
			})
		}
		result.Rows = append(result.Rows, row)
	}

	result.TotalAccepted = len(result.Rows)
	return result, header, nil
}

// IsCSVFileName reports whether name has a .csv extension, ignoring case.
func IsCSVFileName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}

// parseCSV reads every record strictly: quotes must be well formed and all
// records must match the header's field count. Blank lines are skipped by
// the reader.
func parseCSV(data []byte) ([]csvRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 0

	var records []csvRecord
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := r.FieldPos(0)
		records = append(records, csvRecord{line: line, fields: fields})
	}
	return records, nil
}

// mapRow resolves the canonical fields of one record. The returned messages
// are non-terminal packaging problems.
func mapRow(record []string, idx HeaderIndex) (MedicineImportRow, []string) {
	values := make(map[string]string, len(MedicineColumns))
	for _, spec := range MedicineColumns {
		values[spec.Field] = idx.Resolve(record, spec)
	}

	row := MedicineImportRow{
		Name:         values[FieldName],
		DosageType:   values[FieldDosageType],
		Generic:      values[FieldGeneric],
		Strength:     values[FieldStrength],
		Manufacturer: values[FieldManufacturer],
		UnitPrice:    values[FieldUnitPrice],
		PackageSize:  values[FieldPackageSize],
	}

	var issues []string
	levels := make([]int64, len(PackagingColumns))
	for i, spec := range PackagingColumns {
		raw := idx.Resolve(record, spec)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			issues = append(issues, fmt.Sprintf("invalid %s %q, treated as 0", spec.Field, raw))
			continue
		}
		levels[i] = n
	}

	row.Packaging = quantity.Breakdown{
		Boxes:           levels[0],
		CartonsPerBox:   levels[1],
		StripsPerCarton: levels[2],
		UnitsPerStrip:   levels[3],
	}
	total, err := quantity.TotalUnits(row.Packaging)
	if err != nil {
		issues = append(issues, "packaging total out of range, treated as 0")
		row.Packaging = quantity.Breakdown{}
		total = 0
	}
	row.TotalUnits = total

	return row, issues
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
