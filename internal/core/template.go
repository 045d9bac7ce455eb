package core

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// sampleRow is the example data row shipped in the onboarding template.
var sampleRow = []string{"Napa", "Tablet", "Paracetamol", "500mg", "Square Pharmaceuticals", "10", "1 Box (10 tablets)"}

// SampleTemplate returns the downloadable reference CSV. Its header order and
// casing are the documented format for user-supplied files.
func SampleTemplate() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(templateHeader)
	_ = w.Write(sampleRow)
	w.Flush()
	return buf.Bytes()
}

// HeaderMatch reports how a file's header lines up with the alias table.
type HeaderMatch struct {
	Matched map[string]string `json:"matched"` // canonical field -> header used
	Missing []string          `json:"missing"` // canonical fields with no alias present
	Unknown []string          `json:"unknown"` // headers no field reads from
	Score   float64           `json:"score"`   // share of MedicineColumns matched
}

// MatchHeader compares header against MedicineColumns and PackagingColumns.
// Packaging columns are optional and never count as missing. Matched names
// the first alias present; later aliases are fallbacks, not unknown.
func MatchHeader(header []string) HeaderMatch {
	idx := MakeHeaderIndex(header)
	m := HeaderMatch{
		Matched: make(map[string]string),
		Missing: []string{},
		Unknown: []string{},
	}

	used := make(map[string]bool)
	match := func(spec ColumnSpec) bool {
		ok := false
		for _, alias := range spec.Aliases {
			if _, present := idx[alias]; !present {
				continue
			}
			used[alias] = true
			if !ok {
				m.Matched[spec.Field] = alias
				ok = true
			}
		}
		return ok
	}

	found := 0
	for _, spec := range MedicineColumns {
		if match(spec) {
			found++
		} else {
			m.Missing = append(m.Missing, spec.Field)
		}
	}
	for _, spec := range PackagingColumns {
		match(spec)
	}

	for _, h := range header {
		h = strings.TrimSpace(h)
		if h != "" && !used[h] {
			m.Unknown = append(m.Unknown, h)
		}
	}

	m.Score = float64(found) / float64(len(MedicineColumns))
	return m
}
