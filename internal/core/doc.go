// Package core provides the medicine CSV import pipeline.
//
// The package holds all import logic independent of any transport layer.
// It can be used by web handlers, CLI tools, or tests without modification.
//
// # Ingestion
//
// [Ingest] turns an uploaded file into canonical [MedicineImportRow] values in
// two phases:
//
//  1. Syntax: the file must be named *.csv and parse as strict CSV. Any
//     failure here is terminal and returned as an [*IngestError]; no rows are
//     mapped.
//  2. Semantics: each record is mapped through the static alias table
//     [MedicineColumns]. Gaps are tolerated (empty price becomes "0"), and rows
//     without a name are dropped and listed in [ImportResult.ParseErrors].
//
// Ingest is pure: the same bytes always give an equal result.
//
// # Service
//
// [Service] wraps Ingest with upload limits, concurrency control and the
// hand-off to a [Store]. Identifiers and timestamps are assigned here or by
// the store, never by the pipeline.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a code for support reference:
//
//   - FILE001-FILE006: File errors (size, format, empty, type)
//   - UPL002-UPL005: Upload errors (busy, cancelled, timed out)
//   - IMP001-IMP002: Import history errors
//   - REQ001, QTY001-QTY003: Request and quantity calculator errors
//   - DB001-DB006: Database errors
//   - ERR000: anything unrecognised; the original error is in the logs
package core
