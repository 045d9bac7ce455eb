package store

import (
	"context"
	"fmt"
)

// schema is applied in order. Every statement must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS medicine_imports (
		id          UUID PRIMARY KEY,
		file_name   TEXT NOT NULL,
		accepted    INTEGER NOT NULL,
		dropped     INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS medicines (
		id                 BIGSERIAL PRIMARY KEY,
		import_id          UUID NOT NULL REFERENCES medicine_imports(id) ON DELETE CASCADE,
		position           INTEGER NOT NULL,
		name               TEXT NOT NULL,
		dosage_type        TEXT,
		generic            TEXT,
		strength           TEXT,
		manufacturer       TEXT,
		unit_price         NUMERIC(12, 2),
		package_size       TEXT,
		boxes              BIGINT NOT NULL DEFAULT 0,
		cartons_per_box    BIGINT NOT NULL DEFAULT 0,
		strips_per_carton  BIGINT NOT NULL DEFAULT 0,
		units_per_strip    BIGINT NOT NULL DEFAULT 0,
		total_units        BIGINT NOT NULL DEFAULT 0,
		stock_value        NUMERIC(14, 2)
	)`,
	`CREATE INDEX IF NOT EXISTS medicines_import_id_idx ON medicines (import_id)`,
	`CREATE INDEX IF NOT EXISTS medicine_imports_created_at_idx ON medicine_imports (created_at DESC)`,
}

// Migrate creates the import tables if they do not exist.
func (s *MedicineStore) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
