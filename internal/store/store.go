// Package store persists imported medicines in PostgreSQL through pgx.
//
// Each accepted upload is one row in medicine_imports plus its medicines,
// written in a single transaction so a batch is either fully stored or not at
// all. Rolling back an import deletes both.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/pharmastock/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// MedicineStore implements core.Store.
type MedicineStore struct {
	db DB
}

var _ core.Store = (*MedicineStore)(nil)

// New returns a MedicineStore using db, normally a *pgxpool.Pool.
func New(db DB) *MedicineStore {
	return &MedicineStore{db: db}
}

const insertImportSQL = `
	INSERT INTO medicine_imports (id, file_name, accepted, dropped, created_at)
	VALUES ($1, $2, $3, $4, $5)`

// SaveImport stores the batch header and bulk copies its rows.
func (s *MedicineStore) SaveImport(ctx context.Context, batch core.ImportBatch) error {
	id := toPgUUID(batch.ID)
	if !id.Valid {
		return fmt.Errorf("%w: %q", core.ErrInvalidImportID, batch.ID)
	}

	createdAt := batch.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertImportSQL,
		id,
		batch.FileName,
		len(batch.Rows),
		batch.Dropped,
		pgtype.Timestamptz{Time: createdAt, Valid: true},
	); err != nil {
		return fmt.Errorf("insert import: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"medicines"},
		medicineColumns,
		pgx.CopyFromRows(medicineCopyRows(id, batch.Rows)),
	)
	if err != nil {
		return fmt.Errorf("copy medicines: %w", err)
	}
	if copied != int64(len(batch.Rows)) {
		return fmt.Errorf("copy medicines: wrote %d of %d rows", copied, len(batch.Rows))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const listImportsSQL = `
	SELECT id, file_name, accepted, dropped, created_at
	FROM medicine_imports
	ORDER BY created_at DESC, id
	LIMIT $1`

// ListImports returns the most recent imports first.
func (s *MedicineStore) ListImports(ctx context.Context, limit int) ([]core.ImportRecord, error) {
	rows, err := s.db.Query(ctx, listImportsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.ImportRecord, error) {
		var (
			id        pgtype.UUID
			rec       core.ImportRecord
			createdAt pgtype.Timestamptz
		)
		if err := row.Scan(&id, &rec.FileName, &rec.Accepted, &rec.Dropped, &createdAt); err != nil {
			return rec, err
		}
		rec.ID = pgUUIDToString(id)
		rec.CreatedAt = createdAt.Time
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan imports: %w", err)
	}
	return records, nil
}

// DeleteImport removes an import and its medicines, returning the number of
// medicines deleted. Unknown ids yield core.ErrImportNotFound.
func (s *MedicineStore) DeleteImport(ctx context.Context, importID string) (int64, error) {
	id := toPgUUID(importID)
	if !id.Valid {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidImportID, importID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	medTag, err := tx.Exec(ctx, `DELETE FROM medicines WHERE import_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete medicines: %w", err)
	}

	impTag, err := tx.Exec(ctx, `DELETE FROM medicine_imports WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete import: %w", err)
	}
	if impTag.RowsAffected() == 0 {
		return 0, core.ErrImportNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return medTag.RowsAffected(), nil
}
