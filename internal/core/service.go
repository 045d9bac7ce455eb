package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/pharmastock/internal/config"
	"github.com/JonMunkholm/pharmastock/internal/logging"
	"github.com/google/uuid"
)

// Service runs imports end to end: limits, ingestion, persistence.
type Service struct {
	store   Store
	limiter *UploadLimiter

	maxFileSize   int64
	uploadTimeout time.Duration
	historyLimit  int

	now func() time.Time
}

// NewService creates a Service backed by store.
func NewService(store Store, cfg *config.Config) (*Service, error) {
	if store == nil {
		return nil, errors.New("core: nil store")
	}
	if cfg == nil {
		return nil, errors.New("core: nil config")
	}

	return &Service{
		store:         store,
		limiter:       NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		maxFileSize:   cfg.Upload.MaxFileSize,
		uploadTimeout: cfg.Upload.Timeout,
		historyLimit:  cfg.Upload.HistoryLimit,
		now:           time.Now,
	}, nil
}

// MaxFileSize returns the configured upload size limit in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// checkUpload applies the checks that need no parsing.
func (s *Service) checkUpload(fileName string, data []byte) error {
	if !IsCSVFileName(fileName) {
		return unsupportedFileType(fileName)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, fileName)
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(data), s.maxFileSize)
	}
	return nil
}

// Import ingests one uploaded file and stores the accepted rows as a batch.
//
// Terminal ingestion errors are returned unchanged and nothing is stored.
// A file with no accepted rows is not stored either; the outcome then has
// an empty ImportID.
func (s *Service) Import(ctx context.Context, fileName string, data []byte) (*ImportOutcome, error) {
	start := time.Now()

	if err := s.checkUpload(fileName, data); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	result, err := Ingest(data, fileName)
	if err != nil {
		return nil, err
	}

	outcome := &ImportOutcome{
		FileName: fileName,
		Result:   result,
	}

	log := logging.WithFields(ctx, "file", fileName)

	if result.TotalAccepted == 0 {
		outcome.Duration = time.Since(start)
		log.Info("import had no accepted rows",
			"dropped", result.Dropped,
			"row_errors", len(result.ParseErrors),
		)
		return outcome, nil
	}

	batch := ImportBatch{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Rows:      result.Rows,
		Dropped:   result.Dropped,
		CreatedAt: s.now().UTC(),
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	if err := s.store.SaveImport(saveCtx, batch); err != nil {
		return nil, fmt.Errorf("save import %s: %w", batch.ID, err)
	}

	outcome.ImportID = batch.ID
	outcome.Duration = time.Since(start)

	log.Info("import stored",
		"import_id", batch.ID,
		"accepted", result.TotalAccepted,
		"dropped", result.Dropped,
		"row_errors", len(result.ParseErrors),
		"duration", outcome.Duration,
	)

	return outcome, nil
}

// PreviewResult is a dry-run import plus a header report.
type PreviewResult struct {
	FileName string       `json:"fileName"`
	Header   HeaderMatch  `json:"header"`
	Result   ImportResult `json:"result"`
}

// Preview ingests a file without storing anything.
func (s *Service) Preview(fileName string, data []byte) (*PreviewResult, error) {
	if err := s.checkUpload(fileName, data); err != nil {
		return nil, err
	}

	result, header, err := ingest(data, fileName)
	if err != nil {
		return nil, err
	}

	return &PreviewResult{
		FileName: fileName,
		Header:   MatchHeader(header),
		Result:   result,
	}, nil
}

// History lists stored imports, newest first. A non-positive limit uses the
// configured default.
func (s *Service) History(ctx context.Context, limit int) ([]ImportRecord, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	records, err := s.store.ListImports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return records, nil
}

// Rollback deletes a stored import and its medicines. It returns the number
// of medicine rows removed.
func (s *Service) Rollback(ctx context.Context, importID string) (int64, error) {
	id, err := uuid.Parse(importID)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidImportID, importID)
	}

	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	removed, err := s.store.DeleteImport(ctx, id.String())
	if err != nil {
		return 0, fmt.Errorf("rollback import %s: %w", id, err)
	}

	logging.WithFields(ctx, "import_id", id.String()).Info("import rolled back", "medicines_removed", removed)
	return removed, nil
}

// WaitForUploads blocks until in-flight imports finish or ctx is done.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// UploadLimiterStatus reports import concurrency for health checks.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}
