package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/pharmastock/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store.
type memStore struct {
	mu      sync.Mutex
	batches []ImportBatch
	saveErr error
	saves   int
}

func (m *memStore) SaveImport(_ context.Context, batch ImportBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.batches = append(m.batches, batch)
	return nil
}

func (m *memStore) ListImports(_ context.Context, limit int) ([]ImportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ImportRecord
	for i := len(m.batches) - 1; i >= 0 && len(out) < limit; i-- {
		b := m.batches[i]
		out = append(out, ImportRecord{
			ID:        b.ID,
			FileName:  b.FileName,
			Accepted:  len(b.Rows),
			Dropped:   b.Dropped,
			CreatedAt: b.CreatedAt,
		})
	}
	return out, nil
}

func (m *memStore) DeleteImport(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.batches {
		if b.ID == id {
			m.batches = append(m.batches[:i], m.batches[i+1:]...)
			return int64(len(b.Rows)), nil
		}
	}
	return 0, ErrImportNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxFileSize:   1024,
			MaxConcurrent: 2,
			MaxWaitTime:   time.Second,
			Timeout:       time.Second,
			HistoryLimit:  2,
		},
	}
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := &memStore{}
	svc, err := NewService(store, testConfig())
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("BST", 6*3600)) }
	return svc, store
}

const stockCSV = "name,dosage_type,unit_price\nNapa,Tablet,2.5\n,Syrup,3\nAce,Tablet,\n"

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := NewService(nil, testConfig())
	assert.Error(t, err)

	_, err = NewService(&memStore{}, nil)
	assert.Error(t, err)
}

func TestService_Import(t *testing.T) {
	svc, store := newTestService(t)

	out, err := svc.Import(context.Background(), "stock.csv", []byte(stockCSV))
	require.NoError(t, err)

	_, err = uuid.Parse(out.ImportID)
	assert.NoError(t, err, "import id should be a uuid")
	assert.Equal(t, "stock.csv", out.FileName)
	assert.Equal(t, 2, out.Result.TotalAccepted)
	assert.Equal(t, 1, out.Result.Dropped)

	require.Len(t, store.batches, 1)
	batch := store.batches[0]
	assert.Equal(t, out.ImportID, batch.ID)
	assert.Equal(t, out.Result.Rows, batch.Rows)
	assert.Equal(t, 1, batch.Dropped)
	assert.Equal(t, time.UTC, batch.CreatedAt.Location())
	assert.Equal(t, 6, batch.CreatedAt.Hour())
}

func TestService_ImportTerminalErrorsStoreNothing(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     string
		target   error
	}{
		{"wrong extension", "stock.xlsx", stockCSV, ErrUnsupportedFileType},
		{"parse error", "stock.csv", "name,unit_price\nNapa,1,2\n", ErrParse},
		{"too large", "stock.csv", string(make([]byte, 2048)), ErrFileTooLarge},
		{"empty file", "stock.csv", "", ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)

			out, err := svc.Import(context.Background(), tt.fileName, []byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.Nil(t, out)
			assert.Zero(t, store.saves, "SaveImport must not be called")
		})
	}
}

func TestService_ImportExtensionCheckedBeforeSize(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Import(context.Background(), "huge.xlsx", make([]byte, 4096))
	assert.True(t, errors.Is(err, ErrUnsupportedFileType), "got %v", err)
}

func TestService_ImportNothingAccepted(t *testing.T) {
	svc, store := newTestService(t)

	out, err := svc.Import(context.Background(), "stock.csv", []byte("name,unit_price\n,5\n"))
	require.NoError(t, err)

	assert.Empty(t, out.ImportID)
	assert.Equal(t, 1, out.Result.Dropped)
	assert.Zero(t, store.saves)
}

func TestService_ImportStoreFailure(t *testing.T) {
	svc, store := newTestService(t)
	store.saveErr = errors.New("duplicate key value violates unique constraint")

	_, err := svc.Import(context.Background(), "stock.csv", []byte(stockCSV))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.saveErr)
	assert.Equal(t, "DB001", MapError(err).Code)
	assert.Zero(t, svc.UploadLimiterStatus().Active, "slot released after failure")
}

func TestService_ImportBusy(t *testing.T) {
	store := &memStore{}
	cfg := testConfig()
	cfg.Upload.MaxConcurrent = 1
	cfg.Upload.MaxWaitTime = 20 * time.Millisecond
	svc, err := NewService(store, cfg)
	require.NoError(t, err)

	require.NoError(t, svc.limiter.Acquire(context.Background()))
	defer svc.limiter.Release()

	_, err = svc.Import(context.Background(), "stock.csv", []byte(stockCSV))
	assert.ErrorIs(t, err, ErrTooManyUploads)
	assert.Zero(t, store.saves)
}

func TestService_Preview(t *testing.T) {
	svc, store := newTestService(t)

	preview, err := svc.Preview("stock.csv", []byte(stockCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, preview.Result.TotalAccepted)
	assert.Equal(t, "dosage_type", preview.Header.Matched[FieldDosageType])
	assert.Contains(t, preview.Header.Missing, FieldStrength)
	assert.Zero(t, store.saves, "preview never stores")

	_, err = svc.Preview("stock.txt", []byte(stockCSV))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = svc.Preview("stock.csv", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.Equal(t, "FILE005", MapError(err).Code)
}

func TestService_HistoryAndRollback(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"a.csv", "b.csv", "c.csv"} {
		out, err := svc.Import(ctx, name, []byte(stockCSV))
		require.NoError(t, err)
		ids = append(ids, out.ImportID)
	}

	history, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2, "non-positive limit uses the configured default")
	assert.Equal(t, "c.csv", history[0].FileName)

	removed, err := svc.Rollback(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Len(t, store.batches, 2)

	_, err = svc.Rollback(ctx, ids[1])
	assert.ErrorIs(t, err, ErrImportNotFound)

	_, err = svc.Rollback(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidImportID)
}

func TestService_WaitForUploads(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, svc.WaitForUploads(ctx))
	assert.Equal(t, 2, svc.UploadLimiterStatus().MaxConcurrent)
}
