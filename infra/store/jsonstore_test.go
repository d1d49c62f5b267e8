package store_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/retailbank/infra/store"
	"github.com/amirasaad/retailbank/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

func sampleSnapshot() *dto.Snapshot {
	return &dto.Snapshot{
		SnapshotID: "b2c7a2b4-0f1e-4c1d-9a61-2f8f8f0d8f11",
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Customers: []dto.Customer{{
			CustomerID:   1001,
			CustomerType: "personal",
			Name:         "Ada Lovelace",
			Email:        "ada@example.com",
			DateJoined:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		Accounts: []dto.Account{{
			AccountNumber: 10000001,
			AccountType:   "savings",
			Balance:       77500,
			HolderID:      1001,
			DateOpened:    time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			Status:        "active",
			History: []dto.HistoryEntry{{
				Type:      "withdrawal",
				Amount:    30000,
				Timestamp: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			}},
			InterestRate:    0.02,
			MinimumBalance:  50000,
			WithdrawalLimit: 2,
			WithdrawalsUsed: 1,
		}},
		NextCustomerID:    1002,
		NextAccountNumber: 10000002,
		NextTransactionID: 2,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bank.json")
	s := store.NewFileStore(path, nil)

	snap := sampleSnapshot()
	require.NoError(t, s.Save(snap))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestSaveOverwritesWholeState(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bank.json")
	s := store.NewFileStore(path, nil)

	require.NoError(t, s.Save(sampleSnapshot()))

	smaller := sampleSnapshot()
	smaller.Accounts = nil
	require.NoError(t, s.Save(smaller))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.Accounts)
	assert.Len(t, loaded.Customers, 1)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	s := store.NewFileStore(filepath.Join(t.TempDir(), "absent.json"), nil)
	_, err := s.Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := store.NewFileStore(path, nil)
	_, err := s.Load()
	assert.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := store.NewFileStore(filepath.Join(dir, "bank.json"), nil)
	require.NoError(t, s.Save(sampleSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bank.json", entries[0].Name())
}
