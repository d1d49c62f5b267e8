// Package store persists snapshot records as a single JSON file. It is the
// only component that touches the filesystem; the codec hands it a finished
// dto.Snapshot and gets one back.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amirasaad/retailbank/pkg/dto"
)

// FileStore reads and writes the whole-state snapshot file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a store for the given file path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Save writes the snapshot with a temp-file-and-rename dance so a crash
// mid-write can never leave a truncated state file behind.
func (s *FileStore) Save(snap *dto.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	s.logger.Info("snapshot saved",
		"path", s.path,
		"snapshot_id", snap.SnapshotID,
		"customers", len(snap.Customers),
		"accounts", len(snap.Accounts))
	return nil
}

// Load reads and parses the snapshot file. A missing or unparseable file is
// an error; the caller decides whether to fall back to an empty ledger.
func (s *FileStore) Load() (*dto.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	var snap dto.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot file: %w", err)
	}
	s.logger.Info("snapshot loaded",
		"path", s.path,
		"snapshot_id", snap.SnapshotID,
		"customers", len(snap.Customers),
		"accounts", len(snap.Accounts))
	return &snap, nil
}
