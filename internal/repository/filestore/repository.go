// Package filestore persists the inventory document as a single JSON
// file on disk, the default backend for single-site deployments.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"chemstock/internal/domain/models"
)

// Store reads and writes the document at a fixed path. Writes land in
// a temp file first and are renamed into place, so a crash mid-write
// never leaves a truncated document behind.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore ensures the parent directory exists and returns the store.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return nil, errors.New("file store path must not be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	return &Store{path: path, logger: logger}, nil
}

// Load reads the document; a missing file loads as the zero document.
func (s *Store) Load(ctx context.Context) (models.Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("state file missing, starting empty", zap.String("path", s.path))
			return models.Document{}, nil
		}
		return models.Document{}, fmt.Errorf("read state file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Document{}, fmt.Errorf("decode state file: %w", err)
	}
	return doc, nil
}

// Save writes the document atomically.
func (s *Store) Save(ctx context.Context, doc models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}

	s.logger.Debug("state file written", zap.String("path", s.path), zap.Int("bytes", len(raw)))
	return nil
}

// Close is a no-op; the store keeps no handles open between calls.
func (s *Store) Close(ctx context.Context) error {
	return nil
}
