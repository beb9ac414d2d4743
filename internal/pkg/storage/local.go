package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	blobExt         = ".json"
	tmpSuffix       = ".tmp"
	filePermissions = 0644
)

// LocalStorage stores each blob as a file under basePath.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.basePath, key+blobExt)
}

// Get reads a blob from disk
func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

// Put writes to a temp file first and renames it over the target so a
// crash mid-write never leaves a truncated blob.
func (s *LocalStorage) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	target := s.path(key)
	tmp := target + tmpSuffix
	if err := os.WriteFile(tmp, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace blob: %w", err)
	}
	return nil
}
