package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("blob not found")

// ErrInvalidKey is returned for empty keys or keys that could escape the
// backend's namespace.
var ErrInvalidKey = errors.New("invalid blob key")

// BlobStore is a minimal key-value store for whole JSON documents.
// Writes overwrite; there is no partial update and no transaction.
type BlobStore interface {
	// Get returns the blob stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the blob stored under key.
	Put(ctx context.Context, key string, data []byte) error
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.Contains(key, "..") || strings.ContainsAny(key, "/\\") {
		return ErrInvalidKey
	}
	return nil
}
