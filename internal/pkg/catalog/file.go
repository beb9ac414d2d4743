package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/mwork/studiofinder/internal/domain/studio"
)

// FileSource reads the catalog from a static JSON asset on every call.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Studios(ctx context.Context) ([]studio.Studio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
