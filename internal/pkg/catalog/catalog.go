// Package catalog provides studio catalog sources: a remote HTTP document,
// a bundled JSON file, and a shared TTL cache in front of either.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mwork/studiofinder/internal/domain/studio"
)

// Document is the catalog wire format.
type Document struct {
	Studios []studio.Studio `json:"Studios"`
}

// Decode reads a catalog document. A document without a Studios array
// yields an empty catalog.
func Decode(r io.Reader) ([]studio.Studio, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if doc.Studios == nil {
		return []studio.Studio{}, nil
	}
	return doc.Studios, nil
}
