package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/mwork/studiofinder/internal/pkg/storage"
)

// StorageKey names the bookings blob inside a namespace.
const StorageKey = "studioBookings"

// Key returns the blob key holding the bookings of namespace.
func Key(namespace string) string {
	if namespace == "" {
		return StorageKey
	}
	return namespace + ":" + StorageKey
}

// Repository persists the bookings list of one namespace as a single JSON
// array. A missing blob is an empty list. Appends are read-modify-write and
// are not atomic across writers sharing a namespace.
type Repository struct {
	store storage.BlobStore
	key   string
}

// NewRepository creates a bookings repository over store.
func NewRepository(store storage.BlobStore, namespace string) *Repository {
	return &Repository{store: store, key: Key(namespace)}
}

// All returns every stored booking in insertion order.
func (r *Repository) All(ctx context.Context) ([]Booking, error) {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}

	var bookings []Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBookings, err)
	}
	if bookings == nil {
		bookings = []Booking{}
	}
	return bookings, nil
}

// IsSlotAvailable reports whether no stored booking holds the slot.
func (r *Repository) IsSlotAvailable(ctx context.Context, studioID int, date, time string) (bool, error) {
	bookings, err := r.All(ctx)
	if err != nil {
		return false, err
	}
	taken := slices.ContainsFunc(bookings, func(b Booking) bool {
		return b.Occupies(studioID, date, time)
	})
	return !taken, nil
}

// Append adds b to the end of the stored list.
func (r *Repository) Append(ctx context.Context, b Booking) error {
	bookings, err := r.All(ctx)
	if err != nil {
		return err
	}
	bookings = append(bookings, b)

	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("write bookings: %w", err)
	}
	return nil
}
