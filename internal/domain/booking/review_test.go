package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/mwork/studiofinder/internal/domain/studio"
	"github.com/mwork/studiofinder/internal/pkg/storage"
)

type fakeSource struct {
	studios []studio.Studio
	err     error
}

func (f *fakeSource) Studios(ctx context.Context) ([]studio.Studio, error) {
	return f.studios, f.err
}

func TestReviewList(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemoryStore(), "s1")
	for _, b := range []Booking{
		{StudioID: 7, StudioName: "Banani Sound Lab", Date: "2026-11-01", Time: "09:00"},
		{StudioID: 99, StudioName: "Gone", Date: "2026-11-01", Time: "10:00"},
	} {
		if err := repo.Append(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := NewReview(repo, &fakeSource{studios: []studio.Studio{testStudio()}}).List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Studio == nil || rows[0].Studio.Location.Area != "Banani" {
		t.Fatalf("first row not joined: %+v", rows[0])
	}
	if rows[1].Studio != nil {
		t.Fatalf("unknown studio should be nil, got %+v", rows[1].Studio)
	}
}

func TestReviewListEmpty(t *testing.T) {
	rows, err := NewReview(NewRepository(storage.NewMemoryStore(), "s1"), &fakeSource{}).List(context.Background())
	if err != nil || rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty rows, got %#v (%v)", rows, err)
	}
}

func TestReviewListCatalogFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemoryStore(), "s1")
	if err := repo.Append(ctx, Booking{StudioID: 7, Date: "2026-11-01", Time: "09:00"}); err != nil {
		t.Fatal(err)
	}

	rows, err := NewReview(repo, &fakeSource{err: errors.New("offline")}).List(ctx)
	if err != nil {
		t.Fatalf("catalog failure should not fail the review: %v", err)
	}
	if len(rows) != 1 || rows[0].Studio != nil {
		t.Fatalf("unexpected rows %+v", rows)
	}
}
