package booking

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mwork/studiofinder/internal/domain/studio"
)

// Row is one booking joined with its studio. Studio is nil when the studio
// is no longer in the catalog or the catalog could not be loaded.
type Row struct {
	Booking
	Studio *studio.Studio `json:"studio"`
}

// Review lists stored bookings next to the studios they refer to.
type Review struct {
	repo   *Repository
	source studio.Source
}

// NewReview creates a bookings review over repo and source.
func NewReview(repo *Repository, source studio.Source) *Review {
	return &Review{repo: repo, source: source}
}

// List returns every stored booking. A catalog failure is logged and leaves
// the rows without studios.
func (r *Review) List(ctx context.Context) ([]Row, error) {
	bookings, err := r.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]studio.Studio)
	studios, err := r.source.Studios(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error loading studios")
	}
	for _, s := range studios {
		byID[s.ID] = s
	}

	rows := make([]Row, 0, len(bookings))
	for _, b := range bookings {
		row := Row{Booking: b}
		if s, ok := byID[b.StudioID]; ok {
			row.Studio = &s
		}
		rows = append(rows, row)
	}
	return rows, nil
}
