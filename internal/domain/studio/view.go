package studio

import (
	"slices"
	"sort"

	"github.com/mwork/studiofinder/internal/pkg/geo"
)

// View is a read-only snapshot of a Directory for rendering.
type View struct {
	Studios      []Studio `json:"studios"`
	CurrentPage  int      `json:"current_page"`
	TotalPages   int      `json:"total_pages"`
	PageSize     int      `json:"page_size"`
	TotalResults int      `json:"total_results"`
	CatalogSize  int      `json:"catalog_size"`

	SearchTerm      string   `json:"search_term"`
	Suggestions     []string `json:"suggestions"`
	ShowSuggestions bool     `json:"show_suggestions"`
	ShowFilters     bool     `json:"show_filters"`
	SelectedAreas   []string `json:"selected_areas"`
	Areas           []string `json:"areas"`
	Types           []string `json:"types"`

	RadiusOptions  []int         `json:"radius_options"`
	SelectedRadius int           `json:"selected_radius"`
	UserLocation   *geo.Position `json:"user_location"`
	LocationError  *string       `json:"location_error"`
	RadiusResults  int           `json:"radius_results"`
}

// View returns a snapshot that shares no mutable state with the directory.
func (d *Directory) View() View {
	d.mu.RLock()
	defer d.mu.RUnlock()

	selected := make([]string, 0, len(d.selectedAreas))
	for area := range d.selectedAreas {
		selected = append(selected, area)
	}
	sort.Strings(selected)

	v := View{
		Studios:         nonNil(slices.Clone(d.paged)),
		CurrentPage:     d.currentPage,
		TotalPages:      d.totalPages,
		PageSize:        d.pageSize,
		TotalResults:    len(d.active),
		CatalogSize:     len(d.studios),
		SearchTerm:      d.searchTerm,
		Suggestions:     nonNil(slices.Clone(d.suggestions)),
		ShowSuggestions: d.showSuggestions,
		ShowFilters:     d.showFilters,
		SelectedAreas:   selected,
		Areas:           nonNil(slices.Clone(d.uniqueAreas)),
		Types:           nonNil(slices.Clone(d.uniqueTypes)),
		RadiusOptions:   slices.Clone(RadiusOptions),
		SelectedRadius:  d.radiusKm,
		RadiusResults:   len(d.radiusResults),
	}
	if d.userPosition != nil {
		pos := *d.userPosition
		v.UserLocation = &pos
	}
	if d.locationMessage != nil {
		msg := *d.locationMessage
		v.LocationError = &msg
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
