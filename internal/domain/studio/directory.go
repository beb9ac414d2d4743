package studio

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mwork/studiofinder/internal/pkg/geo"
)

const (
	DefaultPageSize = 6
	DefaultRadiusKm = 10
)

// RadiusOptions are the selectable search radii in kilometres.
var RadiusOptions = []int{5, 10, 20}

// Options configures a Directory.
type Options struct {
	PageSize        int
	DefaultRadiusKm int
}

// Directory holds one client's catalog view: the full catalog, the active
// subset (everything, a text-search result or a radius-search result) and a
// page over it. All methods are safe for concurrent use; each runs to
// completion under the directory lock and never holds it while waiting on
// the catalog source or a locator.
type Directory struct {
	source   Source
	pageSize int

	mu sync.RWMutex

	studios []Studio
	active  []Studio
	paged   []Studio

	currentPage int
	totalPages  int

	uniqueAreas []string
	uniqueTypes []string

	searchTerm      string
	suggestions     []string
	showSuggestions bool
	// selectedAreas is kept for multi-area filtering; nothing populates it yet.
	selectedAreas map[string]struct{}
	showFilters   bool

	radiusKm        int
	userPosition    *geo.Position
	locationMessage *string
	radiusResults   []Studio
}

// NewDirectory creates an empty directory over source.
func NewDirectory(source Source, opts Options) *Directory {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if !validRadius(opts.DefaultRadiusKm) {
		opts.DefaultRadiusKm = DefaultRadiusKm
	}
	return &Directory{
		source:        source,
		pageSize:      opts.PageSize,
		currentPage:   1,
		selectedAreas: make(map[string]struct{}),
		radiusKm:      opts.DefaultRadiusKm,
	}
}

// LoadCatalog replaces the catalog with a fresh fetch. On failure the
// previous state is kept and the error is logged and returned; there is no
// retry.
func (d *Directory) LoadCatalog(ctx context.Context) error {
	studios, err := d.source.Studios(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching studios")
		return fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.studios = studios
	d.active = studios
	d.extractUniqueFilters()
	d.resetPagination()

	log.Debug().Int("studios", len(studios)).Msg("Studio catalog loaded")
	return nil
}

func (d *Directory) extractUniqueFilters() {
	areas := make([]string, 0)
	types := make([]string, 0)
	seenAreas := make(map[string]struct{})
	seenTypes := make(map[string]struct{})

	for _, s := range d.studios {
		if _, ok := seenAreas[s.Location.Area]; !ok {
			seenAreas[s.Location.Area] = struct{}{}
			areas = append(areas, s.Location.Area)
		}
		if _, ok := seenTypes[s.Type]; !ok {
			seenTypes[s.Type] = struct{}{}
			types = append(types, s.Type)
		}
	}

	d.uniqueAreas = areas
	d.uniqueTypes = types
}

// UpdateSuggestions records the raw search input and recomputes the
// suggestion list from known areas and types.
func (d *Directory) UpdateSuggestions(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.searchTerm = term
	needle := normalize(term)
	if needle == "" {
		d.suggestions = nil
		d.showSuggestions = false
		return
	}

	seen := make(map[string]struct{})
	suggestions := make([]string, 0)
	for _, candidates := range [][]string{d.uniqueAreas, d.uniqueTypes} {
		for _, c := range candidates {
			if !strings.Contains(strings.ToLower(c), needle) {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			suggestions = append(suggestions, c)
		}
	}

	d.suggestions = suggestions
	d.showSuggestions = len(suggestions) > 0
}

// ApplyTextSearch filters the catalog by area or type substring. An empty
// term restores the full catalog.
func (d *Directory) ApplyTextSearch(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.applyTextSearch(term)
}

func (d *Directory) applyTextSearch(term string) {
	d.searchTerm = term
	d.showFilters = true

	needle := normalize(term)
	if needle == "" {
		d.active = d.studios
	} else {
		matches := make([]Studio, 0)
		for _, s := range d.studios {
			if strings.Contains(strings.ToLower(s.Location.Area), needle) ||
				strings.Contains(strings.ToLower(s.Type), needle) {
				matches = append(matches, s)
			}
		}
		d.active = matches
	}

	clear(d.selectedAreas)
	d.resetPagination()
}

// SelectSuggestion takes a suggestion as the search term and searches.
func (d *Directory) SelectSuggestion(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.showSuggestions = false
	d.applyTextSearch(value)
}

// GoToPage moves to page n. Out-of-range pages are ignored; the return value
// reports whether the page changed state.
func (d *Directory) GoToPage(n int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n < 1 || n > d.totalPages {
		return false
	}
	d.currentPage = n
	d.paged = PageSlice(d.active, d.currentPage, d.pageSize)
	return true
}

func (d *Directory) resetPagination() {
	d.totalPages = TotalPages(len(d.active), d.pageSize)
	d.currentPage = 1
	d.paged = PageSlice(d.active, d.currentPage, d.pageSize)
}

// SetRadius selects the search radius; only RadiusOptions are accepted.
// The active list is not re-filtered until the next radius search.
func (d *Directory) SetRadius(km int) error {
	if !validRadius(km) {
		return fmt.Errorf("%w: %d", ErrInvalidRadius, km)
	}
	d.mu.Lock()
	d.radiusKm = km
	d.mu.Unlock()
	return nil
}

// SearchByRadius asks locator for the current position once and, on
// success, filters the catalog by the selected radius. Failures are stored
// as a user-facing message and returned; nothing is retried.
func (d *Directory) SearchByRadius(ctx context.Context, locator geo.Locator) error {
	d.mu.Lock()
	d.locationMessage = nil
	if locator == nil {
		d.setLocationMessage(msgGeolocationUnsupported)
		d.mu.Unlock()
		return ErrGeolocationUnsupported
	}
	d.mu.Unlock()

	pos, err := locator.CurrentPosition(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.setLocationMessage(locationErrorMessage(geo.CodeOf(err)))
		return err
	}

	d.userPosition = &pos
	d.filterByRadius()
	return nil
}

// FilterByRadius re-applies the radius filter around the last known
// position. Without a position it does nothing.
func (d *Directory) FilterByRadius() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filterByRadius()
}

func (d *Directory) filterByRadius() {
	if d.userPosition == nil {
		return
	}

	within := make([]Studio, 0)
	for _, s := range d.studios {
		dist := d.userPosition.Distance(s.Location.Coordinates.Position())
		if dist <= float64(d.radiusKm) {
			within = append(within, s)
		}
	}
	d.radiusResults = within

	if len(within) == 0 {
		d.setLocationMessage(noStudiosWithinMessage(d.radiusKm))
	} else {
		d.locationMessage = nil
	}

	d.active = within
	d.resetPagination()
}

func (d *Directory) setLocationMessage(msg string) {
	d.locationMessage = &msg
}

// Studio looks a studio up by id in the full catalog.
func (d *Directory) Studio(id int) (Studio, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, s := range d.studios {
		if s.ID == id {
			return s, nil
		}
	}
	return Studio{}, ErrStudioNotFound
}

func validRadius(km int) bool {
	return slices.Contains(RadiusOptions, km)
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
