package studio

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/mwork/studiofinder/internal/pkg/geo"
)

type fakeSource struct {
	studios []Studio
	err     error
}

func (f *fakeSource) Studios(ctx context.Context) ([]Studio, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.studios, nil
}

func mkStudio(id int, area, typ string, lat, lon float64) Studio {
	return Studio{
		ID:   id,
		Name: fmt.Sprintf("Studio %d", id),
		Type: typ,
		Location: Location{
			Area:        area,
			Coordinates: Coordinates{Latitude: lat, Longitude: lon},
		},
		Availability: Availability{Open: "09:00", Close: "18:00"},
	}
}

func sampleCatalog() []Studio {
	return []Studio{
		mkStudio(1, "Gulshan", "Photography", 23.7925, 90.4078),
		mkStudio(2, "Banani", "Recording", 23.7937, 90.4066),
		mkStudio(3, "Dhanmondi", "Photography", 23.7461, 90.3742),
		mkStudio(4, "Mirpur", "Rehearsal", 23.8223, 90.3654),
		mkStudio(5, "Uttara", "Video Production", 23.8759, 90.3795),
		mkStudio(6, "Gulshan", "Podcast", 23.7806, 90.4193),
		mkStudio(7, "Banani", "Rehearsal", 23.7940, 90.4043),
		mkStudio(8, "Agrabad", "Recording", 22.3264, 91.8124),
	}
}

func loadedDirectory(t *testing.T, studios []Studio, pageSize int) *Directory {
	t.Helper()
	d := NewDirectory(&fakeSource{studios: studios}, Options{PageSize: pageSize})
	if err := d.LoadCatalog(context.Background()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return d
}

func ids(studios []Studio) []int {
	out := make([]int, 0, len(studios))
	for _, s := range studios {
		out = append(out, s.ID)
	}
	return out
}

func TestLoadCatalogDerivesFilters(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	v := d.View()

	wantAreas := []string{"Gulshan", "Banani", "Dhanmondi", "Mirpur", "Uttara", "Agrabad"}
	if !reflect.DeepEqual(v.Areas, wantAreas) {
		t.Fatalf("areas = %v, want %v", v.Areas, wantAreas)
	}
	wantTypes := []string{"Photography", "Recording", "Rehearsal", "Video Production", "Podcast"}
	if !reflect.DeepEqual(v.Types, wantTypes) {
		t.Fatalf("types = %v, want %v", v.Types, wantTypes)
	}
	if v.CatalogSize != 8 || v.TotalResults != 8 {
		t.Fatalf("expected full catalog active, got catalog=%d active=%d", v.CatalogSize, v.TotalResults)
	}
	if v.TotalPages != 2 || v.CurrentPage != 1 || len(v.Studios) != 6 {
		t.Fatalf("unexpected pagination %d/%d with %d items", v.CurrentPage, v.TotalPages, len(v.Studios))
	}
}

func TestLoadCatalogFailureKeepsState(t *testing.T) {
	src := &fakeSource{studios: sampleCatalog()}
	d := NewDirectory(src, Options{})
	if err := d.LoadCatalog(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	d.ApplyTextSearch("gulshan")
	before := d.View()

	src.err = errors.New("gist unavailable")
	err := d.LoadCatalog(context.Background())
	if !errors.Is(err, ErrCatalogLoad) {
		t.Fatalf("expected ErrCatalogLoad, got %v", err)
	}
	if !reflect.DeepEqual(before, d.View()) {
		t.Fatal("failed load changed directory state")
	}
}

func TestPaginationProperties(t *testing.T) {
	for _, pageSize := range []int{1, 2, 3, 6, 7} {
		for n := 0; n <= 15; n++ {
			catalog := make([]Studio, n)
			for i := range catalog {
				catalog[i] = mkStudio(i+1, "Area", "Type", 0, 0)
			}
			d := loadedDirectory(t, catalog, pageSize)

			wantPages := (n + pageSize - 1) / pageSize
			v := d.View()
			if v.TotalPages != wantPages {
				t.Fatalf("n=%d p=%d: totalPages=%d want %d", n, pageSize, v.TotalPages, wantPages)
			}

			for k := 1; k <= wantPages; k++ {
				if !d.GoToPage(k) {
					t.Fatalf("n=%d p=%d: GoToPage(%d) rejected", n, pageSize, k)
				}
				v := d.View()
				want := min(pageSize, n-(k-1)*pageSize)
				if len(v.Studios) != want {
					t.Fatalf("n=%d p=%d k=%d: page len=%d want %d", n, pageSize, k, len(v.Studios), want)
				}
				if v.Studios[0].ID != (k-1)*pageSize+1 {
					t.Fatalf("n=%d p=%d k=%d: page starts at id %d", n, pageSize, k, v.Studios[0].ID)
				}
			}
		}
	}
}

func TestGoToPageOutOfRangeIsNoop(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 3)
	d.GoToPage(2)
	before := d.View()

	for _, n := range []int{-1, 0, 4, 100} {
		if d.GoToPage(n) {
			t.Fatalf("GoToPage(%d) reported a change", n)
		}
		if !reflect.DeepEqual(before, d.View()) {
			t.Fatalf("GoToPage(%d) changed state", n)
		}
	}
}

func TestEmptyCatalog(t *testing.T) {
	d := loadedDirectory(t, []Studio{}, 6)
	v := d.View()
	if v.TotalPages != 0 || len(v.Studios) != 0 {
		t.Fatalf("expected empty pagination, got %d pages and %d items", v.TotalPages, len(v.Studios))
	}
	if d.GoToPage(1) {
		t.Fatal("GoToPage(1) on empty catalog should be ignored")
	}
}

func TestUpdateSuggestions(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)

	d.UpdateSuggestions("  AN ")
	v := d.View()
	want := []string{"Gulshan", "Banani", "Dhanmondi"}
	if !reflect.DeepEqual(v.Suggestions, want) || !v.ShowSuggestions {
		t.Fatalf("suggestions = %v (shown=%v), want %v", v.Suggestions, v.ShowSuggestions, want)
	}
	if v.SearchTerm != "  AN " {
		t.Fatalf("search term not recorded, got %q", v.SearchTerm)
	}

	d.UpdateSuggestions("re")
	v = d.View()
	want = []string{"Recording", "Rehearsal"}
	if !reflect.DeepEqual(v.Suggestions, want) {
		t.Fatalf("suggestions = %v, want %v", v.Suggestions, want)
	}

	d.UpdateSuggestions("zzz")
	v = d.View()
	if len(v.Suggestions) != 0 || v.ShowSuggestions {
		t.Fatalf("expected hidden empty suggestions, got %v shown=%v", v.Suggestions, v.ShowSuggestions)
	}

	d.UpdateSuggestions("   ")
	v = d.View()
	if len(v.Suggestions) != 0 || v.ShowSuggestions {
		t.Fatal("blank term should clear suggestions")
	}
}

func TestSuggestionsDeduplicateAcrossAreasAndTypes(t *testing.T) {
	catalog := []Studio{
		mkStudio(1, "Studio Row", "Studio Row", 0, 0),
		mkStudio(2, "Old Town", "Studio", 0, 0),
	}
	d := loadedDirectory(t, catalog, 6)

	d.UpdateSuggestions("studio")
	want := []string{"Studio Row", "Studio"}
	if got := d.View().Suggestions; !reflect.DeepEqual(got, want) {
		t.Fatalf("suggestions = %v, want %v", got, want)
	}
}

func TestApplyTextSearch(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)

	d.ApplyTextSearch("  PHOTO ")
	v := d.View()
	if !reflect.DeepEqual(ids(v.Studios), []int{1, 3}) {
		t.Fatalf("photo search = %v", ids(v.Studios))
	}
	if !v.ShowFilters || v.CurrentPage != 1 || v.TotalPages != 1 {
		t.Fatalf("unexpected state after search: %+v", v)
	}

	d.ApplyTextSearch("banani")
	if got := ids(d.View().Studios); !reflect.DeepEqual(got, []int{2, 7}) {
		t.Fatalf("area search = %v", got)
	}

	d.ApplyTextSearch("nothing-matches")
	v = d.View()
	if v.TotalPages != 0 || len(v.Studios) != 0 {
		t.Fatalf("expected empty result, got %v", ids(v.Studios))
	}
}

func TestApplyTextSearchEmptyRestoresCatalog(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)

	d.ApplyTextSearch("recording")
	if err := d.SearchByRadius(context.Background(), geo.Static(geo.Position{Latitude: 22.3264, Longitude: 91.8124})); err != nil {
		t.Fatalf("radius search: %v", err)
	}
	d.GoToPage(1)

	d.ApplyTextSearch("")
	v := d.View()
	if v.TotalResults != len(sampleCatalog()) {
		t.Fatalf("expected full catalog after empty search, got %d", v.TotalResults)
	}
	if v.CurrentPage != 1 {
		t.Fatalf("expected page reset, got %d", v.CurrentPage)
	}
}

func TestSearchResetsPage(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 2)
	d.GoToPage(3)
	d.ApplyTextSearch("a")
	if got := d.View().CurrentPage; got != 1 {
		t.Fatalf("expected page 1 after search, got %d", got)
	}
}

func TestSelectSuggestion(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	d.UpdateSuggestions("gul")
	if !d.View().ShowSuggestions {
		t.Fatal("expected suggestions shown")
	}

	d.SelectSuggestion("Gulshan")
	v := d.View()
	if v.ShowSuggestions {
		t.Fatal("suggestions should be hidden after selection")
	}
	if v.SearchTerm != "Gulshan" || !v.ShowFilters {
		t.Fatalf("unexpected state %+v", v)
	}
	if got := ids(v.Studios); !reflect.DeepEqual(got, []int{1, 6}) {
		t.Fatalf("selection results = %v", got)
	}
}

func TestSetRadius(t *testing.T) {
	d := NewDirectory(&fakeSource{}, Options{})
	if got := d.View().SelectedRadius; got != DefaultRadiusKm {
		t.Fatalf("default radius = %d", got)
	}
	if err := d.SetRadius(20); err != nil {
		t.Fatalf("SetRadius(20): %v", err)
	}
	if err := d.SetRadius(7); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("expected ErrInvalidRadius, got %v", err)
	}
	if got := d.View().SelectedRadius; got != 20 {
		t.Fatalf("invalid radius overwrote selection: %d", got)
	}
}

func TestSearchByRadius(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	gulshan := geo.Position{Latitude: 23.7925, Longitude: 90.4078}

	if err := d.SetRadius(5); err != nil {
		t.Fatal(err)
	}
	if err := d.SearchByRadius(context.Background(), geo.Static(gulshan)); err != nil {
		t.Fatalf("radius search: %v", err)
	}
	v := d.View()
	if got := ids(v.Studios); !reflect.DeepEqual(got, []int{1, 2, 6, 7}) {
		t.Fatalf("within 5 km = %v", got)
	}
	if v.LocationError != nil {
		t.Fatalf("unexpected message %q", *v.LocationError)
	}
	if v.UserLocation == nil || *v.UserLocation != gulshan {
		t.Fatalf("user location not stored: %v", v.UserLocation)
	}

	if err := d.SetRadius(20); err != nil {
		t.Fatal(err)
	}
	d.FilterByRadius()
	if got := d.View().TotalResults; got != 7 {
		t.Fatalf("within 20 km = %d studios, want 7", got)
	}
}

func TestSearchByRadiusEmptyResult(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	farAway := geo.Position{Latitude: 51.5, Longitude: -0.12}

	if err := d.SearchByRadius(context.Background(), geo.Static(farAway)); err != nil {
		t.Fatalf("radius search: %v", err)
	}
	v := d.View()
	if v.TotalResults != 0 || v.TotalPages != 0 {
		t.Fatalf("expected no results, got %d", v.TotalResults)
	}
	if v.LocationError == nil || *v.LocationError != "No studios found within 10 km radius." {
		t.Fatalf("unexpected message %v", v.LocationError)
	}

	// A later successful search clears the message.
	if err := d.SearchByRadius(context.Background(), geo.Static(geo.Position{Latitude: 23.7925, Longitude: 90.4078})); err != nil {
		t.Fatal(err)
	}
	if v := d.View(); v.LocationError != nil {
		t.Fatalf("message not cleared: %q", *v.LocationError)
	}
}

func TestSearchByRadiusFailures(t *testing.T) {
	cases := []struct {
		code geo.ErrorCode
		want string
	}{
		{geo.CodePermissionDenied, "Location access denied by user."},
		{geo.CodePositionUnavailable, "Location information is unavailable."},
		{geo.CodeTimeout, "Location request timed out."},
		{geo.CodeUnknown, "An unknown error occurred."},
	}

	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			d := loadedDirectory(t, sampleCatalog(), 6)
			before := d.View()

			err := d.SearchByRadius(context.Background(), geo.Failing(tc.code))
			if err == nil {
				t.Fatal("expected error")
			}
			v := d.View()
			if v.LocationError == nil || *v.LocationError != tc.want {
				t.Fatalf("message = %v, want %q", v.LocationError, tc.want)
			}
			if v.TotalResults != before.TotalResults || v.UserLocation != nil {
				t.Fatal("failed geolocation changed the active list")
			}
		})
	}
}

func TestSearchByRadiusContextDeadlineIsTimeout(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	blocking := geo.LocatorFunc(func(ctx context.Context) (geo.Position, error) {
		<-ctx.Done()
		return geo.Position{}, ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	if err := d.SearchByRadius(ctx, blocking); err == nil {
		t.Fatal("expected error")
	}
	if v := d.View(); v.LocationError == nil || *v.LocationError != "Location request timed out." {
		t.Fatalf("unexpected message %v", v.LocationError)
	}
}

func TestSearchByRadiusWithoutLocator(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	if err := d.SearchByRadius(context.Background(), nil); !errors.Is(err, ErrGeolocationUnsupported) {
		t.Fatalf("expected ErrGeolocationUnsupported, got %v", err)
	}
	if v := d.View(); v.LocationError == nil || *v.LocationError != "Geolocation is not supported by your browser." {
		t.Fatalf("unexpected message %v", v.LocationError)
	}
}

func TestFilterByRadiusWithoutPositionIsNoop(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	before := d.View()
	d.FilterByRadius()
	if !reflect.DeepEqual(before, d.View()) {
		t.Fatal("FilterByRadius without a position changed state")
	}
}

func TestStudioLookup(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	s, err := d.Studio(3)
	if err != nil || s.Location.Area != "Dhanmondi" {
		t.Fatalf("Studio(3) = %+v, %v", s, err)
	}
	if _, err := d.Studio(99); !errors.Is(err, ErrStudioNotFound) {
		t.Fatalf("expected ErrStudioNotFound, got %v", err)
	}
}

func TestViewIsSnapshot(t *testing.T) {
	d := loadedDirectory(t, sampleCatalog(), 6)
	v := d.View()
	v.Studios[0].Name = "mutated"
	v.Areas[0] = "mutated"

	again := d.View()
	if again.Studios[0].Name == "mutated" || again.Areas[0] == "mutated" {
		t.Fatal("view shares memory with the directory")
	}
}
