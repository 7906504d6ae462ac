package dispatch

import (
	"testing"

	"khidmaBack/internal/matching/geo"
)

func TestSelectBestPicksClosestWithinRadius(t *testing.T) {
	origin := geo.Point{Lat: 33.5731, Lon: -7.5898}
	candidates := []Candidate{
		{ProviderID: 1, Position: geo.Point{Lat: 33.60, Lon: -7.61}, RadiusKm: 20},
		{ProviderID: 2, Position: geo.Point{Lat: 34.5, Lon: -6.0}, RadiusKm: 20},
	}

	sel, ok := selectBest(origin.Lat, origin.Lon, candidates)
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.ProviderID != 1 {
		t.Fatalf("selected provider %d, want 1", sel.ProviderID)
	}
	if sel.DistanceKm <= 0 || sel.DistanceKm >= 20 {
		t.Fatalf("unexpected distance %.2f km", sel.DistanceKm)
	}
}

func TestSelectBestRadiusExclusion(t *testing.T) {
	origin := geo.Point{Lat: 33.5731, Lon: -7.5898}
	// The closest candidate will not travel far enough; the farther one will.
	candidates := []Candidate{
		{ProviderID: 1, Position: geo.Point{Lat: 33.60, Lon: -7.61}, RadiusKm: 2},
		{ProviderID: 2, Position: geo.Point{Lat: 33.70, Lon: -7.40}, RadiusKm: 50},
	}

	sel, ok := selectBest(origin.Lat, origin.Lon, candidates)
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.ProviderID != 2 {
		t.Fatalf("selected provider %d, want 2 (1 is outside its own radius)", sel.ProviderID)
	}
}

func TestSelectBestNoMatch(t *testing.T) {
	origin := geo.Point{Lat: 33.5731, Lon: -7.5898}

	if _, ok := selectBest(origin.Lat, origin.Lon, nil); ok {
		t.Fatal("expected no selection for empty candidate set")
	}

	candidates := []Candidate{
		{ProviderID: 1, Position: geo.Point{Lat: 33.60, Lon: -7.61}, RadiusKm: 2},
	}
	if _, ok := selectBest(origin.Lat, origin.Lon, candidates); ok {
		t.Fatal("expected no selection when all candidates exceed their radius")
	}
}

func TestSelectBestDeterministic(t *testing.T) {
	origin := geo.Point{Lat: 33.5731, Lon: -7.5898}
	candidates := []Candidate{
		{ProviderID: 3, Position: geo.Point{Lat: 33.61, Lon: -7.58}, RadiusKm: 20},
		{ProviderID: 1, Position: geo.Point{Lat: 33.60, Lon: -7.61}, RadiusKm: 20},
		{ProviderID: 2, Position: geo.Point{Lat: 33.55, Lon: -7.65}, RadiusKm: 20},
	}

	first, ok := selectBest(origin.Lat, origin.Lon, candidates)
	if !ok {
		t.Fatal("expected a selection")
	}
	for i := 0; i < 50; i++ {
		again, ok := selectBest(origin.Lat, origin.Lon, candidates)
		if !ok || again != first {
			t.Fatalf("selection changed between calls: %+v vs %+v", again, first)
		}
	}
}

func TestSelectBestTieBreakLowestID(t *testing.T) {
	origin := geo.Point{Lat: 33.5731, Lon: -7.5898}
	pos := geo.Point{Lat: 33.60, Lon: -7.61}
	candidates := []Candidate{
		{ProviderID: 9, Position: pos, RadiusKm: 20},
		{ProviderID: 4, Position: pos, RadiusKm: 20},
		{ProviderID: 6, Position: pos, RadiusKm: 20},
	}

	sel, ok := selectBest(origin.Lat, origin.Lon, candidates)
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.ProviderID != 4 {
		t.Fatalf("tie resolved to provider %d, want 4", sel.ProviderID)
	}
}
