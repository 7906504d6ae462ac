package dispatch

import "khidmaBack/internal/matching/geo"

// Selection is the outcome of picking a provider for one request.
type Selection struct {
	ProviderID int64
	DistanceKm float64
}

// selectBest computes the distance from the request origin to each candidate,
// discards candidates farther than their own acceptance radius, and picks the
// closest remaining one. Equal distances resolve to the lowest provider id so
// the result is deterministic for identical inputs.
func selectBest(originLat, originLon float64, candidates []Candidate) (Selection, bool) {
	var best Selection
	found := false
	for _, c := range candidates {
		d := geo.DistanceKm(originLat, originLon, c.Position.Lat, c.Position.Lon)
		if d > c.RadiusKm {
			continue
		}
		switch {
		case !found:
			best = Selection{ProviderID: c.ProviderID, DistanceKm: d}
			found = true
		case d < best.DistanceKm:
			best = Selection{ProviderID: c.ProviderID, DistanceKm: d}
		case d == best.DistanceKm && c.ProviderID < best.ProviderID:
			best.ProviderID = c.ProviderID
		}
	}
	return best, found
}
