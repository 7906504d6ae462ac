package dispatch

import (
	"khidmaBack/internal/matching/geo"
	"khidmaBack/internal/matching/repo"
)

// Candidate is a provider eligible in principle for a request: available,
// offering the requested service, with a known last position. Distance and
// radius checks happen later, in selection.
type Candidate struct {
	ProviderID int64
	Position   geo.Point
	RadiusKm   float64
}

// buildCandidates merges provider records with last known positions and drops
// every provider that is unavailable, does not offer the requested service
// type, or has no recorded position.
func buildCandidates(serviceType string, records []repo.ProviderRecord, positions map[int64]geo.Point) []Candidate {
	out := make([]Candidate, 0, len(records))
	for _, rec := range records {
		if !rec.Available {
			continue
		}
		if !rec.Offers(serviceType) {
			continue
		}
		pos, ok := positions[rec.ID]
		if !ok {
			continue
		}
		out = append(out, Candidate{ProviderID: rec.ID, Position: pos, RadiusKm: rec.AcceptanceRadiusKm})
	}
	return out
}
