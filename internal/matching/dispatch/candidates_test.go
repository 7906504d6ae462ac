package dispatch

import (
	"testing"

	"khidmaBack/internal/matching/geo"
	"khidmaBack/internal/matching/repo"
)

func TestBuildCandidatesAllCombinations(t *testing.T) {
	const service = "Plombier"
	cases := []struct {
		name        string
		available   bool
		offers      bool
		hasPosition bool
		want        bool
	}{
		{"available offering positioned", true, true, true, true},
		{"available offering no position", true, true, false, false},
		{"available wrong service positioned", true, false, true, false},
		{"available wrong service no position", true, false, false, false},
		{"unavailable offering positioned", false, true, true, false},
		{"unavailable offering no position", false, true, false, false},
		{"unavailable wrong service positioned", false, false, true, false},
		{"unavailable wrong service no position", false, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			services := []string{"Electricien"}
			if tc.offers {
				services = append(services, service)
			}
			records := []repo.ProviderRecord{{
				ID:                 7,
				Available:          tc.available,
				AcceptanceRadiusKm: 20,
				Services:           services,
			}}
			positions := map[int64]geo.Point{}
			if tc.hasPosition {
				positions[7] = geo.Point{Lat: 33.6, Lon: -7.61}
			}

			got := buildCandidates(service, records, positions)
			if included := len(got) == 1; included != tc.want {
				t.Fatalf("included = %v, want %v", included, tc.want)
			}
		})
	}
}

func TestBuildCandidatesUnknownServiceType(t *testing.T) {
	records := []repo.ProviderRecord{
		{ID: 1, Available: true, AcceptanceRadiusKm: 20, Services: []string{"Plombier"}},
	}
	positions := map[int64]geo.Point{1: {Lat: 33.6, Lon: -7.61}}

	if got := buildCandidates("Fauconnier", records, positions); len(got) != 0 {
		t.Fatalf("expected no candidates for unknown service type, got %d", len(got))
	}
}
