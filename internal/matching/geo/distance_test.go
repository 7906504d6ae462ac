package geo

import (
	"math"
	"testing"
)

func TestDistanceKmIdentity(t *testing.T) {
	points := []Point{
		{33.5731, -7.5898},
		{0, 0},
		{-90, 180},
		{51.5074, -0.1278},
	}
	for _, p := range points {
		d := DistanceKm(p.Lat, p.Lon, p.Lat, p.Lon)
		if math.IsNaN(d) {
			t.Fatalf("DistanceKm(%v, %v) returned NaN", p, p)
		}
		if d != 0 {
			t.Fatalf("DistanceKm(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][2]Point{
		{{33.5731, -7.5898}, {34.0209, -6.8416}},
		{{33.60, -7.61}, {34.5, -6.0}},
		{{-33.8688, 151.2093}, {51.5074, -0.1278}},
	}
	for _, pair := range pairs {
		ab := DistanceKm(pair[0].Lat, pair[0].Lon, pair[1].Lat, pair[1].Lon)
		ba := DistanceKm(pair[1].Lat, pair[1].Lon, pair[0].Lat, pair[0].Lon)
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestDistanceKmCasablancaRabat(t *testing.T) {
	// Casablanca center to Rabat center is roughly 85 km as the crow flies.
	d := DistanceKm(33.5731, -7.5898, 34.0209, -6.8416)
	if d < 80 || d > 92 {
		t.Fatalf("Casablanca-Rabat distance = %f km, want ~85", d)
	}
}

func TestValidCoords(t *testing.T) {
	if !ValidCoords(33.5731, -7.5898) {
		t.Fatal("expected valid coords")
	}
	if ValidCoords(91, 0) || ValidCoords(0, -181) {
		t.Fatal("expected out-of-range coords to be rejected")
	}
}
