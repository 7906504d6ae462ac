package geo

import (
	"context"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"
)

const positionsKey = "providers:positions"

// ProviderLocator keeps provider last-known positions in a Redis GEO set.
// Only the most recent sample per provider is retained; a provider absent
// from the set has no known position.
type ProviderLocator struct {
	rdb *redis.Client
}

// NewProviderLocator creates a new locator.
func NewProviderLocator(rdb *redis.Client) *ProviderLocator {
	return &ProviderLocator{rdb: rdb}
}

func memberName(providerID int64) string {
	return fmt.Sprintf("provider:%d", providerID)
}

// UpdatePosition validates input and stores the provider's latest position.
func (l *ProviderLocator) UpdatePosition(ctx context.Context, providerID int64, lat, lon float64) error {
	if !ValidCoords(lat, lon) {
		return fmt.Errorf("UpdatePosition: invalid coords lat=%.8f lon=%.8f", lat, lon)
	}
	if math.Abs(lat) < 1e-4 && math.Abs(lon) < 1e-4 {
		return fmt.Errorf("UpdatePosition: near-zero coords lat=%.8f lon=%.8f", lat, lon)
	}
	return l.rdb.GeoAdd(ctx, positionsKey, &redis.GeoLocation{
		Name:      memberName(providerID),
		Longitude: lon,
		Latitude:  lat,
	}).Err()
}

// GoOffline removes the provider's position so it can no longer be matched.
func (l *ProviderLocator) GoOffline(ctx context.Context, providerID int64) error {
	return l.rdb.ZRem(ctx, positionsKey, memberName(providerID)).Err()
}

// Positions returns the last known position for each of the given providers.
// Providers with no recorded position are simply absent from the result.
func (l *ProviderLocator) Positions(ctx context.Context, ids []int64) (map[int64]Point, error) {
	if len(ids) == 0 {
		return map[int64]Point{}, nil
	}
	members := make([]string, len(ids))
	for i, id := range ids {
		members[i] = memberName(id)
	}
	pos, err := l.rdb.GeoPos(ctx, positionsKey, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("locator positions: %w", err)
	}
	out := make(map[int64]Point, len(ids))
	for i, p := range pos {
		if p == nil {
			continue
		}
		out[ids[i]] = Point{Lat: p.Latitude, Lon: p.Longitude}
	}
	return out, nil
}
