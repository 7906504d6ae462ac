package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ProviderRecord represents a provider availability record together with the
// service types the provider offers.
type ProviderRecord struct {
	ID                 int64
	Available          bool
	AcceptanceRadiusKm float64
	Services           []string
}

// Offers reports whether the provider offers the given service type.
func (p ProviderRecord) Offers(serviceType string) bool {
	for _, s := range p.Services {
		if s == serviceType {
			return true
		}
	}
	return false
}

// ProvidersRepo provides access to provider data.
type ProvidersRepo struct {
	db *sql.DB
}

// NewProvidersRepo constructs a ProvidersRepo.
func NewProvidersRepo(db *sql.DB) *ProvidersRepo {
	return &ProvidersRepo{db: db}
}

// ListOffering returns all providers offering the given service type,
// regardless of availability. An unknown service type yields an empty list.
func (r *ProvidersRepo) ListOffering(ctx context.Context, serviceType string) ([]ProviderRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.available, p.acceptance_radius_km, GROUP_CONCAT(ps.service_type) AS services
		FROM providers p
		JOIN provider_services ps ON ps.provider_id = p.id
		WHERE p.id IN (SELECT provider_id FROM provider_services WHERE service_type = ?)
		GROUP BY p.id, p.available, p.acceptance_radius_km
		ORDER BY p.id`, serviceType)
	if err != nil {
		return nil, fmt.Errorf("list providers for %q: %w", serviceType, err)
	}
	defer rows.Close()

	var out []ProviderRecord
	for rows.Next() {
		var rec ProviderRecord
		var services sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Available, &rec.AcceptanceRadiusKm, &services); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		if services.Valid && services.String != "" {
			rec.Services = strings.Split(services.String, ",")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SetAvailability flips a provider's availability flag.
func (r *ProvidersRepo) SetAvailability(ctx context.Context, providerID int64, available bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE providers SET available = ? WHERE id = ?`, available, providerID)
	if err != nil {
		return fmt.Errorf("set availability for provider %d: %w", providerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// MySQL reports zero rows when the flag already had this value, so
		// distinguish a no-op update from a missing provider.
		var exists int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM providers WHERE id = ?`, providerID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
