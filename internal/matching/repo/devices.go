package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// DevicesRepo resolves FCM device tokens for providers.
type DevicesRepo struct {
	db *sql.DB
}

// NewDevicesRepo constructs a DevicesRepo.
func NewDevicesRepo(db *sql.DB) *DevicesRepo {
	return &DevicesRepo{db: db}
}

// TokenFor returns the provider's most recently registered FCM token.
func (r *DevicesRepo) TokenFor(ctx context.Context, providerID int64) (string, error) {
	var token string
	row := r.db.QueryRowContext(ctx, `
		SELECT fcm_token FROM provider_devices
		WHERE provider_id = ?
		ORDER BY updated_at DESC
		LIMIT 1`, providerID)
	if err := row.Scan(&token); err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("token for provider %d: %w", providerID, err)
	}
	return token, nil
}
