package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Service request statuses touched by the matcher. The full lifecycle is
// owned by the request flow; the sweep only moves pending to assigned.
const (
	StatusPending  = "pending"
	StatusAssigned = "assigned"
)

// ServiceRequest represents the service_requests table.
type ServiceRequest struct {
	ID          int64
	ServiceType string
	ClientID    int64
	ProviderID  sql.NullInt64
	Status      string
	Lat         sql.NullFloat64
	Lon         sql.NullFloat64
	DistanceKm  sql.NullFloat64
	Price       float64
	Address     sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RequestsRepo provides access to service request data.
type RequestsRepo struct {
	db *sql.DB
}

// NewRequestsRepo constructs a RequestsRepo.
func NewRequestsRepo(db *sql.DB) *RequestsRepo {
	return &RequestsRepo{db: db}
}

// ListPendingWithOrigin returns all pending requests that already have origin
// coordinates. Requests without coordinates are not eligible for matching.
func (r *RequestsRepo) ListPendingWithOrigin(ctx context.Context) ([]ServiceRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, service_type, client_id, provider_id, status, lat, lon, distance_km, price, address, created_at, updated_at
		FROM service_requests
		WHERE status = ? AND lat IS NOT NULL AND lon IS NOT NULL
		ORDER BY created_at`, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	var out []ServiceRequest
	for rows.Next() {
		var req ServiceRequest
		if err := rows.Scan(&req.ID, &req.ServiceType, &req.ClientID, &req.ProviderID, &req.Status,
			&req.Lat, &req.Lon, &req.DistanceKm, &req.Price, &req.Address, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pending request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// Get fetches a request by id.
func (r *RequestsRepo) Get(ctx context.Context, id int64) (ServiceRequest, error) {
	var req ServiceRequest
	row := r.db.QueryRowContext(ctx, `
		SELECT id, service_type, client_id, provider_id, status, lat, lon, distance_km, price, address, created_at, updated_at
		FROM service_requests WHERE id = ?`, id)
	err := row.Scan(&req.ID, &req.ServiceType, &req.ClientID, &req.ProviderID, &req.Status,
		&req.Lat, &req.Lon, &req.DistanceKm, &req.Price, &req.Address, &req.CreatedAt, &req.UpdatedAt)
	if err == sql.ErrNoRows {
		return ServiceRequest{}, ErrNotFound
	}
	if err != nil {
		return ServiceRequest{}, err
	}
	return req, nil
}

// TryAssign moves a request from pending to assigned in one conditional
// update. It returns false when the request was no longer pending at commit
// time, which callers treat as a lost race rather than an error.
func (r *RequestsRepo) TryAssign(ctx context.Context, requestID, providerID int64, distanceKm float64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE service_requests
		SET provider_id = ?, status = ?, distance_km = ?, updated_at = NOW()
		WHERE id = ? AND status = ?`,
		providerID, StatusAssigned, distanceKm, requestID, StatusPending)
	if err != nil {
		return false, fmt.Errorf("assign request %d: %w", requestID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("assign request %d: rows affected: %w", requestID, err)
	}
	return affected == 1, nil
}
