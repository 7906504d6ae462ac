package matchhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"khidmaBack/internal/matching/dispatch"
	"khidmaBack/internal/matching/geo"
	"khidmaBack/internal/matching/repo"
	"khidmaBack/internal/matching/ws"
)

// Server exposes the matcher's operational endpoints: health, the provider
// websocket, location/availability ingest, and a view of unmatched demand.
type Server struct {
	logger        dispatch.Logger
	locator       *geo.ProviderLocator
	providersRepo *repo.ProvidersRepo
	requestsRepo  *repo.RequestsRepo
	providerHub   *ws.ProviderHub
}

// NewServer constructs Server.
func NewServer(logger dispatch.Logger, locator *geo.ProviderLocator, providers *repo.ProvidersRepo, requests *repo.RequestsRepo, hub *ws.ProviderHub) *Server {
	return &Server{
		logger:        logger,
		locator:       locator,
		providersRepo: providers,
		requestsRepo:  requests,
		providerHub:   hub,
	}
}

// Health reports process liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ProviderWS upgrades a provider connection onto the hub.
func (s *Server) ProviderWS(w http.ResponseWriter, r *http.Request) {
	s.providerHub.ServeWS(w, r)
}

// LocationPing records a provider position sample. HTTP fallback for
// providers without an open websocket.
func (s *Server) LocationPing(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProviderID int64   `json:"provider_id"`
		Lat        float64 `json:"lat"`
		Lon        float64 `json:"lon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if payload.ProviderID == 0 {
		writeError(w, http.StatusBadRequest, "provider_id is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.locator.UpdatePosition(ctx, payload.ProviderID, payload.Lat, payload.Lon); err != nil {
		s.logger.Errorf("location ping for provider %d failed: %v", payload.ProviderID, err)
		writeError(w, http.StatusBadRequest, "invalid coordinates")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetAvailability flips the provider availability flag. Going unavailable
// also removes the position so stale samples cannot resurface on toggle.
func (s *Server) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProviderID int64 `json:"provider_id"`
		Available  bool  `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if payload.ProviderID == 0 {
		writeError(w, http.StatusBadRequest, "provider_id is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := s.providersRepo.SetAvailability(ctx, payload.ProviderID, payload.Available); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "provider not found")
			return
		}
		s.logger.Errorf("set availability for provider %d failed: %v", payload.ProviderID, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !payload.Available {
		if err := s.locator.GoOffline(ctx, payload.ProviderID); err != nil {
			s.logger.Errorf("go offline for provider %d failed: %v", payload.ProviderID, err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetRequest returns a single request by id, assigned or not.
func (s *Server) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get(":id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	req, err := s.requestsRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "request not found")
			return
		}
		s.logger.Errorf("get request %d failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	body := map[string]interface{}{
		"id":           req.ID,
		"service_type": req.ServiceType,
		"status":       req.Status,
		"price":        req.Price,
	}
	if req.ProviderID.Valid {
		body["provider_id"] = req.ProviderID.Int64
	}
	if req.DistanceKm.Valid {
		body["distance_km"] = req.DistanceKm.Float64
	}
	writeJSON(w, http.StatusOK, body)
}

// PendingRequests lists requests still waiting for a provider.
func (s *Server) PendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	requests, err := s.requestsRepo.ListPendingWithOrigin(ctx)
	if err != nil {
		s.logger.Errorf("list pending requests failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	type item struct {
		ID          int64   `json:"id"`
		ServiceType string  `json:"service_type"`
		Lat         float64 `json:"lat"`
		Lon         float64 `json:"lon"`
		Price       float64 `json:"price"`
		CreatedAt   string  `json:"created_at"`
	}
	out := make([]item, 0, len(requests))
	for _, req := range requests {
		out = append(out, item{
			ID:          req.ID,
			ServiceType: req.ServiceType,
			Lat:         req.Lat.Float64,
			Lon:         req.Lon.Float64,
			Price:       req.Price,
			CreatedAt:   req.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(out), "requests": out})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
