package dispatch

import (
	"context"
	"errors"
	"time"

	"khidmaBack/internal/matching/geo"
	"khidmaBack/internal/matching/notify"
	"khidmaBack/internal/matching/repo"
)

// Logger is a minimal logger interface required by the matcher.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Config holds the required configuration subset.
type Config interface {
	GetSweepInterval() time.Duration
}

// RequestsRepository provides the request reads and the guarded assignment
// write the sweep needs.
type RequestsRepository interface {
	ListPendingWithOrigin(ctx context.Context) ([]repo.ServiceRequest, error)
	TryAssign(ctx context.Context, requestID, providerID int64, distanceKm float64) (bool, error)
}

// ProvidersRepository lists provider availability records for a service type.
type ProvidersRepository interface {
	ListOffering(ctx context.Context, serviceType string) ([]repo.ProviderRecord, error)
}

// PositionSource resolves last known positions for a set of providers.
type PositionSource interface {
	Positions(ctx context.Context, ids []int64) (map[int64]geo.Point, error)
}

// Notifier publishes an assignment notice to the winning provider.
type Notifier interface {
	NotifyAssignment(providerID int64, a notify.Assignment)
}

// Matcher performs the periodic sweep pairing pending requests with the
// closest eligible provider.
type Matcher struct {
	requests  RequestsRepository
	providers ProvidersRepository
	positions PositionSource
	notifier  Notifier
	logger    Logger
	cfg       Config
}

// New creates a matcher instance.
func New(requests RequestsRepository, providers ProvidersRepository, positions PositionSource, notifier Notifier, logger Logger, cfg Config) *Matcher {
	return &Matcher{requests: requests, providers: providers, positions: positions, notifier: notifier, logger: logger, cfg: cfg}
}

// Run starts the sweep loop and blocks until ctx is cancelled. No new sweep
// starts after cancellation; the in-flight one is allowed to finish.
func (m *Matcher) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.GetSweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(ctx)
		}
	}
}

// sweep attempts to match every pending request once. Failures are contained
// at request granularity: a request that cannot be matched this tick stays
// pending and is retried on the next one.
func (m *Matcher) sweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("matching: sweep panic recovered: %v", r)
		}
	}()

	requests, err := m.requests.ListPendingWithOrigin(ctx)
	if err != nil {
		m.logger.Errorf("matching: list pending requests failed: %v", err)
		return
	}
	if len(requests) == 0 {
		return
	}

	for _, req := range requests {
		if err := m.processRequest(ctx, req); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.logger.Errorf("matching: request %d failed: %v", req.ID, err)
		}
	}
}

func (m *Matcher) processRequest(ctx context.Context, req repo.ServiceRequest) error {
	records, err := m.providers.ListOffering(ctx, req.ServiceType)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	positions, err := m.positions.Positions(ctx, ids)
	if err != nil {
		return err
	}

	candidates := buildCandidates(req.ServiceType, records, positions)
	sel, ok := selectBest(req.Lat.Float64, req.Lon.Float64, candidates)
	if !ok {
		return nil
	}

	assigned, err := m.requests.TryAssign(ctx, req.ID, sel.ProviderID, sel.DistanceKm)
	if err != nil {
		return err
	}
	if !assigned {
		// Someone moved the request out of pending between the scan and the
		// commit. Expected outcome, not an error.
		return nil
	}

	m.logger.Infof("matching: request %d assigned to provider %d at %.2f km", req.ID, sel.ProviderID, sel.DistanceKm)
	m.notifier.NotifyAssignment(sel.ProviderID, notify.Assignment{
		RequestID:  req.ID,
		Price:      req.Price,
		Address:    req.Address.String,
		DistanceKm: sel.DistanceKm,
	})
	return nil
}

// ConfigAdapter allows MatchConfig to satisfy the Config interface.
type ConfigAdapter struct {
	SweepInterval time.Duration
}

// GetSweepInterval returns the delay between sweeps.
func (c ConfigAdapter) GetSweepInterval() time.Duration { return c.SweepInterval }
