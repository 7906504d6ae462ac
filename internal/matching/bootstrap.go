package matching

import (
	"context"

	"khidmaBack/internal/matching/dispatch"
	"khidmaBack/internal/matching/geo"
	matchhttp "khidmaBack/internal/matching/http"
	"khidmaBack/internal/matching/notify"
	"khidmaBack/internal/matching/repo"
	"khidmaBack/internal/matching/ws"
)

type moduleState struct {
	locator       *geo.ProviderLocator
	requestsRepo  *repo.RequestsRepo
	providersRepo *repo.ProvidersRepo
	devicesRepo   *repo.DevicesRepo
	providerHub   *ws.ProviderHub
	notifier      *notify.Fanout
	matcher       *dispatch.Matcher
	server        *matchhttp.Server
	cfgAdapter    dispatch.ConfigAdapter
}

func ensureModule(deps *Deps) (*moduleState, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if deps.module != nil {
		return deps.module, nil
	}

	cfgAdapter := dispatch.ConfigAdapter{SweepInterval: deps.Config.SweepInterval}

	locator := geo.NewProviderLocator(deps.RDB)
	providerHub := ws.NewProviderHub(locator, deps.Logger)

	requestsRepo := repo.NewRequestsRepo(deps.DB)
	providersRepo := repo.NewProvidersRepo(deps.DB)
	devicesRepo := repo.NewDevicesRepo(deps.DB)

	notifier := &notify.Fanout{Socket: providerHub, Logger: deps.Logger}
	if deps.FCM != nil {
		notifier.Push = notify.NewFCMPublisher(deps.FCM, devicesRepo, deps.Logger, deps.Config.PushTimeout)
	}

	matcher := dispatch.New(requestsRepo, providersRepo, locator, notifier, deps.Logger, cfgAdapter)
	server := matchhttp.NewServer(deps.Logger, locator, providersRepo, requestsRepo, providerHub)

	deps.module = &moduleState{
		locator:       locator,
		requestsRepo:  requestsRepo,
		providersRepo: providersRepo,
		devicesRepo:   devicesRepo,
		providerHub:   providerHub,
		notifier:      notifier,
		matcher:       matcher,
		server:        server,
		cfgAdapter:    cfgAdapter,
	}
	return deps.module, nil
}

// Server returns the module's HTTP surface for route registration.
func Server(deps *Deps) (*matchhttp.Server, error) {
	module, err := ensureModule(deps)
	if err != nil {
		return nil, err
	}
	return module.server, nil
}

// StartWorkers launches the background matching sweep.
func StartWorkers(ctx context.Context, deps *Deps) error {
	module, err := ensureModule(deps)
	if err != nil {
		return err
	}
	go module.matcher.Run(ctx)
	return nil
}
