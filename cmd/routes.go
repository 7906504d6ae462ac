package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	// Websocket upgrades must not get a forced JSON content type.
	wsMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)

	mux := pat.New()

	mux.Get("/health", standardMiddleware.ThenFunc(app.matchServer.Health))
	mux.Get("/ws/provider", wsMiddleware.ThenFunc(app.matchServer.ProviderWS))
	mux.Post("/provider/location", standardMiddleware.ThenFunc(app.matchServer.LocationPing))
	mux.Post("/provider/availability", standardMiddleware.ThenFunc(app.matchServer.SetAvailability))
	mux.Get("/matching/pending", standardMiddleware.ThenFunc(app.matchServer.PendingRequests))
	mux.Get("/matching/requests/:id", standardMiddleware.ThenFunc(app.matchServer.GetRequest))

	return mux
}
