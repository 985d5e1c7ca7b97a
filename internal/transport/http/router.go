// Package httptransport assembles the HTTP surface: routes, middleware order
// and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recadastro/internal/arquivo"
	"recadastro/internal/messages"
	"recadastro/internal/platform/metrics"
	"recadastro/internal/platform/middleware"
	"recadastro/internal/recad"
)

// Deps collects everything the router mounts. Optional fields may be nil and
// their routes or middleware are skipped.
type Deps struct {
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	SessionParser middleware.TokenParser

	Recad    *recad.Handler
	Arquivo  *arquivo.Handler
	Messages *messages.Handler

	Health *HealthChecker
}

// NewRouter wires the middleware chain and all public endpoints. Order
// matters: recovery outermost, then correlation and timing, then logging and
// metrics around the session decode and the handlers.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Latency(deps.Metrics))
	}
	if deps.SessionParser != nil {
		r.Use(middleware.Session(deps.SessionParser, deps.Logger))
	}

	if deps.Recad != nil {
		deps.Recad.Register(r)
	}
	if deps.Arquivo != nil {
		deps.Arquivo.Register(r)
	}
	if deps.Messages != nil {
		deps.Messages.Register(r)
	}

	r.Handle("/metrics", promhttp.Handler())
	if deps.Health != nil {
		r.Get("/healthz", deps.Health.handle)
	}

	return r
}
