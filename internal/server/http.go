package server

import (
	"context"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mathquest/internal/config"
	httperrors "github.com/gokatarajesh/mathquest/pkg/http/errors"
)

// RouteRegistrar mounts a group of routes.
type RouteRegistrar interface {
	Register(mux *http.ServeMux)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewUpgrader returns a WebSocket upgrader that accepts the configured
// origins. Requests without an Origin header are always accepted.
func NewUpgrader(origins []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// NewHTTPServer wires base routes (health, metrics, ping), the WebSocket
// endpoint and every registrar onto one mux. pinger and wsHandler may be nil.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, gatherer prometheus.Gatherer, pinger Pinger, wsHandler http.HandlerFunc, routes ...RouteRegistrar) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				logger.Error().Err(err).Msg("dependency ping failed")
				httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if wsHandler != nil {
		mux.HandleFunc("GET /ws/play", wsHandler)
	} else {
		mux.HandleFunc("GET /ws/play", func(w http.ResponseWriter, r *http.Request) {
			httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeServiceUnavailable, "WebSocket play is not enabled")
		})
	}

	for _, r := range routes {
		r.Register(mux)
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: withMiddleware(cfg.CORS, logger, mux),
	}
}
