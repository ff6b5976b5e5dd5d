package server

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/gokatarajesh/mathquest/internal/config"
	httperrors "github.com/gokatarajesh/mathquest/pkg/http/errors"
)

const requestIDHeader = "X-Request-Id"

// withMiddleware wraps next with CORS, the request scoped logger and panic
// recovery. The outermost handler runs first.
func withMiddleware(cfg config.CORS, logger zerolog.Logger, next http.Handler) http.Handler {
	h := WithRecover(next)
	h = hlog.AccessHandler(logAccess)(h)
	h = hlog.URLHandler("url")(h)
	h = hlog.MethodHandler("method")(h)
	h = hlog.RequestIDHandler("request_id", requestIDHeader)(h)
	h = hlog.NewHandler(logger)(h)
	return WithCORS(cfg)(h)
}

// WithCORS answers preflight requests and decorates responses for the
// configured origins.
func WithCORS(cfg config.CORS) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func logAccess(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Debug().
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request handled")
}

// WithRecover turns handler panics into 500 responses.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				hlog.FromRequest(r).Error().Interface("panic", v).Msg("handler panicked")
				httperrors.RespondInternalError(w, "Internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
