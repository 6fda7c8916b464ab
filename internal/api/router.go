package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RouterConfig configures the middleware stack around the API handlers.
type RouterConfig struct {
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int
	Logger         *zap.Logger
}

// NewRouter mounts the API handlers and /metrics on a chi mux wrapped in the
// request ID, recovery, metrics, rate limit and logging middleware.
func NewRouter(si ServerInterface, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := chi.NewMux()
	mux.Use(requestIDMiddleware)
	mux.Use(middleware.Recoverer)
	mux.Use(metricsMiddleware)
	mux.Use(rateLimitMiddleware(rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst)))
	mux.Use(loggingMiddleware(logger))

	mux.Handle("/metrics", promhttp.Handler())

	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter:       mux,
		ErrorHandlerFunc: paramErrorHandler,
	})
}
