package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/vault/backend/internal/setup"
	mw "github.com/itchan-dev/vault/shared/middleware"
	"github.com/itchan-dev/vault/shared/middleware/metrics"
)

// New creates the chi router with every archive route.
// Probes and /metrics sit outside the rate limits.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", mw.RequestIDHeader},
		ExposedHeaders: []string{mw.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeaders(deps.Config.Public.IsHTTPS))

	h := deps.Handler

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if deps.PerIPLimiter != nil {
			r.Use(mw.RateLimit(deps.PerIPLimiter, mw.ByIP))
		}
		if deps.GlobalLimiter != nil {
			r.Use(mw.RateLimit(deps.GlobalLimiter, mw.Global))
		}

		r.Get("/thread/{page}", h.GetThreads)
		r.Get("/post/{threadId}/{page}", h.GetPosts)
		r.Get("/comment/{postId}/{page}", h.GetComments)
		r.Get("/user/{lookupKind}/{lookupValue}/{page}", h.GetUser)
		r.Get("/admin_log/{category}/{page}", h.GetAdminLogs)
	})

	return r
}
