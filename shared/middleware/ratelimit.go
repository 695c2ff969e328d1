package middleware

import (
	"net/http"

	"github.com/itchan-dev/vault/shared/logger"
	"github.com/itchan-dev/vault/shared/middleware/ratelimiter"
	"github.com/itchan-dev/vault/shared/utils"
)

// RateLimit rejects requests once the key returned by identify has spent its bucket.
func RateLimit(l *ratelimiter.Limiter, identify func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := identify(r)
			if err != nil {
				logger.FromContext(r.Context()).Warn("can't identify client for rate limiting", "error", err)
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
			if !l.Allow(key) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ByIP keys requests by client address.
func ByIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}

// Global puts every request in one bucket.
func Global(*http.Request) (string, error) {
	return "global", nil
}
