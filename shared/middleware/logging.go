package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/itchan-dev/vault/shared/logger"
	"github.com/itchan-dev/vault/shared/utils"
)

// RequestLogger logs one line per finished request. Server errors are
// logged at warn level here; the handler has already logged their cause.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.Status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		ip, _ := utils.GetIP(r)
		logger.FromContext(r.Context()).Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", rec.Status,
			"bytes", rec.Bytes,
			"duration", time.Since(start),
			"ip", ip,
		)
	})
}
