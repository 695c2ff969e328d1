package middleware

import (
	"net/http"
)

// SecurityHeaders adds the response headers a read-only JSON API needs.
// isHTTPS: if true, adds Strict-Transport-Security header
func SecurityHeaders(isHTTPS bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			// Prevent MIME type sniffing
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("Referrer-Policy", "no-referrer")
			// responses are data, never documents
			headers.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
