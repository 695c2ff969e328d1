package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/itchan-dev/vault/shared/logger"
)

const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID tags every request with an id, taken from the incoming header
// when it parses as a uuid, and attaches a logger carrying it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		ctx = logger.WithContext(ctx, logger.Log.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
