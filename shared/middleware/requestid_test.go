package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/itchan-dev/vault/shared/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		logger.FromContext(r.Context()).Info("inside")
	}))

	t.Run("generates an id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, incoming, seen)
		assert.Equal(t, incoming, rr.Header().Get(RequestIDHeader))
	})

	t.Run("replaces a malformed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "'; drop table")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.NotEqual(t, "'; drop table", seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("request logger carries the id", func(t *testing.T) {
		var buf bytes.Buffer
		logger.InitializeTo(&buf, "info", false)
		t.Cleanup(func() { logger.Initialize("info", false) })

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Contains(t, buf.String(), "request_id="+seen)
	})
}
