package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
	"github.com/itchan-dev/vault/shared/timemachine"
)

// parseIntParam parses an integer path parameter and returns a meaningful error
func parseIntParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, internal_errors.BadRequest("invalid %s: must be an integer", name)
	}
	return val, nil
}

// parsePage reads the 1-based page path parameter. Pages below 1 are left
// to pagination, which reports them as not found.
func parsePage(r *http.Request) (int, error) {
	page, err := parseIntParam(r, "page")
	if err != nil {
		return 0, err
	}
	return int(page), nil
}

func (h *Handler) parseCutoff(r *http.Request) (*time.Time, error) {
	return timemachine.ParseCutoff(r.URL.Query().Get(timemachine.QueryParam), h.loc)
}

func parseBoolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, internal_errors.BadRequest("invalid %s: must be a boolean", name)
	}
	return val, nil
}

// validateEnum checks a path value against a validator oneof list.
func (h *Handler) validateEnum(value, name, allowed string) error {
	if err := h.validate.Var(value, "required,oneof="+allowed); err != nil {
		return internal_errors.Unprocessable("invalid %s %q: must be one of %s", name, value, allowed)
	}
	return nil
}
