package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
	"github.com/itchan-dev/vault/shared/utils"
)

// GetUser serves GET /user/{lookupKind}/{lookupValue}/{page}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "lookupKind")
	if err := h.validateEnum(kind, "lookup kind", "id username nickname avatar"); err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	value, err := lookupValue(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	cutoff, err := h.parseCutoff(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	resp, err := h.user.Get(requestContext(r), domain.UserLookup(kind), value, page, cutoff)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	utils.WriteJSON(w, r, resp)
}

// lookupValue returns the decoded value segment. chi matches on the raw path
// when the request escaped a slash, and then hands the segment back escaped.
func lookupValue(r *http.Request) (string, error) {
	value := chi.URLParam(r, "lookupValue")
	if r.URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", internal_errors.BadRequest("invalid lookup value %q", value)
	}
	return decoded, nil
}
