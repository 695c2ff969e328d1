package handler

import (
	"net/http"

	"github.com/itchan-dev/vault/shared/utils"
)

// GetThreads serves GET /thread/{page}.
func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
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
	keyword := r.URL.Query().Get("keyword")

	resp, err := h.thread.List(requestContext(r), page, cutoff, keyword)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	utils.WriteJSON(w, r, resp)
}
