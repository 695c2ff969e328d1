package handler

import (
	"net/http"

	"github.com/itchan-dev/vault/shared/utils"
)

// GetComments serves GET /comment/{postId}/{page}.
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	postId, err := parseIntParam(r, "postId")
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

	resp, err := h.comment.List(requestContext(r), postId, page, cutoff)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	utils.WriteJSON(w, r, resp)
}
