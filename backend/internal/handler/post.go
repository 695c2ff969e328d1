package handler

import (
	"net/http"

	"github.com/itchan-dev/vault/shared/utils"
)

// GetPosts serves GET /post/{threadId}/{page}.
func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(r, "threadId")
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

	resp, err := h.post.List(requestContext(r), threadId, page, cutoff)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	utils.WriteJSON(w, r, resp)
}
