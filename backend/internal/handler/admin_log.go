package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/vault/shared/domain"
	"github.com/itchan-dev/vault/shared/utils"
)

// GetAdminLogs serves GET /admin_log/{category}/{page}.
func (h *Handler) GetAdminLogs(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if err := h.validateEnum(category, "category", "post user bawu"); err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	hide, err := parseBoolQuery(r, "hide_incident_windows")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	resp, err := h.adminLog.List(requestContext(r), domain.AdminLogCategory(category), page, hide)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	utils.WriteJSON(w, r, resp)
}
