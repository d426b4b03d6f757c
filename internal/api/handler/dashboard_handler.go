package handler

import (
	"net/http"

	"hrms.service/internal/core"
)

type DashboardHandler struct {
	Service *core.DashboardService
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "Dashboard data retrieved successfully", summary)
}
