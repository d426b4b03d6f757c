package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"hrms.service/internal/core"
	"hrms.service/internal/core/model"
)

type AttendanceHandler struct {
	Service   *core.AttendanceService
	Dashboard *core.DashboardService
}

// List returns all records, or just one date's when ?date=YYYY-MM-DD is given.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	var date *model.Date
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			respondBadRequest(w, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	records, err := h.Service.List(r.Context(), date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "Attendance records retrieved successfully", records)
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var in core.MarkAttendanceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	rec, err := h.Service.Mark(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusCreated, "Attendance marked successfully", rec)
}

// History returns one employee's records with lifetime totals.
func (h *AttendanceHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.Dashboard.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "Employee attendance retrieved successfully", history)
}
