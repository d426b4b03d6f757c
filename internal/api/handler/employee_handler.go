package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"hrms.service/internal/core"
)

type EmployeeHandler struct {
	Service *core.EmployeeService
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "Employees retrieved successfully", employees)
}

func (h *EmployeeHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in core.RegisterEmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	emp, err := h.Service.Register(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusCreated, "Employee created successfully", emp)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "Employee retrieved successfully", emp)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "Employee deleted successfully", nil)
}
