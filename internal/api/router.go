package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"hrms.service/internal/api/handler"
	"hrms.service/internal/core"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(employees *core.EmployeeService, attendance *core.AttendanceService, dashboard *core.DashboardService) *mux.Router {

	employeeHandler := handler.EmployeeHandler{Service: employees}
	attendanceHandler := handler.AttendanceHandler{Service: attendance, Dashboard: dashboard}
	dashboardHandler := handler.DashboardHandler{Service: dashboard}

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/employees", employeeHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/employees", employeeHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/employees/{id}", employeeHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", employeeHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/attendance", attendanceHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/attendance", attendanceHandler.Mark).Methods(http.MethodPost)
	api.HandleFunc("/attendance/employee/{id}", attendanceHandler.History).Methods(http.MethodGet)

	api.HandleFunc("/dashboard", dashboardHandler.Summary).Methods(http.MethodGet)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	return r
}
