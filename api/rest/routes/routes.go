package routes

import (
	"net/http"

	"carbon-planner/api/rest/handlers"
	"carbon-planner/core/monitoring"
	"carbon-planner/core/planning"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes. metrics may be nil to disable /metrics
// and the dashboard.
func SetupRoutes(r *mux.Router, service *planning.Service, metrics *monitoring.MetricsExporter, costTracker *monitoring.CostTracker) {
	projectHandler := handlers.NewProjectHandler(service)
	planningHandler := handlers.NewPlanningHandler(service)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/v1").Subrouter()

	// Inline documents
	api.HandleFunc("/estimate", planningHandler.Estimate).Methods("POST")
	api.HandleFunc("/plan", planningHandler.Plan).Methods("POST")
	api.HandleFunc("/audit", planningHandler.ListAudit).Methods("GET")

	// Stored projects
	api.HandleFunc("/projects", projectHandler.CreateProject).Methods("POST")
	api.HandleFunc("/projects", projectHandler.ListProjects).Methods("GET")
	api.HandleFunc("/projects/{id}", projectHandler.GetProject).Methods("GET")
	api.HandleFunc("/projects/{id}", projectHandler.UpdateProject).Methods("PUT")
	api.HandleFunc("/projects/{id}/estimate", projectHandler.EstimateProject).Methods("GET")
	api.HandleFunc("/projects/{id}/plan", projectHandler.PlanProject).Methods("GET")
	api.HandleFunc("/projects/{id}/runs", projectHandler.RunProject).Methods("POST")
	api.HandleFunc("/projects/{id}/runs", projectHandler.ListRuns).Methods("GET")

	if costTracker != nil {
		dashboardHandler := handlers.NewDashboardHandler(costTracker)
		api.HandleFunc("/dashboard", dashboardHandler.GetCostMetrics).Methods("GET")
	}
}
