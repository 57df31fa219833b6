package routes

import (
	"ml-orchestrator/api/rest/handlers"
	"ml-orchestrator/core/monitoring"
	"ml-orchestrator/core/orchestrator"
	"ml-orchestrator/core/plan"
	"ml-orchestrator/core/registry"
	"ml-orchestrator/core/repository"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes. eventRepo may be nil when the
// engine runs without a database.
func SetupRoutes(
	r *mux.Router,
	orch *orchestrator.Orchestrator,
	reg *registry.ModelRegistry,
	plans *plan.Registry,
	eventRepo *repository.EventRepository,
) {
	jobHandler := handlers.NewJobHandler(orch, eventRepo)
	modelHandler := handlers.NewModelHandler(reg)
	exporter := monitoring.NewMetricsExporter(orch, reg)
	dashboardHandler := handlers.NewDashboardHandler(orch, reg, plans, exporter)

	api := r.PathPrefix("/v1").Subrouter()

	// Job endpoints
	api.HandleFunc("/jobs", jobHandler.SubmitJob).Methods("POST")
	api.HandleFunc("/jobs/{id}", jobHandler.GetJob).Methods("GET")
	api.HandleFunc("/jobs/{id}/cancel", jobHandler.CancelJob).Methods("POST")
	api.HandleFunc("/jobs/{id}/events", jobHandler.GetJobEvents).Methods("GET")

	// Model endpoints
	api.HandleFunc("/models", modelHandler.ListModels).Methods("GET")
	api.HandleFunc("/models/{id}", modelHandler.GetModel).Methods("GET")
	api.HandleFunc("/models/{id}/predict", modelHandler.Predict).Methods("POST")

	// Dashboard and metrics
	api.HandleFunc("/dashboard/summary", dashboardHandler.GetSummary).Methods("GET")
	r.HandleFunc("/metrics", dashboardHandler.GetMetrics).Methods("GET")
}
