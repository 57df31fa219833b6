package handlers

import (
	"encoding/json"
	"net/http"

	"ml-orchestrator/core/monitoring"
	"ml-orchestrator/core/orchestrator"
	"ml-orchestrator/core/plan"
	"ml-orchestrator/core/registry"
)

// DashboardHandler serves engine summary stats for the UI
type DashboardHandler struct {
	orch     *orchestrator.Orchestrator
	registry *registry.ModelRegistry
	plans    *plan.Registry
	exporter *monitoring.MetricsExporter
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	orch *orchestrator.Orchestrator,
	reg *registry.ModelRegistry,
	plans *plan.Registry,
	exporter *monitoring.MetricsExporter,
) *DashboardHandler {
	return &DashboardHandler{
		orch:     orch,
		registry: reg,
		plans:    plans,
		exporter: exporter,
	}
}

// GetSummary handles GET /v1/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	counts, queueDepth := h.orch.Counts()

	statusCounts := make(map[string]int, len(counts))
	for status, n := range counts {
		statusCounts[string(status)] = n
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobs_by_status": statusCounts,
		"queue_depth":    queueDepth,
		"trained_models": h.registry.Len(),
		"algorithms":     h.plans.Algorithms(),
	})
}

// GetMetrics handles GET /metrics
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.Write([]byte(h.exporter.GetPrometheusMetrics()))
}
