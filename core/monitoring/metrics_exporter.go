package monitoring

import (
	"fmt"
	"strings"

	"ml-orchestrator/core/models"
	"ml-orchestrator/core/orchestrator"
	"ml-orchestrator/core/registry"
)

// MetricsExporter exports engine metrics in Prometheus text format
type MetricsExporter struct {
	orch *orchestrator.Orchestrator
	reg  *registry.ModelRegistry
}

// NewMetricsExporter creates a new metrics exporter
func NewMetricsExporter(orch *orchestrator.Orchestrator, reg *registry.ModelRegistry) *MetricsExporter {
	return &MetricsExporter{orch: orch, reg: reg}
}

// GetPrometheusMetrics renders job and model counters
func (me *MetricsExporter) GetPrometheusMetrics() string {
	counts, queueDepth := me.orch.Counts()

	var b strings.Builder
	b.WriteString("# HELP training_jobs Number of jobs by status\n")
	b.WriteString("# TYPE training_jobs gauge\n")
	for _, status := range []models.JobStatus{
		models.JobStatusQueued,
		models.JobStatusTraining,
		models.JobStatusCompleted,
		models.JobStatusFailed,
	} {
		fmt.Fprintf(&b, "training_jobs{status=%q} %d\n", status, counts[status])
	}

	b.WriteString("# HELP training_queue_depth Jobs waiting in the queue\n")
	b.WriteString("# TYPE training_queue_depth gauge\n")
	fmt.Fprintf(&b, "training_queue_depth %d\n", queueDepth)

	b.WriteString("# HELP trained_models_total Models in the registry\n")
	b.WriteString("# TYPE trained_models_total gauge\n")
	fmt.Fprintf(&b, "trained_models_total %d\n", me.reg.Len())

	return b.String()
}
