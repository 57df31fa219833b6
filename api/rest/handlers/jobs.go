package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ml-orchestrator/core/models"
	"ml-orchestrator/core/orchestrator"
	"ml-orchestrator/core/repository"

	"github.com/gorilla/mux"
)

// JobHandler handles training-job HTTP requests
type JobHandler struct {
	orch      *orchestrator.Orchestrator
	eventRepo *repository.EventRepository
}

// NewJobHandler creates a new job handler; eventRepo may be nil when the
// engine runs without a database.
func NewJobHandler(orch *orchestrator.Orchestrator, eventRepo *repository.EventRepository) *JobHandler {
	return &JobHandler{orch: orch, eventRepo: eventRepo}
}

// SubmitJobRequest represents the request to submit a training job
type SubmitJobRequest struct {
	ModelName       string                 `json:"model_name"`
	Algorithm       string                 `json:"algorithm"`
	Hyperparameters map[string]interface{} `json:"hyperparameters"`
	Dataset         DatasetPayload         `json:"dataset"`
}

// DatasetPayload carries the tabular training data
type DatasetPayload struct {
	Features     [][]float64 `json:"features"`
	Labels       []float64   `json:"labels"`
	FeatureNames []string    `json:"feature_names"`
	TargetColumn string      `json:"target_column"`
}

// SubmitJobResponse represents the response after submitting a job
type SubmitJobResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitJob handles POST /v1/jobs
func (h *JobHandler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var req SubmitJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	jobID, err := h.orch.Submit(models.TrainingConfig{
		ModelName: req.ModelName,
		Algorithm: req.Algorithm,
		Dataset: &models.Dataset{
			Features:     req.Dataset.Features,
			Labels:       req.Dataset.Labels,
			FeatureNames: req.Dataset.FeatureNames,
			TargetColumn: req.Dataset.TargetColumn,
		},
		Hyperparameters: req.Hyperparameters,
	})
	if err != nil {
		if errors.Is(err, models.ErrUnknownAlgorithm) || errors.Is(err, models.ErrInvalidTrainingData) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to submit job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := SubmitJobResponse{
		ID:        jobID,
		Status:    string(models.JobStatusQueued),
		CreatedAt: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// GetJob handles GET /v1/jobs/{id}
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	job, err := h.orch.GetStatus(jobID)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	response := map[string]interface{}{
		"id":               job.ID,
		"model_name":       job.ModelName,
		"algorithm":        job.Algorithm,
		"status":           job.Status,
		"progress_percent": job.ProgressPercent,
		"current_stage":    job.CurrentStage,
		"step":             job.Step,
		"total_steps":      job.TotalSteps,
		"created_at":       job.CreatedAt,
		"started_at":       job.StartedAt,
		"finished_at":      job.FinishedAt,
	}
	if job.LastMetrics != nil {
		response["metrics"] = job.LastMetrics
	}
	if job.Error != "" {
		response["error"] = job.Error
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// CancelJob handles POST /v1/jobs/{id}/cancel
func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	if err := h.orch.Cancel(jobID); err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, models.ErrJobNotQueued) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to cancel job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": jobID, "status": "cancelled"})
}

// GetJobEvents handles GET /v1/jobs/{id}/events
func (h *JobHandler) GetJobEvents(w http.ResponseWriter, r *http.Request) {
	if h.eventRepo == nil {
		http.Error(w, "Event history not available", http.StatusNotImplemented)
		return
	}

	jobID := mux.Vars(r)["id"]
	events, err := h.eventRepo.GetJobEvents(jobID, 100)
	if err != nil {
		http.Error(w, "Failed to load events: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"job_id": jobID, "events": events})
}
