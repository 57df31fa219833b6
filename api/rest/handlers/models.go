package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"ml-orchestrator/core/registry"

	"github.com/gorilla/mux"
)

// ModelHandler handles trained-model HTTP requests
type ModelHandler struct {
	registry *registry.ModelRegistry
}

// NewModelHandler creates a new model handler
func NewModelHandler(reg *registry.ModelRegistry) *ModelHandler {
	return &ModelHandler{registry: reg}
}

// ListModels handles GET /v1/models
func (h *ModelHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"models": h.registry.List()})
}

// GetModel handles GET /v1/models/{id}
func (h *ModelHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	modelID := mux.Vars(r)["id"]

	model, err := h.registry.Get(modelID)
	if err != nil {
		http.Error(w, "Model not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model)
}

// PredictRequest represents a prediction request
type PredictRequest struct {
	Features []float64 `json:"features"`
}

// Predict handles POST /v1/models/{id}/predict
func (h *ModelHandler) Predict(w http.ResponseWriter, r *http.Request) {
	modelID := mux.Vars(r)["id"]

	model, err := h.registry.Get(modelID)
	if err != nil {
		http.Error(w, "Model not found", http.StatusNotFound)
		return
	}

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Features) == 0 {
		http.Error(w, "Features must not be empty", http.StatusBadRequest)
		return
	}

	prediction := model.Predict(req.Features)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"model_id":       modelID,
		"prediction":     prediction.Prediction,
		"confidence":     prediction.Confidence,
		"model_accuracy": prediction.ModelAccuracy,
		"algorithm":      model.Algorithm,
		"timestamp":      time.Now(),
	})
}
