package registry

import (
	"fmt"
	"sort"
	"sync"

	"ml-orchestrator/core/models"
)

// ModelRegistry is the in-memory map of model id to trained model. The
// orchestrator appends to it on successful completion; all other callers
// treat it as read-only.
type ModelRegistry struct {
	mu     sync.RWMutex
	models map[string]*models.TrainedModel
}

// NewModelRegistry creates an empty registry
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{models: make(map[string]*models.TrainedModel)}
}

// Put stores a trained model keyed by its id
func (r *ModelRegistry) Put(model *models.TrainedModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[model.ID] = model
}

// Get returns the model for an id
func (r *ModelRegistry) Get(id string) (*models.TrainedModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrModelNotFound, id)
	}
	return model, nil
}

// List returns all registered models ordered by creation time
func (r *ModelRegistry) List() []*models.TrainedModel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.TrainedModel, 0, len(r.models))
	for _, model := range r.models {
		out = append(out, model)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of registered models
func (r *ModelRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}
