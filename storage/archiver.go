package storage

import (
	"log"

	"ml-orchestrator/core/models"
	"ml-orchestrator/core/repository"
)

// Archiver persists job status transitions and finished models through the
// repositories. It is wired into the orchestrator as its recorder; write
// failures are logged and never propagate back into the training loop.
type Archiver struct {
	modelRepo *repository.ModelRepository
	eventRepo *repository.EventRepository
}

// NewArchiver creates a new archiver
func NewArchiver(modelRepo *repository.ModelRepository, eventRepo *repository.EventRepository) *Archiver {
	return &Archiver{
		modelRepo: modelRepo,
		eventRepo: eventRepo,
	}
}

// RecordTransition stores a status transition event
func (a *Archiver) RecordTransition(event models.JobEvent) {
	if err := a.eventRepo.CreateJobEvent(event); err != nil {
		log.Printf("Failed to record transition for job %s: %v", event.JobID, err)
	}
}

// RecordModel stores a finished model
func (a *Archiver) RecordModel(model *models.TrainedModel) {
	if err := a.modelRepo.CreateModel(model); err != nil {
		log.Printf("Failed to record model %s: %v", model.ID, err)
	}
}
