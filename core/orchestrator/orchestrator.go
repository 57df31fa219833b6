package orchestrator

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"ml-orchestrator/core/executor"
	"ml-orchestrator/core/models"
	"ml-orchestrator/core/plan"
	"ml-orchestrator/core/registry"

	"github.com/google/uuid"
)

// Recorder receives status transitions and finished models for persistence.
// Implementations must be safe for use from the drain goroutine.
type Recorder interface {
	RecordTransition(event models.JobEvent)
	RecordModel(model *models.TrainedModel)
}

// Orchestrator accepts training jobs, drains them one at a time in FIFO
// order, and publishes trained models into the registry. The queue and the
// draining flag are owned exclusively by the orchestrator; at most one job
// is in training status per instance.
type Orchestrator struct {
	plans    *plan.Registry
	executor executor.StageExecutor
	registry *registry.ModelRegistry
	queue    *TrainingQueue
	recorder Recorder

	mu       sync.Mutex
	jobs     map[string]*jobEntry
	draining bool
}

type jobEntry struct {
	job *models.TrainingJob
	cfg models.TrainingConfig
}

// NewOrchestrator creates an orchestrator. The stage executor is selected
// at construction time; recorder may be nil.
func NewOrchestrator(
	plans *plan.Registry,
	exec executor.StageExecutor,
	reg *registry.ModelRegistry,
	recorder Recorder,
) *Orchestrator {
	return &Orchestrator{
		plans:    plans,
		executor: exec,
		registry: reg,
		queue:    NewTrainingQueue(),
		recorder: recorder,
		jobs:     make(map[string]*jobEntry),
	}
}

// Submit validates a training request, enqueues it and returns the job id
// immediately without blocking on training. Validation failures are
// returned synchronously and nothing is enqueued.
func (o *Orchestrator) Submit(cfg models.TrainingConfig) (string, error) {
	if _, ok := o.plans.Lookup(cfg.Algorithm); !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownAlgorithm, cfg.Algorithm)
	}
	if cfg.Dataset.Empty() {
		return "", models.ErrInvalidTrainingData
	}

	job := &models.TrainingJob{
		ID:              uuid.New().String(),
		ModelName:       cfg.ModelName,
		Algorithm:       cfg.Algorithm,
		Dataset:         cfg.Dataset,
		Hyperparameters: cfg.Hyperparameters,
		Status:          models.JobStatusQueued,
		CreatedAt:       time.Now(),
	}

	log.Printf("Job %s submitted (%s, %d samples)", job.ID, job.Algorithm, job.Dataset.Rows())
	o.recordTransition(job.ID, nil, models.JobStatusQueued, "job_submitted")

	o.mu.Lock()
	o.jobs[job.ID] = &jobEntry{job: job, cfg: cfg}
	o.queue.Enqueue(job)
	start := !o.draining
	if start {
		o.draining = true
	}
	o.mu.Unlock()

	if start {
		go o.drain()
	}
	return job.ID, nil
}

// GetStatus returns a read-only snapshot of a job
func (o *Orchestrator) GetStatus(jobID string) (models.TrainingJob, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry, ok := o.jobs[jobID]
	if !ok {
		return models.TrainingJob{}, fmt.Errorf("%w: %s", models.ErrJobNotFound, jobID)
	}
	return entry.job.Snapshot(), nil
}

// Cancel removes a queued job from the queue and discards it; no progress
// or completion event is ever emitted for it. Jobs already training or
// finished cannot be cancelled.
func (o *Orchestrator) Cancel(jobID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry, ok := o.jobs[jobID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrJobNotFound, jobID)
	}
	if entry.job.Status != models.JobStatusQueued {
		return fmt.Errorf("%w (status %s)", models.ErrJobNotQueued, entry.job.Status)
	}

	o.queue.Remove(jobID)
	delete(o.jobs, jobID)
	log.Printf("Job %s cancelled while queued", jobID)
	return nil
}

// Counts returns the number of tracked jobs per status plus the queue depth
func (o *Orchestrator) Counts() (map[models.JobStatus]int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	counts := make(map[models.JobStatus]int)
	for _, entry := range o.jobs {
		counts[entry.job.Status]++
	}
	return counts, o.queue.Len()
}

// drain processes queued jobs one at a time until the queue is empty.
// Exactly one drain loop runs per orchestrator; Submit only starts it when
// the draining flag is clear.
func (o *Orchestrator) drain() {
	for {
		o.mu.Lock()
		job := o.queue.DequeueNext()
		if job == nil {
			o.draining = false
			o.mu.Unlock()
			return
		}
		entry := o.jobs[job.ID]
		now := time.Now()
		job.Status = models.JobStatusTraining
		job.StartedAt = &now
		job.ProgressPercent = 0
		o.mu.Unlock()

		from := models.JobStatusQueued
		o.recordTransition(job.ID, &from, models.JobStatusTraining, "training_started")
		o.runJob(entry)
	}
}

// runJob drives one job through its algorithm's stage list
func (o *Orchestrator) runJob(entry *jobEntry) {
	job := entry.job
	cfg := entry.cfg
	stagePlan, _ := o.plans.Lookup(job.Algorithm)
	stages := stagePlan.Stages
	total := len(stages)
	started := time.Now()

	var lastMetrics models.StageMetrics
	for i, stage := range stages {
		metrics, err := o.executor.RunStage(context.Background(), job, stage)
		if err != nil {
			o.failJob(entry, fmt.Errorf("stage %q failed: %w", stage.Name, err))
			return
		}
		lastMetrics = metrics

		elapsed := time.Since(started)
		avgStage := elapsed / time.Duration(i+1)
		remaining := avgStage * time.Duration(total-i-1)
		progress := int(math.Round(float64(i+1) / float64(total) * 100))

		o.mu.Lock()
		job.ProgressPercent = progress
		job.CurrentStage = stage.Name
		job.Step = i + 1
		job.TotalSteps = total
		job.LastMetrics = &metrics
		o.mu.Unlock()

		if cfg.OnProgress != nil {
			cfg.OnProgress(models.ProgressEvent{
				JobID:                    job.ID,
				Progress:                 progress,
				Step:                     i + 1,
				TotalSteps:               total,
				CurrentStepName:          stage.Name,
				Metrics:                  metrics,
				EstimatedTimeRemainingMs: remaining.Milliseconds(),
				At:                       time.Now(),
			})
		}
	}

	o.finalize(entry, stagePlan, lastMetrics, started)
}

// finalize derives the final model metrics, publishes the trained model
// into the registry and reports completion.
func (o *Orchestrator) finalize(entry *jobEntry, stagePlan plan.StagePlan, last models.StageMetrics, started time.Time) {
	job := entry.job
	trainingTime := time.Since(started)

	model := &models.TrainedModel{
		ID:             job.ID,
		Name:           job.ModelName,
		Algorithm:      job.Algorithm,
		Metrics:        finalMetrics(stagePlan, last),
		TrainingTimeMs: trainingTime.Milliseconds(),
		CreatedAt:      time.Now(),
	}
	o.registry.Put(model)

	o.mu.Lock()
	now := time.Now()
	job.Status = models.JobStatusCompleted
	job.FinishedAt = &now
	o.mu.Unlock()

	log.Printf("Job %s completed in %v (accuracy %.4f)", job.ID, trainingTime, model.Metrics.Accuracy)
	from := models.JobStatusTraining
	o.recordTransition(job.ID, &from, models.JobStatusCompleted, "training_completed")
	o.recordModel(model)

	if entry.cfg.OnComplete != nil {
		entry.cfg.OnComplete(models.CompletionResult{
			JobID:          job.ID,
			Success:        true,
			Model:          model,
			TrainingTimeMs: trainingTime.Milliseconds(),
		})
	}
}

// failJob marks a job failed and reports the error; the queue keeps
// draining, so one failed job never blocks the jobs behind it.
func (o *Orchestrator) failJob(entry *jobEntry, err error) {
	job := entry.job

	o.mu.Lock()
	now := time.Now()
	job.Status = models.JobStatusFailed
	job.FinishedAt = &now
	job.Error = err.Error()
	o.mu.Unlock()

	log.Printf("Job %s failed: %v", job.ID, err)
	from := models.JobStatusTraining
	o.recordTransition(job.ID, &from, models.JobStatusFailed, "stage_execution_failed")

	if entry.cfg.OnComplete != nil {
		entry.cfg.OnComplete(models.CompletionResult{
			JobID:   job.ID,
			Success: false,
			Error:   err.Error(),
		})
	}
}

func (o *Orchestrator) recordTransition(jobID string, from *models.JobStatus, to models.JobStatus, reason string) {
	if o.recorder == nil {
		return
	}
	o.recorder.RecordTransition(models.JobEvent{
		JobID:      jobID,
		At:         time.Now(),
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
	})
}

func (o *Orchestrator) recordModel(model *models.TrainedModel) {
	if o.recorder == nil {
		return
	}
	o.recorder.RecordModel(model)
}

// finalMetrics derives the final evaluation metrics from the last stage
// snapshot, perturbed within the algorithm's expected accuracy range. The
// backend here is a modeled capability; a real executor would carry actual
// fitted metrics through the stage snapshots instead.
func finalMetrics(p plan.StagePlan, last models.StageMetrics) models.ModelMetrics {
	accuracy := last.Accuracy + (rand.Float64()-0.5)*0.04
	if accuracy < p.AccuracyMin {
		accuracy = p.AccuracyMin + rand.Float64()*(p.AccuracyMax-p.AccuracyMin)*0.3
	}
	if accuracy > p.AccuracyMax {
		accuracy = p.AccuracyMax
	}

	precision := accuracy - rand.Float64()*0.03
	recall := accuracy - rand.Float64()*0.03
	f1 := 2 * precision * recall / (precision + recall)
	loss := 1.0 - accuracy + rand.Float64()*0.05

	return models.ModelMetrics{
		Accuracy:  accuracy,
		Precision: precision,
		Recall:    recall,
		F1Score:   f1,
		Loss:      loss,
	}
}
