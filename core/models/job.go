package models

import "time"

// TrainingJob represents a training request submitted to the engine
type TrainingJob struct {
	ID              string
	ModelName       string
	Algorithm       string
	Dataset         *Dataset
	Hyperparameters map[string]interface{}
	Status          JobStatus
	ProgressPercent int
	CurrentStage    string
	Step            int
	TotalSteps      int
	LastMetrics     *StageMetrics
	Error           string
	CreatedAt       time.Time
	StartedAt       *time.Time
	FinishedAt      *time.Time
}

// JobStatus represents the current status of a training job
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusTraining  JobStatus = "training"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether the status is a terminal state
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// TrainingConfig is the caller-supplied configuration for a training job
type TrainingConfig struct {
	ModelName       string
	Algorithm       string
	Dataset         *Dataset
	Hyperparameters map[string]interface{}
	OnProgress      func(ProgressEvent)
	OnComplete      func(CompletionResult)
}

// Snapshot returns a point-in-time copy of the job. Callers must not rely
// on pointer fields staying stable across snapshots; Dataset is shared.
func (j *TrainingJob) Snapshot() TrainingJob {
	s := *j
	if j.LastMetrics != nil {
		m := *j.LastMetrics
		s.LastMetrics = &m
	}
	if j.StartedAt != nil {
		t := *j.StartedAt
		s.StartedAt = &t
	}
	if j.FinishedAt != nil {
		t := *j.FinishedAt
		s.FinishedAt = &t
	}
	return s
}
