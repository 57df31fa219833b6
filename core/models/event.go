package models

import "time"

// StageMetrics is the metric snapshot reported by a stage execution
type StageMetrics struct {
	Accuracy           float64 `json:"accuracy"`
	Loss               float64 `json:"loss"`
	ValidationAccuracy float64 `json:"validation_accuracy"`
}

// ProgressEvent is emitted after each completed stage of a training job
type ProgressEvent struct {
	JobID                    string       `json:"job_id"`
	Progress                 int          `json:"progress"`
	Step                     int          `json:"step"`
	TotalSteps               int          `json:"total_steps"`
	CurrentStepName          string       `json:"current_step_name"`
	Metrics                  StageMetrics `json:"metrics"`
	EstimatedTimeRemainingMs int64        `json:"estimated_time_remaining_ms"`
	At                       time.Time    `json:"at"`
}

// CompletionResult is delivered once per job when it reaches a terminal state
type CompletionResult struct {
	JobID          string
	Success        bool
	Model          *TrainedModel
	Error          string
	TrainingTimeMs int64
}

// JobEvent records a single status transition of a job
type JobEvent struct {
	ID         int64
	JobID      string
	At         time.Time
	FromStatus *JobStatus
	ToStatus   JobStatus
	Reason     string
}
