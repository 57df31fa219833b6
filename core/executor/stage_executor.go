package executor

import (
	"context"
	"math/rand"
	"time"

	"ml-orchestrator/core/models"
	"ml-orchestrator/core/plan"
)

// StageExecutor runs one named pipeline stage for a job and returns the
// metric snapshot observed at the end of that stage. Implementations are
// stateless per invocation. The engine ships a simulated executor; a real
// algorithm backend plugs in behind the same interface.
type StageExecutor interface {
	RunStage(ctx context.Context, job *models.TrainingJob, stage plan.Stage) (models.StageMetrics, error)
}

// SimulatedExecutor executes stages by consuming the stage's scripted
// duration and reporting the plan's metric trajectory with a small bounded
// jitter. Speed scales the scripted durations; 0 disables sleeping.
type SimulatedExecutor struct {
	Speed float64
}

// NewSimulatedExecutor creates a simulated executor running at real speed
func NewSimulatedExecutor() *SimulatedExecutor {
	return &SimulatedExecutor{Speed: 1.0}
}

// RunStage sleeps for the stage's scaled duration and returns the stage's
// trajectory metrics. Returns the context error if cancelled mid-stage.
func (e *SimulatedExecutor) RunStage(ctx context.Context, job *models.TrainingJob, stage plan.Stage) (models.StageMetrics, error) {
	if e.Speed > 0 {
		d := time.Duration(float64(stage.DurationMs)*e.Speed) * time.Millisecond
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return models.StageMetrics{}, ctx.Err()
		}
	}

	accuracy := stage.Accuracy + (rand.Float64()-0.5)*0.02
	if accuracy < 0 {
		accuracy = 0
	}
	if accuracy > 1 {
		accuracy = 1
	}

	return models.StageMetrics{
		Accuracy:           accuracy,
		Loss:               1.0 - accuracy + rand.Float64()*0.05,
		ValidationAccuracy: accuracy - rand.Float64()*0.04,
	}, nil
}
