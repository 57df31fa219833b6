package orchestrator

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"ml-orchestrator/core/executor"
	"ml-orchestrator/core/models"
	"ml-orchestrator/core/plan"
	"ml-orchestrator/core/registry"
)

const waitTimeout = 5 * time.Second

func validDataset() *models.Dataset {
	return &models.Dataset{
		Features:     [][]float64{{1, 2}, {3, 4}, {5, 6}},
		Labels:       []float64{0, 1, 1},
		FeatureNames: []string{"x1", "x2"},
		TargetColumn: "label",
	}
}

func newTestOrchestrator(t *testing.T, exec executor.StageExecutor) (*Orchestrator, *registry.ModelRegistry) {
	t.Helper()
	if exec == nil {
		exec = &executor.SimulatedExecutor{Speed: 0}
	}
	reg := registry.NewModelRegistry()
	return NewOrchestrator(plan.NewRegistry(), exec, reg, nil), reg
}

func waitForResult(t *testing.T, ch <-chan models.CompletionResult) models.CompletionResult {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for job completion")
		return models.CompletionResult{}
	}
}

// scriptedExecutor reports the plan trajectory deterministically and can be
// told to fail every stage of one algorithm.
type scriptedExecutor struct {
	failAlgorithm string
}

func (s *scriptedExecutor) RunStage(_ context.Context, job *models.TrainingJob, stage plan.Stage) (models.StageMetrics, error) {
	if s.failAlgorithm != "" && job.Algorithm == s.failAlgorithm {
		return models.StageMetrics{}, errors.New("algorithm backend failure")
	}
	return models.StageMetrics{
		Accuracy:           stage.Accuracy,
		Loss:               1 - stage.Accuracy,
		ValidationAccuracy: stage.Accuracy,
	}, nil
}

// gateExecutor blocks every stage until proceed is closed and signals when
// the first stage begins.
type gateExecutor struct {
	started chan struct{}
	proceed chan struct{}
	once    sync.Once
}

func newGateExecutor() *gateExecutor {
	return &gateExecutor{
		started: make(chan struct{}),
		proceed: make(chan struct{}),
	}
}

func (g *gateExecutor) RunStage(_ context.Context, _ *models.TrainingJob, stage plan.Stage) (models.StageMetrics, error) {
	g.once.Do(func() { close(g.started) })
	<-g.proceed
	return models.StageMetrics{Accuracy: stage.Accuracy}, nil
}

func TestTrainingCompletesWithOrderedProgress(t *testing.T) {
	orch, reg := newTestOrchestrator(t, nil)

	var events []models.ProgressEvent
	done := make(chan models.CompletionResult, 1)

	jobID, err := orch.Submit(models.TrainingConfig{
		ModelName: "churn-model",
		Algorithm: "random-forest",
		Dataset:   validDataset(),
		OnProgress: func(e models.ProgressEvent) {
			events = append(events, e)
		},
		OnComplete: func(res models.CompletionResult) {
			done <- res
		},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	res := waitForResult(t, done)
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Model == nil {
		t.Fatal("expected a model in the completion result")
	}
	if res.TrainingTimeMs < 0 {
		t.Errorf("expected non-negative training time, got %d", res.TrainingTimeMs)
	}

	wantProgress := []int{20, 40, 60, 80, 100}
	if len(events) != len(wantProgress) {
		t.Fatalf("expected %d progress events, got %d", len(wantProgress), len(events))
	}
	for i, e := range events {
		if e.Progress != wantProgress[i] {
			t.Errorf("event %d: expected progress %d, got %d", i, wantProgress[i], e.Progress)
		}
		if e.Step != i+1 {
			t.Errorf("event %d: expected step %d, got %d", i, i+1, e.Step)
		}
		if e.TotalSteps != 5 {
			t.Errorf("event %d: expected 5 total steps, got %d", i, e.TotalSteps)
		}
		if e.CurrentStepName == "" {
			t.Errorf("event %d: missing step name", i)
		}
		if e.EstimatedTimeRemainingMs < 0 {
			t.Errorf("event %d: negative ETA %d", i, e.EstimatedTimeRemainingMs)
		}
	}

	job, err := orch.GetStatus(jobID)
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if job.Status != models.JobStatusCompleted {
		t.Errorf("expected status completed, got %s", job.Status)
	}
	if job.ProgressPercent != 100 {
		t.Errorf("expected progress 100, got %d", job.ProgressPercent)
	}
	if job.StartedAt == nil || job.FinishedAt == nil {
		t.Error("expected started/finished timestamps to be set")
	}

	model, err := reg.Get(jobID)
	if err != nil {
		t.Fatalf("expected model in registry: %v", err)
	}
	if model.Algorithm != "random-forest" || model.Name != "churn-model" {
		t.Errorf("unexpected model identity: %s/%s", model.Name, model.Algorithm)
	}
	if model.Metrics.Accuracy < 0.85 || model.Metrics.Accuracy > 0.95 {
		t.Errorf("expected accuracy within the random-forest range, got %v", model.Metrics.Accuracy)
	}
}

func TestSubmitUnknownAlgorithm(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	_, err := orch.Submit(models.TrainingConfig{
		ModelName: "m",
		Algorithm: "unknown-algo",
		Dataset:   validDataset(),
	})
	if !errors.Is(err, models.ErrUnknownAlgorithm) {
		t.Fatalf("expected ErrUnknownAlgorithm, got %v", err)
	}

	counts, queueDepth := orch.Counts()
	if len(counts) != 0 || queueDepth != 0 {
		t.Errorf("expected no job to be enqueued, got counts=%v queue=%d", counts, queueDepth)
	}
}

func TestSubmitInvalidTrainingData(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	for _, dataset := range []*models.Dataset{nil, {}} {
		_, err := orch.Submit(models.TrainingConfig{
			ModelName: "m",
			Algorithm: "random-forest",
			Dataset:   dataset,
		})
		if !errors.Is(err, models.ErrInvalidTrainingData) {
			t.Errorf("expected ErrInvalidTrainingData for dataset %v, got %v", dataset, err)
		}
	}
}

func TestFIFOStrictSequencing(t *testing.T) {
	orch, _ := newTestOrchestrator(t, &scriptedExecutor{})

	var mu sync.Mutex
	var order []string
	var eventsA, eventsB []models.ProgressEvent

	var wg sync.WaitGroup
	wg.Add(2)

	submit := func(label string, events *[]models.ProgressEvent) {
		_, err := orch.Submit(models.TrainingConfig{
			ModelName: label,
			Algorithm: "random-forest",
			Dataset:   validDataset(),
			OnProgress: func(e models.ProgressEvent) {
				mu.Lock()
				order = append(order, label)
				*events = append(*events, e)
				mu.Unlock()
			},
			OnComplete: func(models.CompletionResult) {
				mu.Lock()
				order = append(order, label)
				mu.Unlock()
				wg.Done()
			},
		})
		if err != nil {
			t.Fatalf("Submit %s failed: %v", label, err)
		}
	}

	submit("A", &eventsA)
	submit("B", &eventsB)

	waitDone := make(chan struct{})
	go func() { wg.Wait(); close(waitDone) }()
	select {
	case <-waitDone:
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for both jobs")
	}

	// All of A's events, including its terminal event, must precede B's.
	lastA, firstB := -1, len(order)
	for i, label := range order {
		if label == "A" && i > lastA {
			lastA = i
		}
		if label == "B" && i < firstB {
			firstB = i
		}
	}
	if lastA > firstB {
		t.Errorf("expected strict sequencing, got order %v", order)
	}

	if len(eventsA) == 0 || len(eventsB) == 0 {
		t.Fatal("expected progress events for both jobs")
	}
	if eventsB[0].At.Before(eventsA[len(eventsA)-1].At) {
		t.Error("expected B's first event to be no earlier than A's last event")
	}
}

func TestFailureIsolation(t *testing.T) {
	orch, reg := newTestOrchestrator(t, &scriptedExecutor{failAlgorithm: "cnn"})

	doneA := make(chan models.CompletionResult, 1)
	doneB := make(chan models.CompletionResult, 1)

	jobA, err := orch.Submit(models.TrainingConfig{
		ModelName:  "failing",
		Algorithm:  "cnn",
		Dataset:    validDataset(),
		OnComplete: func(res models.CompletionResult) { doneA <- res },
	})
	if err != nil {
		t.Fatalf("Submit A failed: %v", err)
	}

	jobB, err := orch.Submit(models.TrainingConfig{
		ModelName:  "surviving",
		Algorithm:  "random-forest",
		Dataset:    validDataset(),
		OnComplete: func(res models.CompletionResult) { doneB <- res },
	})
	if err != nil {
		t.Fatalf("Submit B failed: %v", err)
	}

	resA := waitForResult(t, doneA)
	if resA.Success {
		t.Fatal("expected job A to fail")
	}
	if resA.Error == "" {
		t.Error("expected an error message for job A")
	}
	if resA.Model != nil {
		t.Error("expected no model for failed job A")
	}

	resB := waitForResult(t, doneB)
	if !resB.Success {
		t.Fatalf("expected job B to complete, got error %q", resB.Error)
	}

	statusA, err := orch.GetStatus(jobA)
	if err != nil {
		t.Fatalf("GetStatus A failed: %v", err)
	}
	if statusA.Status != models.JobStatusFailed {
		t.Errorf("expected A failed, got %s", statusA.Status)
	}
	if statusA.ProgressPercent == 100 {
		t.Error("failed job must not report 100% progress")
	}
	if statusA.Error == "" {
		t.Error("expected failed job to record its error")
	}

	if _, err := reg.Get(jobA); err == nil {
		t.Error("expected no registry entry for failed job A")
	}
	if _, err := reg.Get(jobB); err != nil {
		t.Errorf("expected registry entry for job B: %v", err)
	}
}

func TestCancelQueuedJob(t *testing.T) {
	gate := newGateExecutor()
	orch, _ := newTestOrchestrator(t, gate)

	doneA := make(chan models.CompletionResult, 1)
	bTouched := make(chan struct{}, 2)

	_, err := orch.Submit(models.TrainingConfig{
		ModelName:  "active",
		Algorithm:  "random-forest",
		Dataset:    validDataset(),
		OnComplete: func(res models.CompletionResult) { doneA <- res },
	})
	if err != nil {
		t.Fatalf("Submit A failed: %v", err)
	}

	select {
	case <-gate.started:
	case <-time.After(waitTimeout):
		t.Fatal("job A never started training")
	}

	jobB, err := orch.Submit(models.TrainingConfig{
		ModelName:  "cancelled",
		Algorithm:  "random-forest",
		Dataset:    validDataset(),
		OnProgress: func(models.ProgressEvent) { bTouched <- struct{}{} },
		OnComplete: func(models.CompletionResult) { bTouched <- struct{}{} },
	})
	if err != nil {
		t.Fatalf("Submit B failed: %v", err)
	}

	if err := orch.Cancel(jobB); err != nil {
		t.Fatalf("Cancel of queued job failed: %v", err)
	}

	// A discarded job is gone entirely
	if _, err := orch.GetStatus(jobB); !errors.Is(err, models.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound for cancelled job, got %v", err)
	}

	close(gate.proceed)
	res := waitForResult(t, doneA)
	if !res.Success {
		t.Fatalf("expected job A to complete, got error %q", res.Error)
	}

	select {
	case <-bTouched:
		t.Error("cancelled job must never emit progress or completion")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelRules(t *testing.T) {
	gate := newGateExecutor()
	orch, _ := newTestOrchestrator(t, gate)

	done := make(chan models.CompletionResult, 1)
	jobID, err := orch.Submit(models.TrainingConfig{
		ModelName:  "active",
		Algorithm:  "random-forest",
		Dataset:    validDataset(),
		OnComplete: func(res models.CompletionResult) { done <- res },
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case <-gate.started:
	case <-time.After(waitTimeout):
		t.Fatal("job never started training")
	}

	// Mid-training cancellation is not supported
	if err := orch.Cancel(jobID); !errors.Is(err, models.ErrJobNotQueued) {
		t.Errorf("expected ErrJobNotQueued for active job, got %v", err)
	}

	if err := orch.Cancel("missing-id"); !errors.Is(err, models.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound for unknown job, got %v", err)
	}

	close(gate.proceed)
	waitForResult(t, done)

	if err := orch.Cancel(jobID); !errors.Is(err, models.ErrJobNotQueued) {
		t.Errorf("expected ErrJobNotQueued for finished job, got %v", err)
	}
}

func TestGetStatusIdempotent(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	done := make(chan models.CompletionResult, 1)
	jobID, err := orch.Submit(models.TrainingConfig{
		ModelName:  "m",
		Algorithm:  "lstm",
		Dataset:    validDataset(),
		OnComplete: func(res models.CompletionResult) { done <- res },
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	waitForResult(t, done)

	first, err := orch.GetStatus(jobID)
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	second, err := orch.GetStatus(jobID)
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical snapshots without intervening mutation:\n%+v\n%+v", first, second)
	}
}

func TestGetStatusUnknownJob(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	if _, err := orch.GetStatus("missing-id"); !errors.Is(err, models.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}
