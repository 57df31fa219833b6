package models

import (
	"testing"
	"time"
)

func TestPredictConfidenceTracksAccuracy(t *testing.T) {
	model := &TrainedModel{
		ID:        "job-1",
		Name:      "churn",
		Algorithm: "random-forest",
		Metrics:   ModelMetrics{Accuracy: 0.92},
	}

	low, high := 0.92*0.85, 0.92
	for i := 0; i < 200; i++ {
		p := model.Predict([]float64{1, 2, 3})

		if p.Confidence < low || p.Confidence > high {
			t.Fatalf("confidence %v outside [%v, %v]", p.Confidence, low, high)
		}
		if p.Prediction != "positive" {
			t.Errorf("confidence above threshold must classify positive, got %q", p.Prediction)
		}
		if p.ModelAccuracy != 92 {
			t.Errorf("expected model accuracy 92, got %d", p.ModelAccuracy)
		}
	}
}

func TestPredictLowAccuracyClassifiesNegative(t *testing.T) {
	model := &TrainedModel{Metrics: ModelMetrics{Accuracy: 0.4}}

	for i := 0; i < 50; i++ {
		p := model.Predict([]float64{1})
		if p.Prediction != "negative" {
			t.Errorf("confidence below threshold must classify negative, got %q", p.Prediction)
		}
		if p.Confidence >= 0.5 {
			t.Errorf("confidence %v should stay below 0.5 for accuracy 0.4", p.Confidence)
		}
	}
}

func TestPredictConfidenceNeverExceedsOne(t *testing.T) {
	model := &TrainedModel{Metrics: ModelMetrics{Accuracy: 1.0}}

	for i := 0; i < 50; i++ {
		if p := model.Predict(nil); p.Confidence > 1.0 {
			t.Fatalf("confidence %v above 1.0", p.Confidence)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	cases := map[JobStatus]bool{
		JobStatusQueued:    false,
		JobStatusTraining:  false,
		JobStatusCompleted: true,
		JobStatusFailed:    true,
	}
	for status, want := range cases {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}
}

func TestDatasetEmpty(t *testing.T) {
	var nilDataset *Dataset
	if !nilDataset.Empty() {
		t.Error("nil dataset must be empty")
	}
	if !(&Dataset{}).Empty() {
		t.Error("dataset without rows must be empty")
	}
	d := &Dataset{Features: [][]float64{{1}}, Labels: []float64{1}}
	if d.Empty() {
		t.Error("dataset with rows must not be empty")
	}
	if d.Rows() != 1 {
		t.Errorf("expected 1 row, got %d", d.Rows())
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	now := time.Now()
	job := &TrainingJob{
		ID:          "job-1",
		Status:      JobStatusTraining,
		LastMetrics: &StageMetrics{Accuracy: 0.5},
		StartedAt:   &now,
	}

	snap := job.Snapshot()
	job.LastMetrics.Accuracy = 0.9

	if snap.LastMetrics.Accuracy != 0.5 {
		t.Error("snapshot must not share metric state with the live job")
	}
}
