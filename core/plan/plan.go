package plan

import (
	"fmt"
	"sort"
)

// Stage describes one discrete phase of an algorithm's training pipeline
type Stage struct {
	Name       string  `yaml:"name"`
	DurationMs int64   `yaml:"duration_ms"`
	Accuracy   float64 `yaml:"accuracy"`
}

// StagePlan is the ordered stage list and expected accuracy range for one
// algorithm. Plans are immutable static data loaded once at process start.
type StagePlan struct {
	Algorithm   string  `yaml:"-"`
	AccuracyMin float64 `yaml:"accuracy_min"`
	AccuracyMax float64 `yaml:"accuracy_max"`
	Stages      []Stage `yaml:"stages"`
}

// Registry is a read-only lookup table of algorithm identifier to plan
type Registry struct {
	plans map[string]StagePlan
}

// NewRegistry creates a registry with the built-in algorithm plans
func NewRegistry() *Registry {
	r := &Registry{plans: make(map[string]StagePlan)}
	for _, p := range builtinPlans() {
		r.plans[p.Algorithm] = p
	}
	return r
}

// Lookup returns the stage plan for an algorithm
func (r *Registry) Lookup(algorithm string) (StagePlan, bool) {
	p, ok := r.plans[algorithm]
	return p, ok
}

// Algorithms returns the registered algorithm identifiers, sorted
func (r *Registry) Algorithms() []string {
	names := make([]string, 0, len(r.plans))
	for name := range r.plans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validatePlan checks structural invariants: at least one stage, positive
// durations, a sane accuracy range, and a non-decreasing accuracy
// trajectory (later stages must report at least as good metrics).
func validatePlan(algorithm string, p StagePlan) error {
	if len(p.Stages) == 0 {
		return fmt.Errorf("plan for %q has no stages", algorithm)
	}
	if p.AccuracyMin <= 0 || p.AccuracyMax > 1 || p.AccuracyMin >= p.AccuracyMax {
		return fmt.Errorf("plan for %q has invalid accuracy range [%v, %v]", algorithm, p.AccuracyMin, p.AccuracyMax)
	}
	prev := 0.0
	for i, stage := range p.Stages {
		if stage.Name == "" {
			return fmt.Errorf("plan for %q: stage %d has no name", algorithm, i)
		}
		if stage.DurationMs <= 0 {
			return fmt.Errorf("plan for %q: stage %q has non-positive duration", algorithm, stage.Name)
		}
		if stage.Accuracy < prev {
			return fmt.Errorf("plan for %q: stage %q regresses accuracy (%v < %v)", algorithm, stage.Name, stage.Accuracy, prev)
		}
		if stage.Accuracy > 1 {
			return fmt.Errorf("plan for %q: stage %q accuracy above 1.0", algorithm, stage.Name)
		}
		prev = stage.Accuracy
	}
	return nil
}

func builtinPlans() []StagePlan {
	return []StagePlan{
		{
			Algorithm:   "neural-network",
			AccuracyMin: 0.88,
			AccuracyMax: 0.96,
			Stages: []Stage{
				{Name: "Initializing network weights", DurationMs: 400, Accuracy: 0.35},
				{Name: "Loading training data", DurationMs: 500, Accuracy: 0.48},
				{Name: "Training epochs 1-10", DurationMs: 900, Accuracy: 0.67},
				{Name: "Training epochs 11-30", DurationMs: 1100, Accuracy: 0.81},
				{Name: "Fine-tuning learning rate", DurationMs: 700, Accuracy: 0.87},
				{Name: "Validating model", DurationMs: 500, Accuracy: 0.90},
			},
		},
		{
			Algorithm:   "random-forest",
			AccuracyMin: 0.85,
			AccuracyMax: 0.95,
			Stages: []Stage{
				{Name: "Bootstrap sampling", DurationMs: 400, Accuracy: 0.42},
				{Name: "Growing decision trees", DurationMs: 800, Accuracy: 0.64},
				{Name: "Computing feature importance", DurationMs: 600, Accuracy: 0.78},
				{Name: "Aggregating ensemble votes", DurationMs: 500, Accuracy: 0.85},
				{Name: "Out-of-bag evaluation", DurationMs: 400, Accuracy: 0.88},
			},
		},
		{
			Algorithm:   "cnn",
			AccuracyMin: 0.90,
			AccuracyMax: 0.97,
			Stages: []Stage{
				{Name: "Building convolution layers", DurationMs: 500, Accuracy: 0.30},
				{Name: "Augmenting image data", DurationMs: 700, Accuracy: 0.45},
				{Name: "Training feature extractors", DurationMs: 1200, Accuracy: 0.70},
				{Name: "Training dense classifier", DurationMs: 900, Accuracy: 0.84},
				{Name: "Regularization pass", DurationMs: 600, Accuracy: 0.89},
				{Name: "Validating on holdout set", DurationMs: 500, Accuracy: 0.92},
			},
		},
		{
			Algorithm:   "lstm",
			AccuracyMin: 0.87,
			AccuracyMax: 0.95,
			Stages: []Stage{
				{Name: "Tokenizing sequences", DurationMs: 500, Accuracy: 0.33},
				{Name: "Building embedding matrix", DurationMs: 600, Accuracy: 0.47},
				{Name: "Training recurrent cells", DurationMs: 1300, Accuracy: 0.72},
				{Name: "Backpropagation through time", DurationMs: 1000, Accuracy: 0.83},
				{Name: "Gradient clipping pass", DurationMs: 600, Accuracy: 0.87},
				{Name: "Sequence validation", DurationMs: 500, Accuracy: 0.89},
			},
		},
		{
			Algorithm:   "transformer",
			AccuracyMin: 0.91,
			AccuracyMax: 0.98,
			Stages: []Stage{
				{Name: "Building attention heads", DurationMs: 600, Accuracy: 0.28},
				{Name: "Positional encoding", DurationMs: 400, Accuracy: 0.40},
				{Name: "Pre-training pass", DurationMs: 1500, Accuracy: 0.66},
				{Name: "Multi-head attention training", DurationMs: 1200, Accuracy: 0.80},
				{Name: "Feed-forward stack training", DurationMs: 900, Accuracy: 0.88},
				{Name: "Fine-tuning on task", DurationMs: 800, Accuracy: 0.92},
				{Name: "Final evaluation", DurationMs: 500, Accuracy: 0.94},
			},
		},
	}
}
