package orchestrator

import (
	"sync"

	"ml-orchestrator/core/models"
)

// BatchResult aggregates the terminal outcomes of a batch submission
type BatchResult struct {
	Results   []models.CompletionResult
	Succeeded int
	Failed    int
}

// BatchOrchestrator fans a set of training requests out over one or more
// orchestrator instances and fires a single aggregate callback once every
// request reaches a terminal state. Each instance still trains one job at
// a time; parallelism comes only from running multiple instances.
type BatchOrchestrator struct {
	pool []*Orchestrator
}

// NewBatchOrchestrator creates a batch orchestrator over the given
// instances. Requests are assigned round-robin.
func NewBatchOrchestrator(pool ...*Orchestrator) *BatchOrchestrator {
	return &BatchOrchestrator{pool: pool}
}

// SubmitAll submits every config and returns the assigned job ids in
// input order; entries rejected by synchronous validation get an empty id
// and count toward Failed in the aggregate result. onComplete fires
// exactly once, after all entries are terminal.
func (b *BatchOrchestrator) SubmitAll(configs []models.TrainingConfig, onComplete func(BatchResult)) []string {
	n := len(configs)
	ids := make([]string, n)
	results := make([]models.CompletionResult, n)

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(n)

	for i, cfg := range configs {
		idx := i
		userOnComplete := cfg.OnComplete
		cfg.OnComplete = func(res models.CompletionResult) {
			mu.Lock()
			results[idx] = res
			mu.Unlock()
			if userOnComplete != nil {
				userOnComplete(res)
			}
			wg.Done()
		}

		target := b.pool[i%len(b.pool)]
		id, err := target.Submit(cfg)
		if err != nil {
			mu.Lock()
			results[idx] = models.CompletionResult{Success: false, Error: err.Error()}
			mu.Unlock()
			wg.Done()
			continue
		}
		ids[i] = id
	}

	go func() {
		wg.Wait()
		result := BatchResult{Results: results}
		for _, res := range results {
			if res.Success {
				result.Succeeded++
			} else {
				result.Failed++
			}
		}
		if onComplete != nil {
			onComplete(result)
		}
	}()

	return ids
}
