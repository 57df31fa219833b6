package orchestrator

import (
	"sync"

	"ml-orchestrator/core/models"
)

// TrainingQueue is a FIFO queue of pending training jobs. First submitted,
// first trained; no priority and no preemption, so a long job blocks all
// jobs behind it.
type TrainingQueue struct {
	jobs []*models.TrainingJob
	mu   sync.Mutex
}

// NewTrainingQueue creates an empty queue
func NewTrainingQueue() *TrainingQueue {
	return &TrainingQueue{jobs: make([]*models.TrainingJob, 0)}
}

// Enqueue appends a job to the tail of the queue
func (q *TrainingQueue) Enqueue(job *models.TrainingJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
}

// DequeueNext removes and returns the head job, or nil if the queue is empty
func (q *TrainingQueue) DequeueNext() *models.TrainingJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return nil
	}
	job := q.jobs[0]
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	return job
}

// Remove deletes a job from the queue by id, returning whether it was found
func (q *TrainingQueue) Remove(jobID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, job := range q.jobs {
		if job.ID == jobID {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of pending jobs
func (q *TrainingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
