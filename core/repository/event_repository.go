package repository

import (
	"database/sql"
	"fmt"

	"ml-orchestrator/core/models"
)

// EventRepository handles database operations for job status transitions
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateJobEvent appends a status transition record for a job
func (r *EventRepository) CreateJobEvent(event models.JobEvent) error {
	query := `
		INSERT INTO job_events (job_id, at, from_status, to_status, reason)
		VALUES ($1, $2, $3, $4, $5)
	`

	var fromStatus *string
	if event.FromStatus != nil {
		s := string(*event.FromStatus)
		fromStatus = &s
	}

	_, err := r.db.Exec(query, event.JobID, event.At, fromStatus, event.ToStatus, event.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert event for job %s: %w", event.JobID, err)
	}
	return nil
}

// GetJobEvents retrieves the transition history of a job, newest first
func (r *EventRepository) GetJobEvents(jobID string, limit int) ([]models.JobEvent, error) {
	query := `
		SELECT id, job_id, at, from_status, to_status, reason
		FROM job_events
		WHERE job_id = $1
		ORDER BY at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, jobID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.JobEvent
	for rows.Next() {
		var event models.JobEvent
		var fromStatus sql.NullString

		err := rows.Scan(
			&event.ID,
			&event.JobID,
			&event.At,
			&fromStatus,
			&event.ToStatus,
			&event.Reason,
		)
		if err != nil {
			return nil, err
		}

		if fromStatus.Valid {
			status := models.JobStatus(fromStatus.String)
			event.FromStatus = &status
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
