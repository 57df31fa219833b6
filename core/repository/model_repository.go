package repository

import (
	"fmt"

	"ml-orchestrator/core/models"
)

// ModelRepository handles database operations for trained models
type ModelRepository struct {
	db *DB
}

// NewModelRepository creates a new model repository
func NewModelRepository(db *DB) *ModelRepository {
	return &ModelRepository{db: db}
}

// CreateModel persists a finished model
func (r *ModelRepository) CreateModel(model *models.TrainedModel) error {
	query := `
		INSERT INTO trained_models (
			id, name, algorithm, accuracy, precision_score, recall_score,
			f1_score, loss, training_time_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(query,
		model.ID,
		model.Name,
		model.Algorithm,
		model.Metrics.Accuracy,
		model.Metrics.Precision,
		model.Metrics.Recall,
		model.Metrics.F1Score,
		model.Metrics.Loss,
		model.TrainingTimeMs,
		model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert model %s: %w", model.ID, err)
	}
	return nil
}

// ListModels returns the most recently trained models
func (r *ModelRepository) ListModels(limit int) ([]*models.TrainedModel, error) {
	query := `
		SELECT id, name, algorithm, accuracy, precision_score, recall_score,
			f1_score, loss, training_time_ms, created_at
		FROM trained_models
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TrainedModel
	for rows.Next() {
		var m models.TrainedModel
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Algorithm,
			&m.Metrics.Accuracy,
			&m.Metrics.Precision,
			&m.Metrics.Recall,
			&m.Metrics.F1Score,
			&m.Metrics.Loss,
			&m.TrainingTimeMs,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
