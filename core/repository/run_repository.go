package repository

import (
	"encoding/json"
	"fmt"

	"carbon-planner/core/models"
)

// RunRepository handles database operations for simulated runs
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRun stores a run result
func (r *RunRepository) CreateRun(run *models.RunResult) error {
	result, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}

	query := `
		INSERT INTO runs (id, project_id, at, compare_mode, result)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.Exec(query, run.ID, run.ProjectID, run.At, run.CompareMode, result)
	return err
}

// ListRuns retrieves the latest runs of a project, newest first
func (r *RunRepository) ListRuns(projectID string, limit int) ([]models.RunResult, error) {
	query := `
		SELECT result
		FROM runs
		WHERE project_id = $1
		ORDER BY at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.RunResult{}
	for rows.Next() {
		var result []byte
		if err := rows.Scan(&result); err != nil {
			return nil, err
		}
		var run models.RunResult
		if err := json.Unmarshal(result, &run); err != nil {
			return nil, fmt.Errorf("stored run is corrupt: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
