package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"carbon-planner/core/models"
	"carbon-planner/core/spec"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateProject stores a new project document
func (r *ProjectRepository) CreateProject(project *models.Project) error {
	document, err := json.Marshal(spec.FromProject(project))
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	query := `
		INSERT INTO projects (id, name, document, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	if _, err := r.db.Exec(query, project.ID, project.Name, document); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project %s: %w", project.ID, ErrConflict)
		}
		return err
	}
	return nil
}

// GetProject retrieves a project by ID
func (r *ProjectRepository) GetProject(id string) (*models.Project, error) {
	var document []byte
	err := r.db.QueryRow(`SELECT document FROM projects WHERE id = $1`, id).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeProject(document)
}

// UpdateProject replaces a stored project document
func (r *ProjectRepository) UpdateProject(project *models.Project) error {
	document, err := json.Marshal(spec.FromProject(project))
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	query := `UPDATE projects SET name = $1, document = $2, updated_at = NOW() WHERE id = $3`
	res, err := r.db.Exec(query, project.Name, document, project.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProjects lists projects, most recently updated first
func (r *ProjectRepository) ListProjects() ([]*models.Project, error) {
	rows, err := r.db.Query(`SELECT document FROM projects ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, err
		}
		project, err := decodeProject(document)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func decodeProject(document []byte) (*models.Project, error) {
	project, err := spec.ParseProject(document, spec.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("stored project is corrupt: %w", err)
	}
	return project, nil
}
