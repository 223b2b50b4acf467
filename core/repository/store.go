package repository

import (
	"carbon-planner/core/models"
)

// Store is the persistence surface used by the planning service
type Store interface {
	CreateProject(project *models.Project) error
	GetProject(id string) (*models.Project, error)
	UpdateProject(project *models.Project) error
	ListProjects() ([]*models.Project, error)

	CreateRun(run *models.RunResult) error
	ListRuns(projectID string, limit int) ([]models.RunResult, error)

	CreateEvent(event *models.AuditEvent) error
	ListEvents(projectID string, limit int) ([]models.AuditEvent, error)
}

// PostgresStore combines the Postgres repositories into a Store
type PostgresStore struct {
	*ProjectRepository
	*RunRepository
	*EventRepository
}

// NewPostgresStore creates a Store backed by db
func NewPostgresStore(db *DB) *PostgresStore {
	return &PostgresStore{
		ProjectRepository: NewProjectRepository(db),
		RunRepository:     NewRunRepository(db),
		EventRepository:   NewEventRepository(db),
	}
}
