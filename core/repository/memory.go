package repository

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"carbon-planner/core/models"
	"carbon-planner/core/spec"
)

// MemoryStore is a Store kept in process memory, used when no database is configured.
// Projects are held as encoded documents so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string][]byte
	order    []string // Project ids, most recently written last
	runs     map[string][]models.RunResult
	events   []models.AuditEvent
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string][]byte),
		runs:     make(map[string][]models.RunResult),
	}
}

// CreateProject stores a new project
func (s *MemoryStore) CreateProject(project *models.Project) error {
	document, err := json.Marshal(spec.FromProject(project))
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; ok {
		return fmt.Errorf("project %s: %w", project.ID, ErrConflict)
	}
	s.projects[project.ID] = document
	s.touch(project.ID)
	return nil
}

// GetProject retrieves a project by ID
func (s *MemoryStore) GetProject(id string) (*models.Project, error) {
	s.mu.RLock()
	document, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeProject(document)
}

// UpdateProject replaces a stored project
func (s *MemoryStore) UpdateProject(project *models.Project) error {
	document, err := json.Marshal(spec.FromProject(project))
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return ErrNotFound
	}
	s.projects[project.ID] = document
	s.touch(project.ID)
	return nil
}

// ListProjects lists projects, most recently updated first
func (s *MemoryStore) ListProjects() ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]*models.Project, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		project, err := decodeProject(s.projects[s.order[i]])
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (s *MemoryStore) touch(id string) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.order = append(s.order, id)
}

// CreateRun stores a run result
func (s *MemoryStore) CreateRun(run *models.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[run.ProjectID]; !ok {
		return ErrNotFound
	}
	s.runs[run.ProjectID] = append(s.runs[run.ProjectID], *run)
	return nil
}

// ListRuns retrieves the latest runs of a project, newest first
func (s *MemoryStore) ListRuns(projectID string, limit int) ([]models.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := append([]models.RunResult(nil), s.runs[projectID]...)
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].At.After(runs[j].At)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	if runs == nil {
		runs = []models.RunResult{}
	}
	return runs, nil
}

// CreateEvent appends an audit event
func (s *MemoryStore) CreateEvent(event *models.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

// ListEvents retrieves audit events, newest first
func (s *MemoryStore) ListEvents(projectID string, limit int) ([]models.AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := []models.AuditEvent{}
	for i := len(s.events) - 1; i >= 0; i-- {
		if projectID != "" && s.events[i].ProjectID != projectID {
			continue
		}
		events = append(events, s.events[i])
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}
