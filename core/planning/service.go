package planning

import (
	"fmt"
	"log"
	"strings"
	"time"

	"carbon-planner/core/actuals"
	"carbon-planner/core/estimator"
	"carbon-planner/core/models"
	"carbon-planner/core/monitoring"
	"carbon-planner/core/optimizer"
	"carbon-planner/core/repository"

	"github.com/google/uuid"
)

// DefaultRunLimit bounds run and audit listings when no limit is given
const DefaultRunLimit = 50

// Defaults are the workspace settings projects inherit
type Defaults struct {
	ReportingRegime models.ReportingRegime
	Profile         models.OptimizationProfile
	Compliance      *models.CompliancePolicy
}

// Service ties the planning engine to persistence, audit and metrics
type Service struct {
	estimator *estimator.Estimator
	selector  *optimizer.PlanSelector
	store     repository.Store
	metrics   *monitoring.MetricsExporter
	defaults  Defaults
	now       func() time.Time
}

// NewService creates a new planning service. metrics may be nil.
func NewService(
	est *estimator.Estimator,
	selector *optimizer.PlanSelector,
	store repository.Store,
	metrics *monitoring.MetricsExporter,
	defaults Defaults,
) *Service {
	return &Service{
		estimator: est,
		selector:  selector,
		store:     store,
		metrics:   metrics,
		defaults:  defaults,
		now:       time.Now,
	}
}

// SetClock replaces the time source, for deterministic runs
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ParseCompareMode parses a compare mode, defaulting to AUTO
func ParseCompareMode(raw string) (models.CompareMode, error) {
	if strings.TrimSpace(raw) == "" {
		return models.CompareAuto, nil
	}
	mode := models.CompareMode(strings.ToUpper(strings.TrimSpace(raw)))
	if !mode.Valid() {
		return "", &models.ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown compare mode %q", raw)}
	}
	return mode, nil
}

// Estimate computes worst-case bounds for an inline project. Only aggregate
// counters are recorded.
func (s *Service) Estimate(project *models.Project) models.EstimateResult {
	result := s.estimate(project)
	if s.metrics != nil {
		s.metrics.ObserveEstimate(result)
	}
	return result
}

// EstimateProject computes worst-case bounds for a stored project and records
// its ceilings
func (s *Service) EstimateProject(projectID string) (models.EstimateResult, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return models.EstimateResult{}, err
	}
	result := s.estimate(project)
	if s.metrics != nil {
		s.metrics.ObserveProjectEstimate(project.ID, result)
	}
	return result, nil
}

func (s *Service) estimate(project *models.Project) models.EstimateResult {
	return s.estimator.EstimateProject(project, s.defaults.Profile, s.defaults.Compliance)
}

// Plan selects placements for the jobs of project in scope
func (s *Service) Plan(project *models.Project, mode models.CompareMode, scope string) (models.Plan, error) {
	plan, err := s.selector.BuildPlan(optimizer.PlanRequest{
		Project:           project,
		DefaultProfile:    s.defaults.Profile,
		DefaultCompliance: s.defaults.Compliance,
		Mode:              mode,
		Scope:             scope,
		Now:               s.now(),
	})
	if err != nil {
		return models.Plan{}, err
	}
	if s.metrics != nil {
		s.metrics.ObservePlan(plan)
	}
	return plan, nil
}

// Simulate estimates, plans and simulates a run without storing anything
func (s *Service) Simulate(project *models.Project, mode models.CompareMode, scope string) (*models.RunResult, error) {
	run, estimates, err := s.simulate(project, mode, scope)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveEstimate(estimates)
		s.metrics.ObserveRun(run)
	}
	return run, nil
}

func (s *Service) simulate(project *models.Project, mode models.CompareMode, scope string) (*models.RunResult, models.EstimateResult, error) {
	plan, err := s.Plan(project, mode, scope)
	if err != nil {
		return nil, models.EstimateResult{}, err
	}
	estimates := s.estimate(project)

	seedScope := scope
	if seedScope == "" {
		seedScope = actuals.ScopeAll
	}
	outcome := actuals.Simulate(actuals.Seed(project.ID, seedScope, mode), project.ScopedJobs(scope), estimates, plan)

	regime := project.ReportingRegime
	if regime == "" {
		regime = s.defaults.ReportingRegime
	}
	run := &models.RunResult{
		ID:          "run_" + uuid.New().String(),
		ProjectID:   project.ID,
		At:          s.now().UTC(),
		Scope:       seedScope,
		CompareMode: mode,
		Regime:      regime,
		Jobs:        outcome.Jobs,
		Totals:      outcome.Totals,
		Skipped:     outcome.Skipped,
	}
	return run, estimates, nil
}

// CreateProject stores a new project and records it in the audit log
func (s *Service) CreateProject(project *models.Project, actor string) error {
	if project.ReportingRegime == "" {
		project.ReportingRegime = s.defaults.ReportingRegime
	}
	if err := s.store.CreateProject(project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	s.audit(actor, models.AuditProjectCreated, project, map[string]interface{}{"jobs": len(project.Jobs)})
	return nil
}

// UpdateProject replaces a stored project and records it in the audit log
func (s *Service) UpdateProject(project *models.Project, actor string) error {
	if err := s.store.UpdateProject(project); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	s.audit(actor, models.AuditProjectUpdated, project, map[string]interface{}{"jobs": len(project.Jobs)})
	return nil
}

// GetProject retrieves a stored project
func (s *Service) GetProject(id string) (*models.Project, error) {
	return s.store.GetProject(id)
}

// ListProjects lists stored projects
func (s *Service) ListProjects() ([]*models.Project, error) {
	return s.store.ListProjects()
}

// RunProject simulates a run of a stored project, stores it and records it in the audit log
func (s *Service) RunProject(projectID string, mode models.CompareMode, scope, actor string) (*models.RunResult, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	run, estimates, err := s.simulate(project, mode, scope)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to store run: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveProjectEstimate(project.ID, estimates)
		s.metrics.ObserveProjectRun(run)
	}
	s.audit(actor, models.AuditRunCompleted, project, map[string]interface{}{
		"runId":   run.ID,
		"mode":    string(mode),
		"scope":   run.Scope,
		"jobs":    len(run.Jobs),
		"skipped": len(run.Skipped),
	})
	return run, nil
}

// ListRuns lists the latest runs of a stored project
func (s *Service) ListRuns(projectID string, limit int) ([]models.RunResult, error) {
	if _, err := s.store.GetProject(projectID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	return s.store.ListRuns(projectID, limit)
}

// ListAudit lists audit events, optionally for one project
func (s *Service) ListAudit(projectID string, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	return s.store.ListEvents(projectID, limit)
}

func (s *Service) audit(actor string, action models.AuditAction, project *models.Project, meta map[string]interface{}) {
	event := &models.AuditEvent{
		ID:        "aud_" + uuid.New().String(),
		At:        s.now().UTC(),
		Actor:     actor,
		Action:    action,
		Target:    project.Name,
		ProjectID: project.ID,
		Meta:      meta,
	}
	if err := s.store.CreateEvent(event); err != nil {
		log.Printf("Failed to record audit event %s for project %s: %v", action, project.ID, err)
	}
}
