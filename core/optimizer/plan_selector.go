package optimizer

import (
	"fmt"
	"time"

	"carbon-planner/core/compliance"
	"carbon-planner/core/estimator"
	"carbon-planner/core/models"
	"carbon-planner/core/profile"
)

// PlanSelector picks a (region, provider, window) placement for every job
type PlanSelector struct {
	estimator *estimator.Estimator
	windows   []models.TimeWindow
}

// NewPlanSelector creates a new plan selector. windows are the deferred
// low-carbon windows offered to batchable jobs.
func NewPlanSelector(est *estimator.Estimator, windows []models.TimeWindow) *PlanSelector {
	return &PlanSelector{
		estimator: est,
		windows:   windows,
	}
}

// PlanRequest carries everything a plan depends on. Now is the reference time
// for deadline checks; a zero Now disables them.
type PlanRequest struct {
	Project           *models.Project
	DefaultProfile    models.OptimizationProfile
	DefaultCompliance *models.CompliancePolicy
	Mode              models.CompareMode
	Scope             string // Job id, empty for every job
	Now               time.Time
}

// BuildPlan selects a placement for each job in scope. Jobs that cannot be
// placed are reported in Plan.Infeasible; the error is reserved for a malformed
// request.
func (ps *PlanSelector) BuildPlan(req PlanRequest) (models.Plan, error) {
	if req.Project == nil {
		return models.Plan{}, &models.ValidationError{Field: "project", Reason: "missing"}
	}
	if !req.Mode.Valid() {
		return models.Plan{}, &models.ValidationError{Field: "compareMode", Reason: fmt.Sprintf("unknown mode %q", req.Mode)}
	}

	jobs := req.Project.ScopedJobs(req.Scope)
	if req.Scope != "" && len(jobs) == 0 {
		return models.Plan{}, &models.ValidationError{Field: "scope", Reason: fmt.Sprintf("job %q not found in project", req.Scope)}
	}

	plan := models.Plan{
		CompareMode: req.Mode,
		Items:       []models.PlanItem{},
	}
	for i := range jobs {
		job := &jobs[i]
		item, err := ps.planJob(req, job)
		if err != nil {
			plan.Infeasible = append(plan.Infeasible, models.NewJobFailure(job, err))
			continue
		}
		plan.Items = append(plan.Items, item)
	}
	return plan, nil
}

func (ps *PlanSelector) planJob(req PlanRequest, job *models.Job) (models.PlanItem, error) {
	// Step 1: Resolve effective compliance and profile
	policy, err := compliance.EffectivePolicy(req.Project, job, req.DefaultCompliance)
	if err != nil {
		return models.PlanItem{}, err
	}
	resolved, err := profile.ResolveFor(req.Project, job, req.DefaultProfile)
	if err != nil {
		return models.PlanItem{}, err
	}
	if err := job.Validate(); err != nil {
		return models.PlanItem{}, err
	}

	// Step 2: Enumerate admissible placements
	placements, err := ps.estimator.Placements(job.ID, policy, resolved)
	if err != nil {
		return models.PlanItem{}, err
	}

	// Step 3: Generate candidates across windows and apply hard caps
	generated, err := ps.generateCandidates(job, placements, req.Now)
	if err != nil {
		return models.PlanItem{}, err
	}
	if len(generated) == 0 {
		return models.PlanItem{}, &models.InfeasiblePlanError{JobID: job.ID, Reason: "no candidate placement"}
	}
	candidates := filterHardCaps(generated, resolved.Hard)
	if len(candidates) == 0 {
		return models.PlanItem{}, &models.InfeasibleBudgetError{JobID: job.ID, Candidates: len(generated), Hard: resolved.Hard}
	}

	// Step 4: Score and rank
	scoreCandidates(candidates, req.Mode, resolved.Weights)
	rankCandidates(candidates)

	// Step 5: Explain the winner
	best := candidates[0]
	return models.PlanItem{
		JobID:           job.ID,
		JobName:         job.Name,
		Region:          best.Placement.Region.Code,
		Provider:        best.Placement.Provider.Name,
		TimeWindowLabel: best.Window.Label,
		RationaleTags:   rationaleTags(best, candidates, job, req),
	}, nil
}
