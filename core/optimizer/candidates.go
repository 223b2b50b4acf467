package optimizer

import (
	"time"

	"carbon-planner/core/estimator"
	"carbon-planner/core/models"
)

// Candidate is one (region, provider, window) option for a job
type Candidate struct {
	Placement estimator.Placement
	Window    models.TimeWindow
	Metrics   estimator.Metrics
	Score     float64
}

// windowsFor returns the windows a job may run in: immediate always, deferred
// windows only for batchable jobs that would still finish before the deadline.
func (ps *PlanSelector) windowsFor(job *models.Job, now time.Time) []models.TimeWindow {
	windows := []models.TimeWindow{models.ImmediateWindow}
	if !job.BatchableShiftable {
		return windows
	}

	runtime := job.Compute.ExpectedRuntimeHours * ps.estimator.Buffers().Overrun
	for _, w := range ps.windows {
		if !finishesBy(job, now, w.DelayHours+runtime) {
			continue
		}
		windows = append(windows, w)
	}
	return windows
}

// finishesBy reports whether a job started at now and taking hours ends by its deadline
func finishesBy(job *models.Job, now time.Time, hours float64) bool {
	end, ok := job.DeadlineEnd()
	if !ok || now.IsZero() {
		return true
	}
	finish := now.Add(time.Duration(hours * float64(time.Hour)))
	return !finish.After(end)
}

func (ps *PlanSelector) generateCandidates(job *models.Job, placements []estimator.Placement, now time.Time) ([]Candidate, error) {
	windows := ps.windowsFor(job, now)
	candidates := make([]Candidate, 0, len(placements)*len(windows))
	for _, p := range placements {
		for _, w := range windows {
			m, err := ps.estimator.Candidate(job, p, w)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, Candidate{Placement: p, Window: w, Metrics: m})
		}
	}
	return candidates, nil
}

// filterHardCaps drops candidates above the profile's budget or CO2 caps
func filterHardCaps(candidates []Candidate, hard models.HardCaps) []Candidate {
	var kept []Candidate
	for _, c := range candidates {
		if hard.MaxBudgetUSD != nil && c.Metrics.CostUSD > *hard.MaxBudgetUSD {
			continue
		}
		if hard.MaxCO2Kg != nil && c.Metrics.CO2Kg > *hard.MaxCO2Kg {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
