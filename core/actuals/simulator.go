package actuals

import (
	"hash/fnv"
	"math"

	"carbon-planner/core/models"
)

// ScopeAll is the seed scope used when every job of a project runs
const ScopeAll = "ALL"

// Fractions of the majorant drawn for each simulated job
const (
	minUsageFraction = 0.55
	usageSpread      = 0.30
	minPowerFraction = 0.85
	powerSpread      = 0.15
	minTimeFraction  = 0.70
	timeSpread       = 0.25
)

// Seed derives the deterministic seed of a run from its identity
func Seed(projectID, scope string, mode models.CompareMode) uint32 {
	if scope == "" {
		scope = ScopeAll
	}
	h := fnv.New32a()
	h.Write([]byte(projectID + scope + string(mode)))
	return h.Sum32()
}

// Stream is a mulberry32 pseudo-random stream of floats in [0, 1)
type Stream struct {
	state uint32
}

// NewStream creates a stream starting at seed
func NewStream(seed uint32) *Stream {
	return &Stream{state: seed}
}

// Next returns the next value of the stream
func (s *Stream) Next() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// Outcome is the simulated result of running a set of planned jobs
type Outcome struct {
	Jobs    []models.JobActual
	Totals  models.ActualTotals
	Skipped []models.JobFailure
}

// Simulate draws actuals for every job that has both an estimate and a plan
// item. Each actual is a fraction of the job's majorant, so it never exceeds it.
func Simulate(seed uint32, jobs []models.Job, estimates models.EstimateResult, plan models.Plan) Outcome {
	items := make(map[string]models.PlanItem, len(plan.Items))
	for _, item := range plan.Items {
		items[item.JobID] = item
	}
	infeasible := make(map[string]models.JobFailure, len(plan.Infeasible))
	for _, f := range plan.Infeasible {
		infeasible[f.JobID] = f
	}

	rnd := NewStream(seed)
	out := Outcome{Jobs: []models.JobActual{}}
	for i := range jobs {
		job := &jobs[i]
		est, ok := estimates.PerJob[job.ID]
		if !ok {
			out.Skipped = append(out.Skipped, skipped(job, estimates.Failures, infeasible))
			continue
		}
		item, ok := items[job.ID]
		if !ok {
			out.Skipped = append(out.Skipped, skipped(job, estimates.Failures, infeasible))
			continue
		}

		usage := minUsageFraction + rnd.Next()*usageSpread
		power := minPowerFraction + rnd.Next()*powerSpread
		hours := minTimeFraction + rnd.Next()*timeSpread

		actual := models.JobActual{
			JobID:           job.ID,
			ActualCostUSD:   cents(est.MaxCostUSD * usage),
			ActualCO2Kg:     cents(est.MaxCO2Kg * usage),
			ActualPowerKW:   cents(est.MaxPowerKW * power),
			ActualTimeHours: cents(est.MaxTimeHours * hours),
			Region:          item.Region,
			Provider:        item.Provider,
			TimeWindowLabel: item.TimeWindowLabel,
			RationaleTags:   item.RationaleTags,
		}
		out.Jobs = append(out.Jobs, actual)

		out.Totals.CostUSD += actual.ActualCostUSD
		out.Totals.CO2Kg += actual.ActualCO2Kg
		out.Totals.TimeHours += actual.ActualTimeHours
		out.Totals.PeakPower = math.Max(out.Totals.PeakPower, actual.ActualPowerKW)
	}
	return out
}

func skipped(job *models.Job, failures map[string]models.JobFailure, infeasible map[string]models.JobFailure) models.JobFailure {
	if f, ok := failures[job.ID]; ok {
		return f
	}
	if f, ok := infeasible[job.ID]; ok {
		return f
	}
	return models.JobFailure{JobID: job.ID, JobName: job.Name, Code: models.FailureInfeasiblePlan, Reason: "job has no plan item"}
}

// cents truncates to two decimals, never rounding above the input
func cents(v float64) float64 {
	return math.Floor(v*100) / 100
}
