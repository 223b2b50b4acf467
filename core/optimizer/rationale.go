package optimizer

import (
	"carbon-planner/core/models"
)

// Rationale tags, emitted in this order
const (
	TagLowestCarbon   = "Lowest carbon intensity"
	TagCheapest       = "Cheapest eligible provider"
	TagFastest        = "Fastest completion"
	TagLowestPower    = "Lowest peak power"
	TagMeetsDeadline  = "Meets deadline"
	TagShiftedWindow  = "Batchable — shifted to greener window"
	TagWeightedOption = "Objective: weighted profile"
)

func rationaleTags(best Candidate, candidates []Candidate, job *models.Job, req PlanRequest) []string {
	var tags []string
	if atMin(best.Metrics.CO2Kg, rangeOf(candidates, co2Of)) {
		tags = append(tags, TagLowestCarbon)
	}
	if atMin(best.Metrics.CostUSD, rangeOf(candidates, costOf)) {
		tags = append(tags, TagCheapest)
	}
	if atMin(best.Metrics.TimeHours, rangeOf(candidates, timeOf)) {
		tags = append(tags, TagFastest)
	}
	if atMin(best.Metrics.PowerKW, rangeOf(candidates, powerOf)) {
		tags = append(tags, TagLowestPower)
	}
	if job.Deadline != nil && !req.Now.IsZero() && finishesBy(job, req.Now, best.Metrics.TimeHours) {
		tags = append(tags, TagMeetsDeadline)
	}
	if best.Window.Deferred() {
		tags = append(tags, TagShiftedWindow)
	}
	return append(tags, objectiveTag(req.Mode))
}

func objectiveTag(mode models.CompareMode) string {
	if mode == models.CompareAuto {
		return TagWeightedOption
	}
	return "Objective: " + string(mode)
}

func atMin(v float64, r metricRange) bool {
	return v-r.min <= scoreEpsilon
}
