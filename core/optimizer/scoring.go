package optimizer

import (
	"math"
	"sort"

	"carbon-planner/core/estimator"
	"carbon-planner/core/models"
)

const scoreEpsilon = 1e-9

// metricRange is the observed span of one metric across a candidate set
type metricRange struct {
	min, max float64
}

func (r metricRange) normalize(v float64) float64 {
	span := r.max - r.min
	if span <= 0 {
		return 0
	}
	return (v - r.min) / span
}

func rangeOf(candidates []Candidate, metric func(estimator.Metrics) float64) metricRange {
	r := metricRange{min: math.Inf(1), max: math.Inf(-1)}
	for _, c := range candidates {
		v := metric(c.Metrics)
		r.min = math.Min(r.min, v)
		r.max = math.Max(r.max, v)
	}
	return r
}

func co2Of(m estimator.Metrics) float64   { return m.CO2Kg }
func costOf(m estimator.Metrics) float64  { return m.CostUSD }
func timeOf(m estimator.Metrics) float64  { return m.TimeHours }
func powerOf(m estimator.Metrics) float64 { return m.PowerKW }

// scoreCandidates assigns a score to each candidate; lower is better
func scoreCandidates(candidates []Candidate, mode models.CompareMode, weights models.Weights) {
	switch mode {
	case models.CompareGreenest:
		for i := range candidates {
			candidates[i].Score = candidates[i].Metrics.CO2Kg
		}
	case models.CompareCheapest:
		for i := range candidates {
			candidates[i].Score = candidates[i].Metrics.CostUSD
		}
	case models.CompareFastest:
		for i := range candidates {
			candidates[i].Score = candidates[i].Metrics.TimeHours
		}
	case models.CompareAuto:
		co2 := rangeOf(candidates, co2Of)
		cost := rangeOf(candidates, costOf)
		hours := rangeOf(candidates, timeOf)
		power := rangeOf(candidates, powerOf)
		for i := range candidates {
			m := candidates[i].Metrics
			candidates[i].Score = weights.CO2*co2.normalize(m.CO2Kg) +
				weights.Cost*cost.normalize(m.CostUSD) +
				weights.Time*hours.normalize(m.TimeHours) +
				weights.Power*power.normalize(m.PowerKW)
		}
	}
}

// scoreKey snaps a score onto a fixed grid so float noise below scoreEpsilon
// compares as an exact tie.
func scoreKey(score float64) float64 {
	return math.Round(score / scoreEpsilon)
}

// rankCandidates sorts best first. Ties go to provider name, then region code,
// then the immediate window, then window label.
func rankCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if ka, kb := scoreKey(a.Score), scoreKey(b.Score); ka != kb {
			return ka < kb
		}
		if a.Placement.Provider.Name != b.Placement.Provider.Name {
			return a.Placement.Provider.Name < b.Placement.Provider.Name
		}
		if a.Placement.Region.Code != b.Placement.Region.Code {
			return a.Placement.Region.Code < b.Placement.Region.Code
		}
		if a.Window.Deferred() != b.Window.Deferred() {
			return !a.Window.Deferred()
		}
		return a.Window.Label < b.Window.Label
	})
}
