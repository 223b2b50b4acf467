package estimator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"carbon-planner/core/catalog"
	"carbon-planner/core/compliance"
	"carbon-planner/core/models"
	"carbon-planner/core/profile"
)

// Estimator computes conservative upper bounds for jobs and projects
type Estimator struct {
	catalog   *catalog.Catalog
	evaluator *compliance.Evaluator
	buffers   Buffers
}

// NewEstimator creates a new majorant estimator
func NewEstimator(cat *catalog.Catalog, buffers Buffers) *Estimator {
	return &Estimator{
		catalog:   cat,
		evaluator: compliance.NewEvaluator(cat),
		buffers:   buffers,
	}
}

// Buffers returns the buffers the estimator was built with
func (e *Estimator) Buffers() Buffers {
	return e.buffers
}

// Evaluator returns the compliance evaluator bound to the estimator's catalog
func (e *Estimator) Evaluator() *compliance.Evaluator {
	return e.evaluator
}

// Placement is an admissible (region, provider) pair
type Placement struct {
	Region   models.Region
	Provider models.Provider
}

// Metrics are the majorant-style figures of one placement or job
type Metrics struct {
	CostUSD   float64
	CO2Kg     float64
	PowerKW   float64
	TimeHours float64
}

// Placements enumerates admissible (region, provider) pairs in catalog order
func (e *Estimator) Placements(jobID string, policy models.CompliancePolicy, resolved profile.Resolved) ([]Placement, error) {
	regions := e.evaluator.AdmissibleRegions(policy)
	if len(regions) == 0 {
		return nil, &models.NoAdmissibleRegionError{JobID: jobID, Policy: policy.Type}
	}

	var placements []Placement
	for _, region := range regions {
		for _, provider := range e.catalog.Providers {
			if !resolved.Allows(provider.Name) {
				continue
			}
			if !e.evaluator.EligibleProvider(policy, provider, region.Code) {
				continue
			}
			placements = append(placements, Placement{Region: region, Provider: provider})
		}
	}
	if len(placements) == 0 {
		return nil, &models.InfeasiblePlanError{JobID: jobID, Reason: "no eligible provider serves the admissible regions"}
	}
	return placements, nil
}

// Candidate computes the figures of running job at placement in window
func (e *Estimator) Candidate(job *models.Job, placement Placement, window models.TimeWindow) (Metrics, error) {
	base, err := PowerCeilingKW(job.Compute.GPUClass)
	if err != nil {
		return Metrics{}, err
	}
	power := base * placement.Provider.PUE
	energy := power * job.Compute.ExpectedRuntimeHours * e.buffers.Overrun
	return Metrics{
		CostUSD:   energy * placement.Provider.RatePerKWh * window.PriceFactor * e.buffers.Pricing,
		CO2Kg:     energy*placement.Region.GridIntensityG*window.CarbonFactor/1000 + e.buffers.CO2SafetyKg,
		PowerKW:   power,
		TimeHours: job.Compute.ExpectedRuntimeHours*e.buffers.Overrun + window.DelayHours,
	}, nil
}

// EstimateJob bounds a single job under its effective policy, considering every provider
func (e *Estimator) EstimateJob(job *models.Job, policy models.CompliancePolicy) (models.JobEstimate, error) {
	return e.estimateJob(job, policy, profile.Resolved{})
}

func (e *Estimator) estimateJob(job *models.Job, policy models.CompliancePolicy, resolved profile.Resolved) (models.JobEstimate, error) {
	if err := job.Validate(); err != nil {
		return models.JobEstimate{}, err
	}
	placements, err := e.Placements(job.ID, policy, resolved)
	if err != nil {
		return models.JobEstimate{}, err
	}

	base, err := PowerCeilingKW(job.Compute.GPUClass)
	if err != nil {
		return models.JobEstimate{}, &models.ValidationError{JobID: job.ID, Field: "compute.gpuClass", Reason: err.Error()}
	}

	// Worst provider and worst admissible region, picked independently.
	var worstPUE, worstRate, worstCI float64
	var rateProvider, ciRegion string
	for _, p := range placements {
		worstPUE = math.Max(worstPUE, p.Provider.PUE)
		if p.Provider.RatePerKWh > worstRate {
			worstRate = p.Provider.RatePerKWh
			rateProvider = p.Provider.Name
		}
	}
	for _, r := range e.evaluator.AdmissibleRegions(policy) {
		if r.GridIntensityG > worstCI {
			worstCI = r.GridIntensityG
			ciRegion = r.Code
		}
	}

	power := base * worstPUE
	energy := power * job.Compute.ExpectedRuntimeHours * e.buffers.Overrun
	est := models.JobEstimate{
		MaxCostUSD:   energy * worstRate * e.buffers.Pricing,
		MaxCO2Kg:     energy*worstCI/1000 + e.buffers.CO2SafetyKg,
		MaxPowerKW:   power,
		MaxTimeHours: job.Compute.ExpectedRuntimeHours * e.buffers.Overrun,
	}

	hardware := fmt.Sprintf("%s GPU", job.Compute.GPUClass)
	if job.Compute.GPUClass == models.GPUNone {
		hardware = "CPU baseline"
	}
	est.Assumptions = []string{
		fmt.Sprintf("Power ceiling: %s draw at worst eligible PUE (%.2f)", hardware, worstPUE),
		fmt.Sprintf("Conservative time buffer (x%.2f overrun)", e.buffers.Overrun),
		fmt.Sprintf("Worst-provider pricing (%s, +%.0f%% pricing uncertainty)", rateProvider, (e.buffers.Pricing-1)*100),
		fmt.Sprintf("Highest plausible grid intensity within allowed regions + buffer (%s, %.0f g/kWh, +%.1f kg)", ciRegion, worstCI, e.buffers.CO2SafetyKg),
		"Compliance: " + compliance.Describe(policy),
	}

	est.Confidence, err = e.confidence(job, placements, est.MaxCostUSD, &est.Assumptions)
	if err != nil {
		return models.JobEstimate{}, err
	}
	return est, nil
}

func (e *Estimator) confidence(job *models.Job, placements []Placement, ceiling float64, assumptions *[]string) (models.Confidence, error) {
	if job.Deadline != nil && !job.BatchableShiftable {
		*assumptions = append(*assumptions, "Deadline-bound and not shiftable: estimate is tightly bound")
		return models.ConfidenceHigh, nil
	}

	best := math.Inf(1)
	for _, p := range placements {
		m, err := e.Candidate(job, p, models.ImmediateWindow)
		if err != nil {
			return "", err
		}
		best = math.Min(best, m.CostUSD)
	}
	if ceiling > 0 && (ceiling-best)/ceiling > e.buffers.CostVarianceRatio {
		*assumptions = append(*assumptions, "Wide cost variance across eligible regions/providers: coarse bound")
		return models.ConfidenceLow, nil
	}
	if job.BatchableShiftable {
		*assumptions = append(*assumptions, "Batch window could shift; max assumes unfavorable window")
	} else {
		*assumptions = append(*assumptions, "Flexible schedule without deadline: moderate bound")
	}
	return models.ConfidenceMed, nil
}

// EstimateProject bounds every job of project. A failing job is reported in
// Failures and excluded from Totals; it never aborts its siblings.
func (e *Estimator) EstimateProject(project *models.Project, defaultProfile models.OptimizationProfile, defaultCompliance *models.CompliancePolicy) models.EstimateResult {
	result := models.EstimateResult{
		PerJob:   make(map[string]models.JobEstimate, len(project.Jobs)),
		Failures: make(map[string]models.JobFailure),
	}

	confidence := models.ConfidenceHigh
	for i := range project.Jobs {
		job := &project.Jobs[i]
		est, err := e.estimateInProject(project, job, defaultProfile, defaultCompliance)
		if err != nil {
			result.Failures[job.ID] = models.NewJobFailure(job, err)
			continue
		}

		result.PerJob[job.ID] = est
		result.Totals.MaxCostUSD += est.MaxCostUSD
		result.Totals.MaxCO2Kg += est.MaxCO2Kg
		result.Totals.MaxTimeHours += est.MaxTimeHours
		result.Totals.MaxPowerKW = math.Max(result.Totals.MaxPowerKW, est.MaxPowerKW)
		confidence = lowest(confidence, est.Confidence)
	}

	result.Totals.JobCount = len(result.PerJob)
	if result.Totals.JobCount == 0 {
		confidence = models.ConfidenceLow
	}
	result.Totals.Confidence = confidence
	result.Totals.Assumptions = []string{
		"Project totals = sum of job maxima (cost, CO2, time)",
		"Peak power = max over jobs, not summed",
		"Not probabilistic; deliberately conservative",
	}
	if len(result.Failures) > 0 {
		ids := make([]string, 0, len(result.Failures))
		for id := range result.Failures {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		result.Totals.Assumptions = append(result.Totals.Assumptions,
			fmt.Sprintf("%d job(s) excluded from totals: %s", len(ids), strings.Join(ids, ", ")))
	}
	return result
}

func (e *Estimator) estimateInProject(project *models.Project, job *models.Job, defaultProfile models.OptimizationProfile, defaultCompliance *models.CompliancePolicy) (models.JobEstimate, error) {
	policy, err := compliance.EffectivePolicy(project, job, defaultCompliance)
	if err != nil {
		return models.JobEstimate{}, err
	}
	resolved, err := profile.ResolveFor(project, job, defaultProfile)
	if err != nil {
		return models.JobEstimate{}, err
	}
	return e.estimateJob(job, policy, resolved)
}

func lowest(a, b models.Confidence) models.Confidence {
	rank := func(c models.Confidence) int {
		switch c {
		case models.ConfidenceLow:
			return 0
		case models.ConfidenceMed:
			return 1
		}
		return 2
	}
	if rank(b) < rank(a) {
		return b
	}
	return a
}
