package monitoring

import (
	"net/http"

	"carbon-planner/core/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsExporter exports planner metrics for Prometheus/Grafana
type MetricsExporter struct {
	registry    *prometheus.Registry
	costTracker *CostTracker

	estimatedJobs  *prometheus.CounterVec
	planItems      *prometheus.CounterVec
	infeasibleJobs *prometheus.CounterVec
	runs           *prometheus.CounterVec
	maxCost        *prometheus.GaugeVec
	maxCO2         *prometheus.GaugeVec
	actualCost     *prometheus.GaugeVec
	actualCO2      *prometheus.GaugeVec
}

// NewMetricsExporter creates a new metrics exporter with its own registry
func NewMetricsExporter(costTracker *CostTracker) *MetricsExporter {
	me := &MetricsExporter{
		registry:    prometheus.NewRegistry(),
		costTracker: costTracker,
		estimatedJobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbon_planner_estimated_jobs_total",
				Help: "Jobs processed by the majorant estimator, by outcome",
			},
			[]string{"outcome"},
		),
		planItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbon_planner_plan_items_total",
				Help: "Placements selected by the plan selector",
			},
			[]string{"mode", "provider", "region"},
		),
		infeasibleJobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbon_planner_infeasible_jobs_total",
				Help: "Jobs that could not be placed, by failure code",
			},
			[]string{"mode", "code"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbon_planner_runs_total",
				Help: "Simulated runs completed",
			},
			[]string{"mode"},
		),
		maxCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carbon_planner_project_max_cost_usd",
				Help: "Latest worst-case cost ceiling per project",
			},
			[]string{"project_id"},
		),
		maxCO2: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carbon_planner_project_max_co2_kg",
				Help: "Latest worst-case CO2 ceiling per project",
			},
			[]string{"project_id"},
		),
		actualCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carbon_planner_project_actual_cost_usd",
				Help: "Simulated cost of the latest run per project",
			},
			[]string{"project_id"},
		),
		actualCO2: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carbon_planner_project_actual_co2_kg",
				Help: "Simulated CO2 of the latest run per project",
			},
			[]string{"project_id"},
		),
	}

	me.registry.MustRegister(
		me.estimatedJobs,
		me.planItems,
		me.infeasibleJobs,
		me.runs,
		me.maxCost,
		me.maxCO2,
		me.actualCost,
		me.actualCO2,
	)
	return me
}

// Registry exposes the underlying registry
func (me *MetricsExporter) Registry() *prometheus.Registry {
	return me.registry
}

// Handler serves the registry in the Prometheus exposition format
func (me *MetricsExporter) Handler() http.Handler {
	return promhttp.HandlerFor(me.registry, promhttp.HandlerOpts{})
}

// ObserveEstimate counts the jobs of an estimate. It records no per-project
// series, so it is safe for inline documents.
func (me *MetricsExporter) ObserveEstimate(result models.EstimateResult) {
	me.estimatedJobs.WithLabelValues("ok").Add(float64(len(result.PerJob)))
	me.estimatedJobs.WithLabelValues("failed").Add(float64(len(result.Failures)))
}

// ObserveProjectEstimate records the ceilings of a stored project
func (me *MetricsExporter) ObserveProjectEstimate(projectID string, result models.EstimateResult) {
	me.ObserveEstimate(result)
	me.maxCost.WithLabelValues(projectID).Set(result.Totals.MaxCostUSD)
	me.maxCO2.WithLabelValues(projectID).Set(result.Totals.MaxCO2Kg)
	if me.costTracker != nil {
		me.costTracker.TrackEstimate(projectID, result.Totals)
	}
}

// ObservePlan records a plan
func (me *MetricsExporter) ObservePlan(plan models.Plan) {
	mode := string(plan.CompareMode)
	for _, item := range plan.Items {
		me.planItems.WithLabelValues(mode, item.Provider, item.Region).Inc()
	}
	for _, f := range plan.Infeasible {
		me.infeasibleJobs.WithLabelValues(mode, string(f.Code)).Inc()
	}
}

// ObserveRun counts a completed run without recording per-project series
func (me *MetricsExporter) ObserveRun(run *models.RunResult) {
	me.runs.WithLabelValues(string(run.CompareMode)).Inc()
}

// ObserveProjectRun records the actuals of a run of a stored project
func (me *MetricsExporter) ObserveProjectRun(run *models.RunResult) {
	me.ObserveRun(run)
	me.actualCost.WithLabelValues(run.ProjectID).Set(run.Totals.CostUSD)
	me.actualCO2.WithLabelValues(run.ProjectID).Set(run.Totals.CO2Kg)
	if me.costTracker != nil {
		me.costTracker.TrackRun(run)
	}
}
