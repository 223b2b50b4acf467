package monitoring

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"carbon-planner/core/models"
)

func TestCostTrackerHeadroom(t *testing.T) {
	ct := NewCostTracker()
	if _, _, ok := ct.Headroom("p"); ok {
		t.Fatalf("Headroom() ok for untracked project")
	}

	ct.TrackEstimate("p", models.ProjectEstimate{MaxCostUSD: 100, MaxCO2Kg: 10})
	ct.TrackRun(&models.RunResult{ProjectID: "p", Totals: models.ActualTotals{CostUSD: 60, CO2Kg: 7, PeakPower: 2}})
	ct.TrackRun(&models.RunResult{ProjectID: "p", Totals: models.ActualTotals{CostUSD: 70, CO2Kg: 6, PeakPower: 1}})

	cost, co2, ok := ct.Headroom("p")
	if !ok || cost != 30 || co2 != 4 {
		t.Fatalf("Headroom() = %v, %v, %v, expected 30, 4, true", cost, co2, ok)
	}
	pc, _ := ct.Get("p")
	if pc.Runs != 2 || pc.CostUSD != 130 || pc.PeakPowerKW != 2 {
		t.Fatalf("Get() = %+v, expected 2 runs, 130 USD, peak 2", pc)
	}
}

func TestMetricsExporterServesMetrics(t *testing.T) {
	me := NewMetricsExporter(NewCostTracker())
	me.ObserveProjectEstimate("p1", models.EstimateResult{
		PerJob: map[string]models.JobEstimate{"a": {}},
		Totals: models.ProjectEstimate{MaxCostUSD: 42, MaxCO2Kg: 3},
	})
	me.ObservePlan(models.Plan{
		CompareMode: models.CompareGreenest,
		Items:       []models.PlanItem{{JobID: "a", Provider: "GCP", Region: "SE"}},
		Infeasible:  []models.InfeasibleJob{{JobID: "b", Code: models.FailureInfeasibleBudget}},
	})
	me.ObserveProjectRun(&models.RunResult{ProjectID: "p1", CompareMode: models.CompareGreenest, Totals: models.ActualTotals{CostUSD: 30}})

	rec := httptest.NewRecorder()
	me.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`carbon_planner_project_max_cost_usd{project_id="p1"} 42`,
		`carbon_planner_plan_items_total{mode="GREENEST",provider="GCP",region="SE"} 1`,
		`carbon_planner_infeasible_jobs_total{code="INFEASIBLE_BUDGET",mode="GREENEST"} 1`,
		`carbon_planner_runs_total{mode="GREENEST"} 1`,
		`carbon_planner_estimated_jobs_total{outcome="ok"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
	if _, _, ok := me.costTracker.Headroom("p1"); !ok {
		t.Fatalf("run not forwarded to cost tracker")
	}
}

func TestInlineObservationsRecordNoProjectSeries(t *testing.T) {
	ct := NewCostTracker()
	me := NewMetricsExporter(ct)
	for i := 0; i < 50; i++ {
		me.ObserveEstimate(models.EstimateResult{
			PerJob: map[string]models.JobEstimate{"a": {}},
			Totals: models.ProjectEstimate{MaxCostUSD: 42},
		})
		me.ObserveRun(&models.RunResult{ProjectID: "proj_inline", CompareMode: models.CompareAuto})
	}

	if got := len(ct.Snapshot()); got != 0 {
		t.Fatalf("Snapshot() has %d projects, expected 0", got)
	}
	rec := httptest.NewRecorder()
	me.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if strings.Contains(string(body), "project_id=") {
		t.Fatalf("metrics output has per-project series:\n%s", body)
	}
	if !strings.Contains(string(body), `carbon_planner_estimated_jobs_total{outcome="ok"} 50`) {
		t.Fatalf("metrics output missing estimate counter:\n%s", body)
	}
}
