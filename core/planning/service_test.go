package planning

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"carbon-planner/core/catalog"
	"carbon-planner/core/estimator"
	"carbon-planner/core/models"
	"carbon-planner/core/monitoring"
	"carbon-planner/core/optimizer"
	"carbon-planner/core/repository"
	"carbon-planner/core/spec"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *repository.MemoryStore) {
	t.Helper()
	svc, store, _ := newTrackedService(t)
	return svc, store
}

func newTrackedService(t *testing.T) (*Service, *repository.MemoryStore, *monitoring.CostTracker) {
	t.Helper()
	cat := catalog.Default()
	est := estimator.NewEstimator(cat, estimator.DefaultBuffers())
	store := repository.NewMemoryStore()
	tracker := monitoring.NewCostTracker()
	svc := NewService(est, optimizer.NewPlanSelector(est, cat.Windows), store,
		monitoring.NewMetricsExporter(tracker),
		Defaults{ReportingRegime: models.RegimeBoth, Profile: spec.SeedProfile(), Compliance: spec.SeedPolicy()})
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, store, tracker
}

func TestParseCompareMode(t *testing.T) {
	cases := map[string]models.CompareMode{
		"":          models.CompareAuto,
		"greenest":  models.CompareGreenest,
		" FASTEST ": models.CompareFastest,
	}
	for raw, expected := range cases {
		got, err := ParseCompareMode(raw)
		if err != nil || got != expected {
			t.Fatalf("ParseCompareMode(%q) = %s, %v, expected %s", raw, got, err, expected)
		}
	}
	if _, err := ParseCompareMode("slowest"); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("ParseCompareMode(slowest) error = %v, expected validation error", err)
	}
}

func TestSeedProjectPlan(t *testing.T) {
	svc, _ := newTestService(t)
	project := spec.SeedProject(fixedNow)

	plan, err := svc.Plan(project, models.CompareAuto, "")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.Items)+len(plan.Infeasible) != len(project.Jobs) {
		t.Fatalf("plan covers %d jobs, expected %d", len(plan.Items)+len(plan.Infeasible), len(project.Jobs))
	}
	for _, item := range plan.Items {
		if item.Region == "US" {
			t.Fatalf("job %s placed in US under an EU+CA whitelist", item.JobID)
		}
		// The seed forbids cross-border transfer and GCP replicates.
		if item.Provider == "GCP" {
			t.Fatalf("job %s placed on GCP despite noCrossBorderTransfer", item.JobID)
		}
	}
}

func TestRunProjectStaysUnderEstimates(t *testing.T) {
	svc, store := newTestService(t)
	project := spec.SeedProject(fixedNow)
	if err := svc.CreateProject(project, "tester"); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	run, err := svc.RunProject(project.ID, models.CompareGreenest, "", "tester")
	if err != nil {
		t.Fatalf("RunProject() error = %v", err)
	}
	if run.Scope != "ALL" || run.Regime != models.RegimeBoth || !run.At.Equal(fixedNow) {
		t.Fatalf("run = %+v, expected ALL/BOTH at fixed time", run)
	}

	estimates := svc.Estimate(project)
	for _, actual := range run.Jobs {
		e := estimates.PerJob[actual.JobID]
		if actual.ActualCostUSD > e.MaxCostUSD || actual.ActualCO2Kg > e.MaxCO2Kg ||
			actual.ActualPowerKW > e.MaxPowerKW || actual.ActualTimeHours > e.MaxTimeHours {
			t.Fatalf("actual %+v exceeds estimate %+v", actual, e)
		}
	}
	if run.Totals.CostUSD > estimates.Totals.MaxCostUSD {
		t.Fatalf("run cost %v exceeds project ceiling %v", run.Totals.CostUSD, estimates.Totals.MaxCostUSD)
	}

	runs, err := svc.ListRuns(project.ID, 0)
	if err != nil || len(runs) != 1 || runs[0].ID != run.ID {
		t.Fatalf("ListRuns() = %+v, %v, expected the stored run", runs, err)
	}

	events, _ := store.ListEvents(project.ID, 0)
	if len(events) != 2 || events[0].Action != models.AuditRunCompleted || events[1].Action != models.AuditProjectCreated {
		t.Fatalf("audit events = %+v, expected run_completed then project_created", events)
	}
	if events[0].Actor != "tester" {
		t.Fatalf("audit actor = %q, expected tester", events[0].Actor)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	svc, _ := newTestService(t)
	project := spec.SeedProject(fixedNow)

	first, err := svc.Simulate(project, models.CompareAuto, "job_003")
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	second, err := svc.Simulate(project, models.CompareAuto, "job_003")
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("runs should get distinct ids")
	}
	if !reflect.DeepEqual(first.Jobs, second.Jobs) {
		t.Fatalf("same seed produced different actuals:\n%+v\n%+v", first.Jobs, second.Jobs)
	}
	if len(first.Jobs) != 1 || first.Jobs[0].JobID != "job_003" || first.Scope != "job_003" {
		t.Fatalf("run = %+v, expected only job_003", first)
	}
}

func TestRunProjectNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.RunProject("missing", models.CompareAuto, "", "tester"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("RunProject(missing) error = %v, expected ErrNotFound", err)
	}
	if _, err := svc.ListRuns("missing", 0); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("ListRuns(missing) error = %v, expected ErrNotFound", err)
	}
}

func TestCreateProjectAppliesDefaultRegime(t *testing.T) {
	svc, _ := newTestService(t)
	project := &models.Project{ID: "p", Name: "bare"}
	if err := svc.CreateProject(project, "tester"); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	stored, err := svc.GetProject("p")
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if stored.ReportingRegime != models.RegimeBoth {
		t.Fatalf("ReportingRegime = %s, expected default BOTH", stored.ReportingRegime)
	}

	// A project without profile or policy falls back to the workspace defaults.
	stored.Jobs = []models.Job{{
		ID: "j", Name: "j", Type: models.JobTypeCI, Priority: models.PriorityLow,
		Compute:           models.ComputeSpec{GPUClass: models.GPUNone, ExpectedRuntimeHours: 1},
		InheritCompliance: true, InheritProjectSettings: true,
	}}
	result := svc.Estimate(stored)
	if _, ok := result.PerJob["j"]; !ok {
		t.Fatalf("Estimate() failures = %+v, expected defaults to apply", result.Failures)
	}
}

func TestInlineCallsAreNotTracked(t *testing.T) {
	svc, _, tracker := newTrackedService(t)
	doc := []byte(`{"name": "inline", "jobs": [{"name": "j", "compute": {"expectedRuntimeHours": 2}}]}`)

	for i := 0; i < 100; i++ {
		project, err := spec.ParseProject(doc, spec.FormatJSON)
		if err != nil {
			t.Fatalf("ParseProject() error = %v", err)
		}
		svc.Estimate(project)
		if _, err := svc.Simulate(project, models.CompareAuto, ""); err != nil {
			t.Fatalf("Simulate() error = %v", err)
		}
	}
	if got := len(tracker.Snapshot()); got != 0 {
		t.Fatalf("tracked projects after inline calls = %d, expected 0", got)
	}
}

func TestStoredProjectIsTracked(t *testing.T) {
	svc, _, tracker := newTrackedService(t)
	project := spec.SeedProject(fixedNow)
	if err := svc.CreateProject(project, "tester"); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	result, err := svc.EstimateProject(project.ID)
	if err != nil {
		t.Fatalf("EstimateProject() error = %v", err)
	}
	pc, ok := tracker.Get(project.ID)
	if !ok || pc.Ceiling.MaxCostUSD != result.Totals.MaxCostUSD {
		t.Fatalf("tracker = %+v, %v, expected ceiling %v", pc, ok, result.Totals.MaxCostUSD)
	}

	if _, err := svc.RunProject(project.ID, models.CompareAuto, "", "tester"); err != nil {
		t.Fatalf("RunProject() error = %v", err)
	}
	if pc, _ := tracker.Get(project.ID); pc.Runs != 1 {
		t.Fatalf("tracked runs = %d, expected 1", pc.Runs)
	}
	if _, err := svc.EstimateProject("missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("EstimateProject(missing) error = %v, expected ErrNotFound", err)
	}
}
