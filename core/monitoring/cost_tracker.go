package monitoring

import (
	"sort"
	"sync"

	"carbon-planner/core/models"
)

// CostTracker keeps per-project ceilings and cumulative simulated actuals, so
// the headroom left under each majorant can be reported
type CostTracker struct {
	projects map[string]*ProjectCost
	mu       sync.RWMutex
}

// ProjectCost is the tracked state of one project
type ProjectCost struct {
	ProjectID   string
	Ceiling     models.ProjectEstimate
	Runs        int
	CostUSD     float64 // Cumulative over runs
	CO2Kg       float64 // Cumulative over runs
	LastCost    float64
	LastCO2Kg   float64
	PeakPowerKW float64 // Highest peak seen in any run
}

// NewCostTracker creates a new cost tracker
func NewCostTracker() *CostTracker {
	return &CostTracker{
		projects: make(map[string]*ProjectCost),
	}
}

// TrackEstimate records the latest project ceilings
func (ct *CostTracker) TrackEstimate(projectID string, totals models.ProjectEstimate) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	ct.get(projectID).Ceiling = totals
}

// TrackRun adds the actuals of a completed run
func (ct *CostTracker) TrackRun(run *models.RunResult) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	pc := ct.get(run.ProjectID)
	pc.Runs++
	pc.CostUSD += run.Totals.CostUSD
	pc.CO2Kg += run.Totals.CO2Kg
	pc.LastCost = run.Totals.CostUSD
	pc.LastCO2Kg = run.Totals.CO2Kg
	if run.Totals.PeakPower > pc.PeakPowerKW {
		pc.PeakPowerKW = run.Totals.PeakPower
	}
}

// Get returns a copy of the tracked state of a project
func (ct *CostTracker) Get(projectID string) (ProjectCost, bool) {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	pc, ok := ct.projects[projectID]
	if !ok {
		return ProjectCost{}, false
	}
	return *pc, true
}

// Headroom returns how far the last run stayed below the cost and CO2 ceilings
func (ct *CostTracker) Headroom(projectID string) (costUSD, co2Kg float64, ok bool) {
	pc, ok := ct.Get(projectID)
	if !ok || pc.Runs == 0 {
		return 0, 0, false
	}
	return pc.Ceiling.MaxCostUSD - pc.LastCost, pc.Ceiling.MaxCO2Kg - pc.LastCO2Kg, true
}

// Snapshot returns every tracked project ordered by id
func (ct *CostTracker) Snapshot() []ProjectCost {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	out := make([]ProjectCost, 0, len(ct.projects))
	for _, pc := range ct.projects {
		out = append(out, *pc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out
}

func (ct *CostTracker) get(projectID string) *ProjectCost {
	pc, ok := ct.projects[projectID]
	if !ok {
		pc = &ProjectCost{ProjectID: projectID}
		ct.projects[projectID] = pc
	}
	return pc
}
