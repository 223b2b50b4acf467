package models

// ImmediateWindowLabel is the label of the run-now window
const ImmediateWindowLabel = "Immediate window"

// PlanItem is the selected placement for one job
type PlanItem struct {
	JobID           string   `json:"jobId"`
	JobName         string   `json:"jobName"`
	Region          string   `json:"region"`
	Provider        string   `json:"provider"`
	TimeWindowLabel string   `json:"timeWindowLabel"`
	RationaleTags   []string `json:"rationaleTags"`
}

// InfeasibleJob marks a job for which no candidate survived filtering
type InfeasibleJob = JobFailure

// Plan holds one entry per job in scope, either in Items or in Infeasible
type Plan struct {
	CompareMode CompareMode     `json:"compareMode"`
	Items       []PlanItem      `json:"items"`
	Infeasible  []InfeasibleJob `json:"infeasible,omitempty"`
}
