package models

import "time"

// JobActual is the simulated post-run outcome of one job
type JobActual struct {
	JobID           string   `json:"jobId"`
	ActualCostUSD   float64  `json:"actualCostUsd"`
	ActualCO2Kg     float64  `json:"actualCO2Kg"`
	ActualPowerKW   float64  `json:"actualPowerKw"`
	ActualTimeHours float64  `json:"actualTimeHours"`
	Region          string   `json:"region"`
	Provider        string   `json:"provider"`
	TimeWindowLabel string   `json:"timeWindowLabel"`
	RationaleTags   []string `json:"rationaleTags"`
}

// ActualTotals aggregates actuals the same way estimates are aggregated
type ActualTotals struct {
	CostUSD   float64 `json:"costUsd"`
	CO2Kg     float64 `json:"co2Kg"`
	PeakPower float64 `json:"peakPowerKw"`
	TimeHours float64 `json:"timeHours"`
}

// RunResult is one simulated run of a project
type RunResult struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	At          time.Time       `json:"at"`
	Scope       string          `json:"scope"`
	CompareMode CompareMode     `json:"compareMode"`
	Regime      ReportingRegime `json:"regime"`
	Jobs        []JobActual     `json:"jobs"`
	Totals      ActualTotals    `json:"totals"`
	Skipped     []JobFailure    `json:"skipped,omitempty"`
}
