package models

// Confidence grades how tightly a majorant bounds the real outcome
type Confidence string

const (
	ConfidenceLow  Confidence = "LOW"
	ConfidenceMed  Confidence = "MED"
	ConfidenceHigh Confidence = "HIGH"
)

// JobEstimate is the conservative upper bound for a single job
type JobEstimate struct {
	MaxCostUSD   float64    `json:"maxCostUsd"`
	MaxCO2Kg     float64    `json:"maxCO2Kg"`
	MaxPowerKW   float64    `json:"maxPowerKw"`
	MaxTimeHours float64    `json:"maxTimeHours"`
	Confidence   Confidence `json:"confidence"`
	Assumptions  []string   `json:"assumptions"`
}

// ProjectEstimate aggregates job estimates. Power is a peak, the rest are sums
type ProjectEstimate struct {
	MaxCostUSD   float64    `json:"maxCostUsd"`
	MaxCO2Kg     float64    `json:"maxCO2Kg"`
	MaxPowerKW   float64    `json:"maxPowerKw"`
	MaxTimeHours float64    `json:"maxTimeHours"`
	Confidence   Confidence `json:"confidence"`
	JobCount     int        `json:"jobCount"`
	Assumptions  []string   `json:"assumptions"`
}

// JobFailure records why a job could not be estimated or planned
type JobFailure struct {
	JobID   string      `json:"jobId"`
	JobName string      `json:"jobName"`
	Code    FailureCode `json:"code"`
	Reason  string      `json:"reason"`
}

// EstimateResult is a partial-success result: failed jobs never reach Totals
type EstimateResult struct {
	PerJob   map[string]JobEstimate `json:"perJob"`
	Totals   ProjectEstimate        `json:"totals"`
	Failures map[string]JobFailure  `json:"failures,omitempty"`
}
