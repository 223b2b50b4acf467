package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNoAdmissibleRegion = errors.New("no admissible region")
	ErrInfeasiblePlan     = errors.New("infeasible plan")
	ErrInfeasibleBudget   = errors.New("infeasible budget")
)

// FailureCode is the stable, exported tag for a per-job failure
type FailureCode string

const (
	FailureValidation         FailureCode = "VALIDATION"
	FailureNoAdmissibleRegion FailureCode = "NO_ADMISSIBLE_REGION"
	FailureInfeasiblePlan     FailureCode = "INFEASIBLE_PLAN"
	FailureInfeasibleBudget   FailureCode = "INFEASIBLE_BUDGET"
)

// ValidationError reports malformed job or profile input
type ValidationError struct {
	JobID  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.JobID == "" {
		return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: job %s: %s: %s", ErrValidation, e.JobID, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NoAdmissibleRegionError reports a compliance policy that admits no catalog region
type NoAdmissibleRegionError struct {
	JobID  string
	Policy PolicyType
}

func (e *NoAdmissibleRegionError) Error() string {
	return fmt.Sprintf("%s: job %s: %s policy admits no region", ErrNoAdmissibleRegion, e.JobID, e.Policy)
}

func (e *NoAdmissibleRegionError) Unwrap() error { return ErrNoAdmissibleRegion }

// InfeasiblePlanError reports that no candidate could be built for a job
type InfeasiblePlanError struct {
	JobID  string
	Reason string
}

func (e *InfeasiblePlanError) Error() string {
	return fmt.Sprintf("%s: job %s: %s", ErrInfeasiblePlan, e.JobID, e.Reason)
}

func (e *InfeasiblePlanError) Unwrap() error { return ErrInfeasiblePlan }

// InfeasibleBudgetError reports that hard caps removed every candidate
type InfeasibleBudgetError struct {
	JobID      string
	Candidates int
	Hard       HardCaps
}

func (e *InfeasibleBudgetError) Error() string {
	caps := ""
	if e.Hard.MaxBudgetUSD != nil {
		caps += fmt.Sprintf(" maxBudgetUsd=%.2f", *e.Hard.MaxBudgetUSD)
	}
	if e.Hard.MaxCO2Kg != nil {
		caps += fmt.Sprintf(" maxCO2Kg=%.2f", *e.Hard.MaxCO2Kg)
	}
	return fmt.Sprintf("%s: job %s: all %d candidates exceed hard caps%s", ErrInfeasibleBudget, e.JobID, e.Candidates, caps)
}

func (e *InfeasibleBudgetError) Unwrap() error { return ErrInfeasibleBudget }

// CodeOf maps an engine error to its failure code
func CodeOf(err error) FailureCode {
	switch {
	case errors.Is(err, ErrValidation):
		return FailureValidation
	case errors.Is(err, ErrNoAdmissibleRegion):
		return FailureNoAdmissibleRegion
	case errors.Is(err, ErrInfeasibleBudget):
		return FailureInfeasibleBudget
	default:
		return FailureInfeasiblePlan
	}
}

// NewJobFailure builds the exported failure record for job
func NewJobFailure(job *Job, err error) JobFailure {
	return JobFailure{
		JobID:   job.ID,
		JobName: job.Name,
		Code:    CodeOf(err),
		Reason:  err.Error(),
	}
}
