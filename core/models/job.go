package models

import (
	"fmt"
	"time"
)

// Job represents one compute workload inside a project
type Job struct {
	ID                     string
	Name                   string
	Type                   JobType
	Priority               JobPriority
	Deadline               *time.Time // Calendar date, end of day UTC
	BatchableShiftable     bool
	Compute                ComputeSpec
	InheritCompliance      bool
	OverrideCompliance     *CompliancePolicy
	InheritProjectSettings bool
	OverrideProfile        OptimizationProfile
	Notes                  string
}

// JobType represents the kind of workload
type JobType string

const (
	JobTypeTraining  JobType = "TRAINING"
	JobTypeBatch     JobType = "BATCH"
	JobTypeCI        JobType = "CI"
	JobTypeETL       JobType = "ETL"
	JobTypeInference JobType = "INFERENCE"
	JobTypeCustom    JobType = "CUSTOM"
)

// Valid reports whether t is a known job type
func (t JobType) Valid() bool {
	switch t {
	case JobTypeTraining, JobTypeBatch, JobTypeCI, JobTypeETL, JobTypeInference, JobTypeCustom:
		return true
	}
	return false
}

// JobPriority represents scheduling priority
type JobPriority string

const (
	PriorityLow      JobPriority = "LOW"
	PriorityMedium   JobPriority = "MEDIUM"
	PriorityHigh     JobPriority = "HIGH"
	PriorityCritical JobPriority = "CRITICAL"
)

// Valid reports whether p is a known priority
func (p JobPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// GPUClass is ordered by increasing power draw
type GPUClass string

const (
	GPUNone GPUClass = "NONE"
	GPUT4   GPUClass = "T4"
	GPUL4   GPUClass = "L4"
	GPUA10  GPUClass = "A10"
	GPUA100 GPUClass = "A100"
	GPUH100 GPUClass = "H100"
)

// GPUClasses lists every class in power order
var GPUClasses = []GPUClass{GPUNone, GPUT4, GPUL4, GPUA10, GPUA100, GPUH100}

// Rank returns the position of the class in power order, or -1 when unknown
func (g GPUClass) Rank() int {
	switch g {
	case GPUNone:
		return 0
	case GPUT4:
		return 1
	case GPUL4:
		return 2
	case GPUA10:
		return 3
	case GPUA100:
		return 4
	case GPUH100:
		return 5
	}
	return -1
}

// ComputeSpec specifies the resources a job needs
type ComputeSpec struct {
	GPURequired          bool
	GPUClass             GPUClass
	ExpectedRuntimeHours float64
}

// Validate checks the job invariants the engine relies on
func (j *Job) Validate() error {
	if j.Compute.ExpectedRuntimeHours <= 0 {
		return &ValidationError{
			JobID:  j.ID,
			Field:  "compute.expectedRuntimeHours",
			Reason: fmt.Sprintf("must be positive, got %g", j.Compute.ExpectedRuntimeHours),
		}
	}
	if j.Compute.GPUClass.Rank() < 0 {
		return &ValidationError{JobID: j.ID, Field: "compute.gpuClass", Reason: fmt.Sprintf("unknown class %q", j.Compute.GPUClass)}
	}
	if !j.Compute.GPURequired && j.Compute.GPUClass != GPUNone {
		return &ValidationError{JobID: j.ID, Field: "compute.gpuClass", Reason: "must be NONE when no GPU is required"}
	}
	if j.Compute.GPURequired && j.Compute.GPUClass == GPUNone {
		return &ValidationError{JobID: j.ID, Field: "compute.gpuClass", Reason: "a GPU class is required when gpuRequired is set"}
	}
	return nil
}

// DeadlineEnd returns the instant the deadline expires (end of the deadline day)
func (j *Job) DeadlineEnd() (time.Time, bool) {
	if j.Deadline == nil {
		return time.Time{}, false
	}
	d := j.Deadline.UTC()
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return day.Add(24 * time.Hour), true
}
