package spec

import (
	"time"

	"carbon-planner/core/models"
)

// SeedProject returns the sample project used by the seed command and demos.
// The training job's deadline is two days after now.
func SeedProject(now time.Time) *models.Project {
	budget := 2500.0
	deadline := now.UTC().AddDate(0, 0, 2)
	deadline = time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)

	return &models.Project{
		ID:              "proj_seed_001",
		Name:            "LLM Fine-Tuning - Customer Support Bot",
		Description:     "Carbon-aware planning sample: worst-case estimates, compliance constraints and audit-style reporting.",
		Tags:            []string{"LLM", "GPU", "Customer Support", "Compliance"},
		ReportingRegime: models.RegimeBoth,
		Profile: models.FullProfile{
			Weights:          models.Weights{CO2: 50, Cost: 30, Time: 20, Power: 0},
			Hard:             models.HardCaps{MaxBudgetUSD: &budget},
			AllowedProviders: []string{"AWS", "GCP", "Azure", "OVHcloud"},
		},
		Compliance: SeedPolicy(),
		Jobs: []models.Job{
			{
				ID:                     "job_001",
				Name:                   "Data preprocessing",
				Type:                   models.JobTypeBatch,
				Priority:               models.PriorityLow,
				BatchableShiftable:     true,
				Compute:                models.ComputeSpec{GPUClass: models.GPUNone, ExpectedRuntimeHours: 3.5},
				InheritCompliance:      true,
				InheritProjectSettings: true,
				Notes:                  "Batchable; prefer low-carbon window.",
			},
			{
				ID:                     "job_002",
				Name:                   "Training run",
				Type:                   models.JobTypeTraining,
				Priority:               models.PriorityCritical,
				Deadline:               &deadline,
				Compute:                models.ComputeSpec{GPURequired: true, GPUClass: models.GPUA100, ExpectedRuntimeHours: 11},
				InheritCompliance:      true,
				InheritProjectSettings: true,
				Notes:                  "GPU required; deadline constrained.",
			},
			{
				ID:                     "job_003",
				Name:                   "Evaluation + benchmarks",
				Type:                   models.JobTypeBatch,
				Priority:               models.PriorityMedium,
				BatchableShiftable:     true,
				Compute:                models.ComputeSpec{GPURequired: true, GPUClass: models.GPUL4, ExpectedRuntimeHours: 2.8},
				InheritCompliance:      true,
				InheritProjectSettings: true,
				Notes:                  "Batchable; can shift to greener window.",
			},
			{
				ID:                     "job_004",
				Name:                   "Packaging + artifact export",
				Type:                   models.JobTypeCI,
				Priority:               models.PriorityLow,
				BatchableShiftable:     true,
				Compute:                models.ComputeSpec{GPUClass: models.GPUNone, ExpectedRuntimeHours: 1.2},
				InheritCompliance:      true,
				InheritProjectSettings: true,
				Notes:                  "CI-style job; low compute.",
			},
		},
	}
}

// SeedPolicy is the workspace default policy: EU and Canada only
func SeedPolicy() *models.CompliancePolicy {
	return &models.CompliancePolicy{
		Type:                  models.PolicyWhitelist,
		Regions:               []string{models.RegionEU, "CA"},
		AllowJobOverride:      true,
		EnforceDataResidency:  true,
		NoCrossBorderTransfer: true,
	}
}

// SeedProfile is the workspace default profile
func SeedProfile() models.OptimizationProfile {
	return models.LiteProfile{Preset: models.PresetBalanced}
}
