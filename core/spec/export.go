package spec

import (
	"carbon-planner/core/models"
)

// FromProject renders a Project as a document
func FromProject(p *models.Project) *ProjectDocument {
	doc := &ProjectDocument{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Tags:            p.Tags,
		ReportingRegime: string(p.ReportingRegime),
		Profile:         FromProfile(p.Profile),
		Compliance:      FromPolicy(p.Compliance),
		Jobs:            make([]JobDocument, 0, len(p.Jobs)),
	}
	for i := range p.Jobs {
		doc.Jobs = append(doc.Jobs, fromJob(&p.Jobs[i]))
	}
	return doc
}

func fromJob(j *models.Job) JobDocument {
	inheritCompliance := j.InheritCompliance
	inheritSettings := j.InheritProjectSettings
	doc := JobDocument{
		ID:                 j.ID,
		Name:               j.Name,
		Type:               string(j.Type),
		Priority:           string(j.Priority),
		BatchableShiftable: j.BatchableShiftable,
		Compute: ComputeDocument{
			GPURequired:          j.Compute.GPURequired,
			GPUClass:             string(j.Compute.GPUClass),
			ExpectedRuntimeHours: j.Compute.ExpectedRuntimeHours,
		},
		InheritCompliance:      &inheritCompliance,
		ComplianceOverride:     FromPolicy(j.OverrideCompliance),
		InheritProjectSettings: &inheritSettings,
		ProfileOverride:        FromProfile(j.OverrideProfile),
		Notes:                  j.Notes,
	}
	if j.Deadline != nil {
		doc.Deadline = j.Deadline.UTC().Format(dateLayout)
	}
	return doc
}

// FromPolicy renders a policy as a document; nil stays nil
func FromPolicy(p *models.CompliancePolicy) *ComplianceDocument {
	if p == nil {
		return nil
	}
	return &ComplianceDocument{
		Type:                  string(p.Type),
		Regions:               p.Regions,
		AllowJobOverride:      p.AllowJobOverride,
		EnforceDataResidency:  p.EnforceDataResidency,
		NoCrossBorderTransfer: p.NoCrossBorderTransfer,
	}
}

// FromProfile renders a profile as a document; nil stays nil
func FromProfile(p models.OptimizationProfile) *ProfileDocument {
	switch v := p.(type) {
	case models.LiteProfile:
		return &ProfileDocument{Mode: string(models.ProfileModeLite), Preset: string(v.Preset)}
	case *models.LiteProfile:
		if v == nil {
			return nil
		}
		return FromProfile(*v)
	case models.FullProfile:
		doc := &ProfileDocument{
			Mode:    string(models.ProfileModeFull),
			Weights: &WeightsDocument{CO2: v.Weights.CO2, Cost: v.Weights.Cost, Time: v.Weights.Time, Power: v.Weights.Power},
		}
		if v.Hard.MaxBudgetUSD != nil || v.Hard.MaxCO2Kg != nil {
			doc.Hard = &HardDocument{MaxBudgetUSD: v.Hard.MaxBudgetUSD, MaxCO2Kg: v.Hard.MaxCO2Kg}
		}
		if len(v.AllowedProviders) > 0 {
			doc.Provider = &ProviderDocument{AllowedProviders: v.AllowedProviders}
		}
		return doc
	case *models.FullProfile:
		if v == nil {
			return nil
		}
		return FromProfile(*v)
	}
	return nil
}
