package profile

import (
	"fmt"

	"carbon-planner/core/models"
)

// Resolved is the canonical form every profile variant is reduced to
type Resolved struct {
	Weights          models.Weights // Normalized, sums to 1
	Hard             models.HardCaps
	AllowedProviders []string
}

// Canonical preset weight vectors
var (
	GreenestWeights = models.Weights{CO2: 0.7, Cost: 0.15, Time: 0.15, Power: 0}
	CheapestWeights = models.Weights{CO2: 0.15, Cost: 0.7, Time: 0.15, Power: 0}
	FastestWeights  = models.Weights{CO2: 0.15, Cost: 0.15, Time: 0.7, Power: 0}
	BalancedWeights = models.Weights{CO2: 0.34, Cost: 0.33, Time: 0.33, Power: 0}
)

// PresetWeights returns the canonical weights of preset
func PresetWeights(preset models.Preset) (models.Weights, error) {
	switch preset {
	case models.PresetGreenest:
		return GreenestWeights, nil
	case models.PresetCheapest:
		return CheapestWeights, nil
	case models.PresetFastest:
		return FastestWeights, nil
	case models.PresetBalanced:
		return BalancedWeights, nil
	}
	return models.Weights{}, &models.ValidationError{Field: "profile.preset", Reason: fmt.Sprintf("unknown preset %q", preset)}
}

// Resolve normalizes p into weights and hard caps
func Resolve(p models.OptimizationProfile) (Resolved, error) {
	switch v := p.(type) {
	case models.LiteProfile:
		w, err := PresetWeights(v.Preset)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Weights: w}, nil
	case *models.LiteProfile:
		if v == nil {
			return Resolved{}, &models.ValidationError{Field: "profile", Reason: "no profile"}
		}
		return Resolve(*v)
	case models.FullProfile:
		if err := validateFull(v); err != nil {
			return Resolved{}, err
		}
		return Resolved{
			Weights:          normalize(v.Weights),
			Hard:             v.Hard,
			AllowedProviders: v.AllowedProviders,
		}, nil
	case *models.FullProfile:
		if v == nil {
			return Resolved{}, &models.ValidationError{Field: "profile", Reason: "no profile"}
		}
		return Resolve(*v)
	case nil:
		return Resolved{}, &models.ValidationError{Field: "profile", Reason: "no profile"}
	}
	return Resolved{}, &models.ValidationError{Field: "profile", Reason: fmt.Sprintf("unsupported profile %T", p)}
}

func normalize(w models.Weights) models.Weights {
	sum := w.Sum()
	if sum == 0 {
		return BalancedWeights
	}
	return models.Weights{
		CO2:   w.CO2 / sum,
		Cost:  w.Cost / sum,
		Time:  w.Time / sum,
		Power: w.Power / sum,
	}
}

func validateFull(p models.FullProfile) error {
	weights := []struct {
		name  string
		value float64
	}{
		{"co2", p.Weights.CO2},
		{"cost", p.Weights.Cost},
		{"time", p.Weights.Time},
		{"power", p.Weights.Power},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 100 {
			return &models.ValidationError{Field: "profile.weights." + w.name, Reason: fmt.Sprintf("must be within 0-100, got %g", w.value)}
		}
	}
	if p.Hard.MaxBudgetUSD != nil && *p.Hard.MaxBudgetUSD < 0 {
		return &models.ValidationError{Field: "profile.hard.maxBudgetUsd", Reason: "must not be negative"}
	}
	if p.Hard.MaxCO2Kg != nil && *p.Hard.MaxCO2Kg < 0 {
		return &models.ValidationError{Field: "profile.hard.maxCO2Kg", Reason: "must not be negative"}
	}
	return nil
}

// EffectiveProfile resolves the profile governing job: its own override when it
// opts out of project settings, else the project profile, else fallback.
func EffectiveProfile(project *models.Project, job *models.Job, fallback models.OptimizationProfile) (models.OptimizationProfile, error) {
	if !job.InheritProjectSettings && job.OverrideProfile != nil {
		return job.OverrideProfile, nil
	}
	if project.Profile != nil {
		return project.Profile, nil
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, &models.ValidationError{JobID: job.ID, Field: "profile", Reason: "no project or default profile"}
}

// ResolveFor resolves the effective profile of job in one step
func ResolveFor(project *models.Project, job *models.Job, fallback models.OptimizationProfile) (Resolved, error) {
	p, err := EffectiveProfile(project, job, fallback)
	if err != nil {
		return Resolved{}, err
	}
	r, err := Resolve(p)
	if err != nil {
		if verr, ok := err.(*models.ValidationError); ok && verr.JobID == "" {
			verr.JobID = job.ID
		}
		return Resolved{}, err
	}
	return r, nil
}

// Allows reports whether provider passes the profile's allow-list
func (r Resolved) Allows(provider string) bool {
	if len(r.AllowedProviders) == 0 {
		return true
	}
	for _, p := range r.AllowedProviders {
		if p == provider {
			return true
		}
	}
	return false
}
