package compliance

import (
	"fmt"
	"strings"

	"carbon-planner/core/catalog"
	"carbon-planner/core/models"
)

// Evaluator decides which catalog regions and providers a policy admits
type Evaluator struct {
	catalog *catalog.Catalog
}

// NewEvaluator creates a new compliance evaluator over cat
func NewEvaluator(cat *catalog.Catalog) *Evaluator {
	return &Evaluator{catalog: cat}
}

// IsAdmissible reports whether policy allows compute in region
func (e *Evaluator) IsAdmissible(policy models.CompliancePolicy, region string) bool {
	listed := e.listed(policy.Regions, region)
	switch policy.Type {
	case models.PolicyWhitelist:
		return listed
	case models.PolicyBlacklist:
		return !listed
	}
	return false
}

// listed reports whether region matches an entry, expanding "EU" to its members
func (e *Evaluator) listed(entries []string, region string) bool {
	region = normalize(region)
	for _, entry := range entries {
		entry = normalize(entry)
		if entry == region {
			return true
		}
		if entry == models.RegionEU && e.catalog.IsEUMember(region) {
			return true
		}
	}
	return false
}

// AdmissibleRegions returns the catalog regions allowed by policy, in catalog order
func (e *Evaluator) AdmissibleRegions(policy models.CompliancePolicy) []models.Region {
	var regions []models.Region
	for _, r := range e.catalog.Regions {
		if e.IsAdmissible(policy, r.Code) {
			regions = append(regions, r)
		}
	}
	return regions
}

// EligibleProvider reports whether provider may run a job in region under policy.
// Data residency is implied by the region filter itself; only cross-border
// replication is checked here.
func (e *Evaluator) EligibleProvider(policy models.CompliancePolicy, provider models.Provider, region string) bool {
	if !provider.Serves(region) {
		return false
	}
	if policy.NoCrossBorderTransfer && provider.CrossBorderReplication {
		return false
	}
	return true
}

// EffectivePolicy resolves the policy governing job. The job override applies only
// when the job opts out of inheritance and the project allows overrides.
func EffectivePolicy(project *models.Project, job *models.Job, fallback *models.CompliancePolicy) (models.CompliancePolicy, error) {
	base := project.Compliance
	if base == nil {
		base = fallback
	}
	if base == nil {
		return models.CompliancePolicy{}, &models.ValidationError{JobID: job.ID, Field: "compliance", Reason: "no project or default policy"}
	}

	policy := *base
	if !job.InheritCompliance && base.AllowJobOverride && job.OverrideCompliance != nil {
		policy = *job.OverrideCompliance
	}
	if !policy.Type.Valid() {
		return models.CompliancePolicy{}, &models.ValidationError{
			JobID:  job.ID,
			Field:  "compliance.type",
			Reason: fmt.Sprintf("unknown policy type %q", policy.Type),
		}
	}
	return policy, nil
}

// Describe renders a short human-readable summary used in assumptions
func Describe(policy models.CompliancePolicy) string {
	desc := fmt.Sprintf("%s %s", strings.ToLower(string(policy.Type)), strings.Join(policy.Regions, ", "))
	if policy.EnforceDataResidency {
		desc += "; data residency = compute region"
	}
	if policy.NoCrossBorderTransfer {
		desc += "; no cross-border transfer"
	}
	return desc
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
