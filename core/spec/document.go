package spec

// ProjectDocument is the on-disk and on-the-wire form of a project
type ProjectDocument struct {
	ID              string              `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name            string              `json:"name" yaml:"name" toml:"name"`
	Description     string              `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Tags            []string            `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	ReportingRegime string              `json:"reportingRegime,omitempty" yaml:"reportingRegime,omitempty" toml:"reportingRegime,omitempty"`
	Profile         *ProfileDocument    `json:"profile,omitempty" yaml:"profile,omitempty" toml:"profile,omitempty"`
	Compliance      *ComplianceDocument `json:"compliance,omitempty" yaml:"compliance,omitempty" toml:"compliance,omitempty"`
	Jobs            []JobDocument       `json:"jobs" yaml:"jobs" toml:"jobs"`
}

// JobDocument represents one job entry
type JobDocument struct {
	ID                     string              `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name                   string              `json:"name" yaml:"name" toml:"name"`
	Type                   string              `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Priority               string              `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	Deadline               string              `json:"deadline,omitempty" yaml:"deadline,omitempty" toml:"deadline,omitempty"` // YYYY-MM-DD or RFC 3339
	BatchableShiftable     bool                `json:"batchableShiftable" yaml:"batchableShiftable" toml:"batchableShiftable"`
	Compute                ComputeDocument     `json:"compute" yaml:"compute" toml:"compute"`
	InheritCompliance      *bool               `json:"inheritCompliance,omitempty" yaml:"inheritCompliance,omitempty" toml:"inheritCompliance,omitempty"`
	ComplianceOverride     *ComplianceDocument `json:"complianceOverride,omitempty" yaml:"complianceOverride,omitempty" toml:"complianceOverride,omitempty"`
	InheritProjectSettings *bool               `json:"inheritProjectSettings,omitempty" yaml:"inheritProjectSettings,omitempty" toml:"inheritProjectSettings,omitempty"`
	ProfileOverride        *ProfileDocument    `json:"profileOverride,omitempty" yaml:"profileOverride,omitempty" toml:"profileOverride,omitempty"`
	Notes                  string              `json:"notes,omitempty" yaml:"notes,omitempty" toml:"notes,omitempty"`
}

// ComputeDocument represents the resource section of a job
type ComputeDocument struct {
	GPURequired          bool    `json:"gpuRequired" yaml:"gpuRequired" toml:"gpuRequired"`
	GPUClass             string  `json:"gpuClass,omitempty" yaml:"gpuClass,omitempty" toml:"gpuClass,omitempty"`
	ExpectedRuntimeHours float64 `json:"expectedRuntimeHours" yaml:"expectedRuntimeHours" toml:"expectedRuntimeHours"`
}

// ComplianceDocument represents a compliance policy
type ComplianceDocument struct {
	Type                  string   `json:"type" yaml:"type" toml:"type"`
	Regions               []string `json:"regions" yaml:"regions" toml:"regions"`
	AllowJobOverride      bool     `json:"allowJobOverride" yaml:"allowJobOverride" toml:"allowJobOverride"`
	EnforceDataResidency  bool     `json:"enforceDataResidency" yaml:"enforceDataResidency" toml:"enforceDataResidency"`
	NoCrossBorderTransfer bool     `json:"noCrossBorderTransfer" yaml:"noCrossBorderTransfer" toml:"noCrossBorderTransfer"`
}

// ProfileDocument represents either a LITE or a FULL optimization profile
type ProfileDocument struct {
	Mode     string            `json:"mode" yaml:"mode" toml:"mode"` // LITE | FULL
	Preset   string            `json:"preset,omitempty" yaml:"preset,omitempty" toml:"preset,omitempty"`
	Weights  *WeightsDocument  `json:"weights,omitempty" yaml:"weights,omitempty" toml:"weights,omitempty"`
	Hard     *HardDocument     `json:"hard,omitempty" yaml:"hard,omitempty" toml:"hard,omitempty"`
	Provider *ProviderDocument `json:"provider,omitempty" yaml:"provider,omitempty" toml:"provider,omitempty"`
}

// WeightsDocument holds FULL profile weights, each 0-100
type WeightsDocument struct {
	CO2   float64 `json:"co2" yaml:"co2" toml:"co2"`
	Cost  float64 `json:"cost" yaml:"cost" toml:"cost"`
	Time  float64 `json:"time" yaml:"time" toml:"time"`
	Power float64 `json:"power" yaml:"power" toml:"power"`
}

// HardDocument holds optional hard caps
type HardDocument struct {
	MaxBudgetUSD *float64 `json:"maxBudgetUsd,omitempty" yaml:"maxBudgetUsd,omitempty" toml:"maxBudgetUsd,omitempty"`
	MaxCO2Kg     *float64 `json:"maxCO2Kg,omitempty" yaml:"maxCO2Kg,omitempty" toml:"maxCO2Kg,omitempty"`
}

// ProviderDocument restricts the providers a FULL profile may use
type ProviderDocument struct {
	AllowedProviders []string `json:"allowedProviders,omitempty" yaml:"allowedProviders,omitempty" toml:"allowedProviders,omitempty"`
}
