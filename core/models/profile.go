package models

// OptimizationProfile is either a LiteProfile or a FullProfile
type OptimizationProfile interface {
	Mode() ProfileMode
	isProfile()
}

// ProfileMode tags the profile variant
type ProfileMode string

const (
	ProfileModeLite ProfileMode = "LITE"
	ProfileModeFull ProfileMode = "FULL"
)

// Preset is a named LITE objective
type Preset string

const (
	PresetGreenest Preset = "GREENEST"
	PresetCheapest Preset = "CHEAPEST"
	PresetFastest  Preset = "FASTEST"
	PresetBalanced Preset = "BALANCED"
)

// LiteProfile selects one of the canonical presets
type LiteProfile struct {
	Preset Preset
}

// FullProfile carries explicit weights and hard caps
type FullProfile struct {
	Weights          Weights
	Hard             HardCaps
	AllowedProviders []string // Empty means every provider in the catalog
}

func (LiteProfile) Mode() ProfileMode { return ProfileModeLite }
func (LiteProfile) isProfile()        {}
func (FullProfile) Mode() ProfileMode { return ProfileModeFull }
func (FullProfile) isProfile()        {}

// Weights are relative objective weights. FULL profiles use 0-100; resolved weights sum to 1
type Weights struct {
	CO2   float64 `json:"co2"`
	Cost  float64 `json:"cost"`
	Time  float64 `json:"time"`
	Power float64 `json:"power"`
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.CO2 + w.Cost + w.Time + w.Power
}

// HardCaps are per-candidate limits. Nil means no cap
type HardCaps struct {
	MaxBudgetUSD *float64 `json:"maxBudgetUsd,omitempty"`
	MaxCO2Kg     *float64 `json:"maxCO2Kg,omitempty"`
}

// CompareMode selects how plan candidates are ranked
type CompareMode string

const (
	CompareAuto     CompareMode = "AUTO"
	CompareGreenest CompareMode = "GREENEST"
	CompareCheapest CompareMode = "CHEAPEST"
	CompareFastest  CompareMode = "FASTEST"
)

// Valid reports whether m is a known compare mode
func (m CompareMode) Valid() bool {
	switch m {
	case CompareAuto, CompareGreenest, CompareCheapest, CompareFastest:
		return true
	}
	return false
}
