package models

// Region is a geographic compute location with its worst plausible grid intensity
type Region struct {
	Code           string  `yaml:"code"`
	Name           string  `yaml:"name"`
	EUMember       bool    `yaml:"eu_member"`
	GridIntensityG float64 `yaml:"grid_intensity_g_per_kwh"` // gCO2e per kWh
}

// Provider is a compute vendor with a mock rate table
type Provider struct {
	Name                   string   `yaml:"name"`
	RatePerKWh             float64  `yaml:"rate_usd_per_kwh"` // USD per kWh of provisioned capacity
	PUE                    float64  `yaml:"pue"`
	Regions                []string `yaml:"regions"` // Empty means every region
	CrossBorderReplication bool     `yaml:"cross_border_replication"`
}

// Serves reports whether the provider offers capacity in region
func (p *Provider) Serves(region string) bool {
	if len(p.Regions) == 0 {
		return true
	}
	for _, r := range p.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// TimeWindow is a deferred execution window for batchable jobs
type TimeWindow struct {
	Label        string  `yaml:"label"`
	DelayHours   float64 `yaml:"delay_hours"`
	CarbonFactor float64 `yaml:"carbon_factor"` // Multiplier on grid intensity, <= 1
	PriceFactor  float64 `yaml:"price_factor"`  // Multiplier on provider rate, <= 1
}

// ImmediateWindow is the run-now window every job can use
var ImmediateWindow = TimeWindow{
	Label:        ImmediateWindowLabel,
	DelayHours:   0,
	CarbonFactor: 1,
	PriceFactor:  1,
}

// Deferred reports whether the window postpones execution
func (w TimeWindow) Deferred() bool {
	return w.Label != ImmediateWindowLabel
}
