package catalog

import (
	"fmt"
	"os"

	"carbon-planner/core/models"

	"gopkg.in/yaml.v3"
)

// Catalog is the immutable universe of regions, providers and deferred windows
// the planner may choose from. Values are mock guardrail figures, not live data.
type Catalog struct {
	Regions   []models.Region     `yaml:"regions"`
	Providers []models.Provider   `yaml:"providers"`
	Windows   []models.TimeWindow `yaml:"windows"` // Deferred windows only
}

// Default returns the built-in catalog
func Default() *Catalog {
	regions := []struct {
		Code      string
		Name      string
		EU        bool
		Intensity float64
	}{
		{"BE", "Belgium", true, 190},
		{"DE", "Germany", true, 420},
		{"ES", "Spain", true, 210},
		{"FI", "Finland", true, 110},
		{"FR", "France", true, 90},
		{"IE", "Ireland", true, 350},
		{"IT", "Italy", true, 330},
		{"NL", "Netherlands", true, 380},
		{"PL", "Poland", true, 720},
		{"SE", "Sweden", true, 45},
		{"CA", "Canada", false, 150},
		{"CH", "Switzerland", false, 60},
		{"NO", "Norway", false, 40},
		{"UK", "United Kingdom", false, 250},
		{"US", "United States", false, 430},
		{"JP", "Japan", false, 490},
		{"SG", "Singapore", false, 480},
		{"IN", "India", false, 710},
		{"AU", "Australia", false, 620},
	}

	c := &Catalog{}
	for _, r := range regions {
		c.Regions = append(c.Regions, models.Region{
			Code:           r.Code,
			Name:           r.Name,
			EUMember:       r.EU,
			GridIntensityG: r.Intensity,
		})
	}

	c.Providers = []models.Provider{
		{
			Name:       "AWS",
			RatePerKWh: 1.45,
			PUE:        1.15,
			Regions:    []string{"DE", "ES", "FR", "IE", "IT", "SE", "CA", "CH", "UK", "US", "JP", "SG", "IN", "AU"},
		},
		{
			Name:       "Azure",
			RatePerKWh: 1.50,
			PUE:        1.18,
			Regions:    []string{"DE", "ES", "FR", "IE", "IT", "NL", "PL", "SE", "CA", "CH", "NO", "UK", "US", "JP", "SG", "IN", "AU"},
		},
		{
			Name:                   "GCP",
			RatePerKWh:             1.35,
			PUE:                    1.10,
			Regions:                []string{"BE", "DE", "ES", "FI", "FR", "IT", "NL", "PL", "SE", "CA", "CH", "UK", "US", "JP", "SG", "IN", "AU"},
			CrossBorderReplication: true,
		},
		{
			Name:       "OVHcloud",
			RatePerKWh: 1.10,
			PUE:        1.26,
			Regions:    []string{"DE", "ES", "FR", "IT", "PL", "CA", "UK"},
		},
	}

	c.Windows = []models.TimeWindow{
		{Label: "Overnight low-carbon window", DelayHours: 8, CarbonFactor: 0.78, PriceFactor: 0.92},
		{Label: "Weekend low-carbon window", DelayHours: 48, CarbonFactor: 0.68, PriceFactor: 0.95},
	}

	return c
}

// LoadFile reads a catalog from a YAML file and validates it
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	c := new(Catalog)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse catalog %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}

// Validate checks the properties the estimator relies on to stay a majorant
func (c *Catalog) Validate() error {
	if len(c.Regions) == 0 {
		return fmt.Errorf("no regions")
	}
	if len(c.Providers) == 0 {
		return fmt.Errorf("no providers")
	}

	seen := make(map[string]bool)
	for _, r := range c.Regions {
		if r.Code == "" {
			return fmt.Errorf("region with empty code")
		}
		if r.Code == models.RegionEU {
			return fmt.Errorf("region code %q is reserved for the EU aggregate", r.Code)
		}
		if seen[r.Code] {
			return fmt.Errorf("duplicate region %q", r.Code)
		}
		if r.GridIntensityG < 0 {
			return fmt.Errorf("region %s: negative grid intensity", r.Code)
		}
		seen[r.Code] = true
	}

	names := make(map[string]bool)
	for _, p := range c.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider with empty name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate provider %q", p.Name)
		}
		if p.RatePerKWh <= 0 {
			return fmt.Errorf("provider %s: rate must be positive", p.Name)
		}
		if p.PUE < 1 {
			return fmt.Errorf("provider %s: pue must be >= 1", p.Name)
		}
		for _, code := range p.Regions {
			if !seen[code] {
				return fmt.Errorf("provider %s: unknown region %q", p.Name, code)
			}
		}
		names[p.Name] = true
	}

	for _, w := range c.Windows {
		if w.Label == "" || w.Label == models.ImmediateWindowLabel {
			return fmt.Errorf("deferred window needs a distinct label, got %q", w.Label)
		}
		if w.DelayHours <= 0 {
			return fmt.Errorf("window %q: delay must be positive", w.Label)
		}
		// Factors above 1 would let a candidate exceed the job majorant.
		if w.CarbonFactor <= 0 || w.CarbonFactor > 1 {
			return fmt.Errorf("window %q: carbon factor must be in (0, 1]", w.Label)
		}
		if w.PriceFactor <= 0 || w.PriceFactor > 1 {
			return fmt.Errorf("window %q: price factor must be in (0, 1]", w.Label)
		}
	}
	return nil
}

// Region returns the region with the given code
func (c *Catalog) Region(code string) (models.Region, bool) {
	for _, r := range c.Regions {
		if r.Code == code {
			return r, true
		}
	}
	return models.Region{}, false
}

// IsEUMember reports whether code names an EU member region in the catalog
func (c *Catalog) IsEUMember(code string) bool {
	r, ok := c.Region(code)
	return ok && r.EUMember
}
