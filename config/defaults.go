package config

import (
	"fmt"
	"os"
	"strings"

	"carbon-planner/core/models"
	"carbon-planner/core/spec"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults are the workspace-level settings projects fall back to
type Defaults struct {
	ReportingRegime models.ReportingRegime
	Profile         models.OptimizationProfile
	Compliance      *models.CompliancePolicy
}

type defaultsFile struct {
	ReportingRegime string                   `yaml:"reportingRegime" toml:"reportingRegime"`
	Profile         *spec.ProfileDocument    `yaml:"profile" toml:"profile"`
	Compliance      *spec.ComplianceDocument `yaml:"compliance" toml:"compliance"`
}

// BuiltinDefaults returns a BALANCED profile under an EU+CA whitelist
func BuiltinDefaults() *Defaults {
	return &Defaults{
		ReportingRegime: models.RegimeBoth,
		Profile:         spec.SeedProfile(),
		Compliance:      spec.SeedPolicy(),
	}
}

// Defaults returns the defaults at DefaultsPath, or the built-in ones
func (c *Config) Defaults() (*Defaults, error) {
	if c.DefaultsPath == "" {
		return BuiltinDefaults(), nil
	}
	return LoadDefaults(c.DefaultsPath)
}

// LoadDefaults reads workspace defaults from a YAML or TOML file. Sections
// missing from the file keep their built-in value.
func LoadDefaults(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults %q: %w", path, err)
	}

	var file defaultsFile
	if spec.FormatFromPath(path) == spec.FormatTOML {
		err = toml.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse defaults %q: %w", path, err)
	}

	d := BuiltinDefaults()
	if file.ReportingRegime != "" {
		d.ReportingRegime = models.ReportingRegime(strings.ToUpper(file.ReportingRegime))
		if !d.ReportingRegime.Valid() {
			return nil, fmt.Errorf("defaults %q: unknown reporting regime %q", path, file.ReportingRegime)
		}
	}
	if file.Profile != nil {
		if d.Profile, err = file.Profile.ToProfile(); err != nil {
			return nil, fmt.Errorf("defaults %q: %w", path, err)
		}
	}
	if file.Compliance != nil {
		d.Compliance = file.Compliance.ToPolicy()
		if !d.Compliance.Type.Valid() {
			return nil, fmt.Errorf("defaults %q: unknown policy type %q", path, file.Compliance.Type)
		}
	}
	return d, nil
}
