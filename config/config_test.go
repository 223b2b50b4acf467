package config

import (
	"os"
	"path/filepath"
	"testing"

	"carbon-planner/core/models"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "SERVER_PORT", "METRICS_ENABLED", "CATALOG_PATH", "DEFAULTS_PATH",
		"OVERRUN_BUFFER", "PRICING_BUFFER", "CO2_SAFETY_BUFFER_KG", "COST_VARIANCE_RATIO"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseURL != "" || cfg.ServerPort != "8080" || !cfg.MetricsEnabled {
		t.Fatalf("Load() = %+v, expected defaults", cfg)
	}
	if cfg.Buffers.Overrun != 1.15 || cfg.Buffers.Pricing != 1.10 {
		t.Fatalf("Buffers = %+v, expected default buffers", cfg.Buffers)
	}
	cat, err := cfg.Catalog()
	if err != nil || len(cat.Regions) == 0 {
		t.Fatalf("Catalog() = %v, %v, expected built-in catalog", cat, err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OVERRUN_BUFFER", "1.3")
	t.Setenv("CO2_SAFETY_BUFFER_KG", "2")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Buffers.Overrun != 1.3 || cfg.Buffers.CO2SafetyKg != 2 || cfg.MetricsEnabled || cfg.ServerPort != "9090" {
		t.Fatalf("Load() = %+v, expected overrides", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"OVERRUN_BUFFER":      "0.8",
		"PRICING_BUFFER":      "lots",
		"COST_VARIANCE_RATIO": "1.5",
		"METRICS_ENABLED":     "maybe",
		"SERVER_PORT":         "http",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%s expected error", key, value)
			}
		})
	}
}

func TestLoadDefaultsFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "defaults.yaml")
	os.WriteFile(yamlPath, []byte("reportingRegime: ghg\nprofile:\n  mode: LITE\n  preset: CHEAPEST\n"), 0o644)
	d, err := LoadDefaults(yamlPath)
	if err != nil {
		t.Fatalf("LoadDefaults(yaml) error = %v", err)
	}
	if d.ReportingRegime != models.RegimeGHG {
		t.Fatalf("ReportingRegime = %s, expected GHG", d.ReportingRegime)
	}
	if lite, ok := d.Profile.(models.LiteProfile); !ok || lite.Preset != models.PresetCheapest {
		t.Fatalf("Profile = %+v, expected LITE CHEAPEST", d.Profile)
	}
	if d.Compliance == nil || d.Compliance.Type != models.PolicyWhitelist {
		t.Fatalf("Compliance = %+v, expected built-in whitelist", d.Compliance)
	}

	tomlPath := filepath.Join(dir, "defaults.toml")
	os.WriteFile(tomlPath, []byte("[compliance]\ntype = \"BLACKLIST\"\nregions = [\"US\", \"IN\"]\n"), 0o644)
	d, err = LoadDefaults(tomlPath)
	if err != nil {
		t.Fatalf("LoadDefaults(toml) error = %v", err)
	}
	if d.Compliance.Type != models.PolicyBlacklist || len(d.Compliance.Regions) != 2 {
		t.Fatalf("Compliance = %+v, expected BLACKLIST [US IN]", d.Compliance)
	}

	badPath := filepath.Join(dir, "bad.yaml")
	os.WriteFile(badPath, []byte("compliance:\n  type: GREYLIST\n"), 0o644)
	if _, err := LoadDefaults(badPath); err == nil {
		t.Fatalf("LoadDefaults() expected error for unknown policy type")
	}
}
