package spec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"carbon-planner/core/models"
)

const yamlProject = `
name: Nightly retraining
reportingRegime: csrd
compliance:
  type: whitelist
  regions: [eu, CA]
  allowJobOverride: true
profile:
  mode: FULL
  weights: {co2: 60, cost: 40, time: 0, power: 0}
  hard:
    maxBudgetUsd: 900
  provider:
    allowedProviders: [GCP, OVHcloud]
jobs:
  - id: prep
    name: Feature extraction
    type: etl
    batchableShiftable: true
    compute:
      expectedRuntimeHours: 2
  - name: Train
    type: TRAINING
    priority: HIGH
    deadline: 2026-04-30
    compute:
      gpuRequired: true
      gpuClass: a100
      expectedRuntimeHours: 9
    inheritCompliance: false
    complianceOverride:
      type: WHITELIST
      regions: [FR]
`

const tomlProject = `
name = "Batch scoring"

[compliance]
type = "BLACKLIST"
regions = ["US"]

[profile]
mode = "LITE"
preset = "GREENEST"

[[jobs]]
id = "score"
name = "Score"
type = "INFERENCE"
batchableShiftable = true

[jobs.compute]
gpuRequired = true
gpuClass = "T4"
expectedRuntimeHours = 1.5
`

func TestParseProjectYAML(t *testing.T) {
	project, err := ParseProject([]byte(yamlProject), FormatYAML)
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}

	if !strings.HasPrefix(project.ID, "proj_") {
		t.Fatalf("ID = %q, expected generated proj_ id", project.ID)
	}
	if project.ReportingRegime != models.RegimeCSRD {
		t.Fatalf("ReportingRegime = %s, expected CSRD", project.ReportingRegime)
	}
	if project.Compliance.Type != models.PolicyWhitelist || !reflect.DeepEqual(project.Compliance.Regions, []string{"EU", "CA"}) {
		t.Fatalf("Compliance = %+v, expected WHITELIST [EU CA]", project.Compliance)
	}

	full, ok := project.Profile.(models.FullProfile)
	if !ok {
		t.Fatalf("Profile = %T, expected FullProfile", project.Profile)
	}
	if full.Weights.CO2 != 60 || *full.Hard.MaxBudgetUSD != 900 || len(full.AllowedProviders) != 2 {
		t.Fatalf("Profile = %+v, expected weights and caps from document", full)
	}

	if len(project.Jobs) != 2 {
		t.Fatalf("len(Jobs) = %d, expected 2", len(project.Jobs))
	}
	prep := project.Jobs[0]
	if prep.Type != models.JobTypeETL || prep.Priority != models.PriorityMedium || prep.Compute.GPUClass != models.GPUNone {
		t.Fatalf("prep = %+v, expected ETL/MEDIUM/NONE defaults", prep)
	}
	if !prep.InheritCompliance || !prep.InheritProjectSettings {
		t.Fatalf("prep should inherit by default")
	}

	train := project.Jobs[1]
	if !strings.HasPrefix(train.ID, "job_") {
		t.Fatalf("train ID = %q, expected generated job_ id", train.ID)
	}
	if train.Deadline == nil || !train.Deadline.Equal(time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Deadline = %v, expected 2026-04-30", train.Deadline)
	}
	if train.InheritCompliance || train.OverrideCompliance == nil || train.OverrideCompliance.Regions[0] != "FR" {
		t.Fatalf("train compliance override not parsed: %+v", train)
	}
	if train.Compute.GPUClass != models.GPUA100 {
		t.Fatalf("GPUClass = %s, expected A100", train.Compute.GPUClass)
	}
}

func TestParseProjectTOML(t *testing.T) {
	project, err := ParseProject([]byte(tomlProject), FormatTOML)
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}
	if project.ReportingRegime != models.RegimeBoth {
		t.Fatalf("ReportingRegime = %s, expected BOTH default", project.ReportingRegime)
	}
	if lite, ok := project.Profile.(models.LiteProfile); !ok || lite.Preset != models.PresetGreenest {
		t.Fatalf("Profile = %+v, expected LITE GREENEST", project.Profile)
	}
	if project.Compliance.Type != models.PolicyBlacklist {
		t.Fatalf("Compliance.Type = %s, expected BLACKLIST", project.Compliance.Type)
	}
	if got := project.Jobs[0]; got.ID != "score" || got.Compute.ExpectedRuntimeHours != 1.5 || !got.BatchableShiftable {
		t.Fatalf("job = %+v, expected score job from document", got)
	}
}

func TestParseProjectJSON(t *testing.T) {
	doc := `{"name":"json","jobs":[{"id":"a","name":"A","compute":{"gpuRequired":false,"expectedRuntimeHours":1}}]}`
	project, err := ParseProject([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}
	if project.Profile != nil || project.Compliance != nil {
		t.Fatalf("absent profile and compliance should stay nil for workspace defaults")
	}
}

func TestParseProjectRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown type": `{"name":"x","jobs":[{"id":"a","name":"A","type":"MINING","compute":{"expectedRuntimeHours":1}}]}`,
		"bad deadline": `{"name":"x","jobs":[{"id":"a","name":"A","deadline":"next week","compute":{"expectedRuntimeHours":1}}]}`,
		"duplicate id": `{"name":"x","jobs":[{"id":"a","name":"A","compute":{"expectedRuntimeHours":1}},{"id":"a","name":"B","compute":{"expectedRuntimeHours":1}}]}`,
		"missing name": `{"jobs":[]}`,
		"bad regime":   `{"name":"x","reportingRegime":"SEC","jobs":[]}`,
	}
	for name, doc := range cases {
		_, err := ParseProject([]byte(doc), FormatJSON)
		if !errors.Is(err, models.ErrValidation) {
			t.Fatalf("%s: ParseProject() error = %v, expected validation error", name, err)
		}
	}

	if _, err := ParseProject([]byte("name: [unterminated"), FormatYAML); err == nil {
		t.Fatalf("ParseProject() expected YAML syntax error")
	}
}

func TestParseProjectKeepsRuntimeErrorsForEngine(t *testing.T) {
	doc := `{"name":"x","jobs":[{"id":"a","name":"A","compute":{"expectedRuntimeHours":0}}]}`
	project, err := ParseProject([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("ParseProject() error = %v, runtime is checked per job by the engine", err)
	}
	if project.Jobs[0].Validate() == nil {
		t.Fatalf("Validate() expected error for zero runtime")
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"project.yaml": FormatYAML,
		"project.yml":  FormatYAML,
		"project.TOML": FormatTOML,
		"project.json": FormatJSON,
		"project":      FormatYAML,
	}
	for path, expected := range cases {
		if got := FormatFromPath(path); got != expected {
			t.Fatalf("FormatFromPath(%q) = %s, expected %s", path, got, expected)
		}
	}
}

func TestSeedProjectSurvivesEncoding(t *testing.T) {
	seed := SeedProject(time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC))
	if len(seed.Jobs) != 4 {
		t.Fatalf("len(Jobs) = %d, expected 4", len(seed.Jobs))
	}
	if !seed.Jobs[1].Deadline.Equal(time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("training deadline = %v, expected 2026-02-12", seed.Jobs[1].Deadline)
	}

	for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		data, err := Encode(FromProject(seed), format)
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", format, err)
		}
		parsed, err := ParseProject(data, format)
		if err != nil {
			t.Fatalf("ParseProject(%s) error = %v\n%s", format, err, data)
		}
		if !reflect.DeepEqual(parsed, seed) {
			t.Fatalf("%s encoding changed the project:\n%+v\n%+v", format, parsed, seed)
		}
	}
}

func TestFromProfileNilPointers(t *testing.T) {
	if doc := FromProfile((*models.LiteProfile)(nil)); doc != nil {
		t.Fatalf("FromProfile(nil *LiteProfile) = %+v, expected nil", doc)
	}
	if doc := FromProfile((*models.FullProfile)(nil)); doc != nil {
		t.Fatalf("FromProfile(nil *FullProfile) = %+v, expected nil", doc)
	}

	project := &models.Project{
		Name:    "pointers",
		Profile: &models.LiteProfile{Preset: models.PresetCheapest},
		Jobs:    []models.Job{{ID: "job_1", Name: "j", OverrideProfile: (*models.FullProfile)(nil)}},
	}
	doc := FromProject(project)
	if doc.Profile == nil || doc.Profile.Preset != string(models.PresetCheapest) {
		t.Fatalf("FromProject().Profile = %+v, expected the cheapest preset", doc.Profile)
	}
	if doc.Jobs[0].ProfileOverride != nil {
		t.Fatalf("FromProject().Jobs[0].ProfileOverride = %+v, expected nil", doc.Jobs[0].ProfileOverride)
	}
}
