package spec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"carbon-planner/core/models"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a project document encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

const dateLayout = "2006-01-02"

// FormatFromPath picks the encoding from a file extension, defaulting to YAML
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	}
	return FormatYAML
}

// LoadProject reads and parses a project document from disk
func LoadProject(path string) (*models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return ParseProject(data, FormatFromPath(path))
}

// DecodeDocument decodes raw bytes into a project document
func DecodeDocument(data []byte, format Format) (*ProjectDocument, error) {
	var doc ProjectDocument
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", strings.ToUpper(string(format)), err)
	}
	return &doc, nil
}

// ParseProject parses a project document into a Project model
func ParseProject(data []byte, format Format) (*models.Project, error) {
	doc, err := DecodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	return doc.ToProject()
}

// Encode renders a project document in the given format
func Encode(doc *ProjectDocument, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// ToProject converts the document into a Project, generating missing ids
func (d *ProjectDocument) ToProject() (*models.Project, error) {
	project := &models.Project{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		Tags:            d.Tags,
		ReportingRegime: models.ReportingRegime(strings.ToUpper(d.ReportingRegime)),
	}
	if project.ID == "" {
		project.ID = "proj_" + uuid.New().String()
	}
	if project.Name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "project name is required"}
	}

	// Set defaults
	if project.ReportingRegime == "" {
		project.ReportingRegime = models.RegimeBoth
	}
	if !project.ReportingRegime.Valid() {
		return nil, &models.ValidationError{Field: "reportingRegime", Reason: fmt.Sprintf("unknown regime %q", d.ReportingRegime)}
	}

	if d.Profile != nil {
		p, err := d.Profile.ToProfile()
		if err != nil {
			return nil, err
		}
		project.Profile = p
	}
	if d.Compliance != nil {
		project.Compliance = d.Compliance.ToPolicy()
	}

	seen := make(map[string]bool, len(d.Jobs))
	for i := range d.Jobs {
		job, err := d.Jobs[i].ToJob()
		if err != nil {
			return nil, err
		}
		if seen[job.ID] {
			return nil, &models.ValidationError{JobID: job.ID, Field: "id", Reason: "duplicate job id"}
		}
		seen[job.ID] = true
		project.Jobs = append(project.Jobs, *job)
	}
	return project, nil
}

// ToJob converts a job entry into a Job model. Job invariants are checked by
// the engine, so a malformed job still parses and is reported per job.
func (d *JobDocument) ToJob() (*models.Job, error) {
	job := &models.Job{
		ID:                 d.ID,
		Name:               d.Name,
		Type:               models.JobType(strings.ToUpper(d.Type)),
		Priority:           models.JobPriority(strings.ToUpper(d.Priority)),
		BatchableShiftable: d.BatchableShiftable,
		Compute: models.ComputeSpec{
			GPURequired:          d.Compute.GPURequired,
			GPUClass:             models.GPUClass(strings.ToUpper(d.Compute.GPUClass)),
			ExpectedRuntimeHours: d.Compute.ExpectedRuntimeHours,
		},
		InheritCompliance:      boolOr(d.InheritCompliance, true),
		InheritProjectSettings: boolOr(d.InheritProjectSettings, true),
		Notes:                  d.Notes,
	}
	if job.ID == "" {
		job.ID = "job_" + uuid.New().String()
	}

	// Set defaults
	if job.Type == "" {
		job.Type = models.JobTypeCustom
	}
	if job.Priority == "" {
		job.Priority = models.PriorityMedium
	}
	if job.Compute.GPUClass == "" {
		job.Compute.GPUClass = models.GPUNone
	}
	if !job.Type.Valid() {
		return nil, &models.ValidationError{JobID: job.ID, Field: "type", Reason: fmt.Sprintf("unknown job type %q", d.Type)}
	}
	if !job.Priority.Valid() {
		return nil, &models.ValidationError{JobID: job.ID, Field: "priority", Reason: fmt.Sprintf("unknown priority %q", d.Priority)}
	}

	// Parse deadline
	if d.Deadline != "" {
		deadline, err := parseDeadline(d.Deadline)
		if err != nil {
			return nil, &models.ValidationError{JobID: job.ID, Field: "deadline", Reason: err.Error()}
		}
		job.Deadline = &deadline
	}

	if d.ComplianceOverride != nil {
		job.OverrideCompliance = d.ComplianceOverride.ToPolicy()
	}
	if d.ProfileOverride != nil {
		p, err := d.ProfileOverride.ToProfile()
		if err != nil {
			if verr, ok := err.(*models.ValidationError); ok {
				verr.JobID = job.ID
			}
			return nil, err
		}
		job.OverrideProfile = p
	}
	return job, nil
}

// ToPolicy converts the document into a CompliancePolicy
func (d *ComplianceDocument) ToPolicy() *models.CompliancePolicy {
	regions := make([]string, 0, len(d.Regions))
	for _, r := range d.Regions {
		regions = append(regions, strings.ToUpper(strings.TrimSpace(r)))
	}
	return &models.CompliancePolicy{
		Type:                  models.PolicyType(strings.ToUpper(d.Type)),
		Regions:               regions,
		AllowJobOverride:      d.AllowJobOverride,
		EnforceDataResidency:  d.EnforceDataResidency,
		NoCrossBorderTransfer: d.NoCrossBorderTransfer,
	}
}

// ToProfile converts the document into the matching profile variant. Preset
// and weight ranges are checked when the profile is resolved.
func (d *ProfileDocument) ToProfile() (models.OptimizationProfile, error) {
	mode := models.ProfileMode(strings.ToUpper(d.Mode))
	if mode == "" && d.Weights == nil {
		mode = models.ProfileModeLite
	}
	if mode == "" {
		mode = models.ProfileModeFull
	}

	switch mode {
	case models.ProfileModeLite:
		return models.LiteProfile{Preset: models.Preset(strings.ToUpper(d.Preset))}, nil
	case models.ProfileModeFull:
		full := models.FullProfile{}
		if d.Weights != nil {
			full.Weights = models.Weights{CO2: d.Weights.CO2, Cost: d.Weights.Cost, Time: d.Weights.Time, Power: d.Weights.Power}
		}
		if d.Hard != nil {
			full.Hard = models.HardCaps{MaxBudgetUSD: d.Hard.MaxBudgetUSD, MaxCO2Kg: d.Hard.MaxCO2Kg}
		}
		if d.Provider != nil {
			full.AllowedProviders = d.Provider.AllowedProviders
		}
		return full, nil
	}
	return nil, &models.ValidationError{Field: "profile.mode", Reason: fmt.Sprintf("unknown mode %q", d.Mode)}
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid deadline format %q, expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
