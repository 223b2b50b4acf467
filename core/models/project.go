package models

// Project groups jobs under one compliance policy and optimization profile
type Project struct {
	ID              string
	Name            string
	Description     string
	Tags            []string
	ReportingRegime ReportingRegime
	Profile         OptimizationProfile // nil means workspace default
	Compliance      *CompliancePolicy   // nil means workspace default
	Jobs            []Job
}

// ReportingRegime selects the sustainability reporting framework
type ReportingRegime string

const (
	RegimeCSRD ReportingRegime = "CSRD"
	RegimeGHG  ReportingRegime = "GHG"
	RegimeBoth ReportingRegime = "BOTH"
)

// Valid reports whether r is a known regime
func (r ReportingRegime) Valid() bool {
	switch r {
	case RegimeCSRD, RegimeGHG, RegimeBoth:
		return true
	}
	return false
}

// FindJob returns the job with the given id
func (p *Project) FindJob(id string) (*Job, bool) {
	for i := range p.Jobs {
		if p.Jobs[i].ID == id {
			return &p.Jobs[i], true
		}
	}
	return nil, false
}

// ScopedJobs returns all jobs, or only the job matching scope when scope is non-empty
func (p *Project) ScopedJobs(scope string) []Job {
	if scope == "" {
		return p.Jobs
	}
	for _, job := range p.Jobs {
		if job.ID == scope {
			return []Job{job}
		}
	}
	return nil
}
