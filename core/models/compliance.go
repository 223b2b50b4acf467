package models

// PolicyType selects whitelist or blacklist semantics
type PolicyType string

const (
	PolicyWhitelist PolicyType = "WHITELIST"
	PolicyBlacklist PolicyType = "BLACKLIST"
)

// Valid reports whether t is a known policy type
func (t PolicyType) Valid() bool {
	return t == PolicyWhitelist || t == PolicyBlacklist
}

// RegionEU denotes the aggregate of all EU member regions
const RegionEU = "EU"

// CompliancePolicy governs where a job's compute may run
type CompliancePolicy struct {
	Type                  PolicyType `json:"type"`
	Regions               []string   `json:"regions"`
	AllowJobOverride      bool       `json:"allowJobOverride"`
	EnforceDataResidency  bool       `json:"enforceDataResidency"`
	NoCrossBorderTransfer bool       `json:"noCrossBorderTransfer"`
}
