package models

import "time"

// AuditEvent records a user-visible change to a project
type AuditEvent struct {
	ID        string                 `json:"id"`
	At        time.Time              `json:"at"`
	Actor     string                 `json:"actor"`
	Action    AuditAction            `json:"action"`
	Target    string                 `json:"target"`
	ProjectID string                 `json:"projectId,omitempty"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
}

// AuditAction names what happened
type AuditAction string

const (
	AuditProjectCreated AuditAction = "project_created"
	AuditProjectUpdated AuditAction = "project_updated"
	AuditRunCompleted   AuditAction = "run_completed"
)
