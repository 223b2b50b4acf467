package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"carbon-planner/core/models"
)

// EventRepository handles database operations for audit events
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateEvent appends an audit event
func (r *EventRepository) CreateEvent(event *models.AuditEvent) error {
	metaJSON := "{}"
	if event.Meta != nil {
		b, err := json.Marshal(event.Meta)
		if err != nil {
			return fmt.Errorf("failed to encode event meta: %w", err)
		}
		metaJSON = string(b)
	}

	var projectID sql.NullString
	if event.ProjectID != "" {
		projectID = sql.NullString{String: event.ProjectID, Valid: true}
	}

	query := `
		INSERT INTO audit_events (id, at, actor, action, target, project_id, meta_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query, event.ID, event.At, event.Actor, event.Action, event.Target, projectID, metaJSON)
	return err
}

// ListEvents retrieves audit events, newest first. An empty projectID lists
// events across all projects.
func (r *EventRepository) ListEvents(projectID string, limit int) ([]models.AuditEvent, error) {
	query := `
		SELECT id, at, actor, action, target, project_id, meta_json
		FROM audit_events
		WHERE ($1::text = '' OR project_id = $1)
		ORDER BY at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.AuditEvent{}
	for rows.Next() {
		var event models.AuditEvent
		var project sql.NullString
		var metaJSON string

		err := rows.Scan(
			&event.ID,
			&event.At,
			&event.Actor,
			&event.Action,
			&event.Target,
			&project,
			&metaJSON,
		)
		if err != nil {
			return nil, err
		}

		if project.Valid {
			event.ProjectID = project.String
		}
		if metaJSON != "" && metaJSON != "{}" {
			if err := json.Unmarshal([]byte(metaJSON), &event.Meta); err != nil {
				return nil, fmt.Errorf("stored event meta is corrupt: %w", err)
			}
		}

		events = append(events, event)
	}
	return events, rows.Err()
}
