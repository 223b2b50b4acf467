package handlers

import (
	"net/http"

	"carbon-planner/core/planning"
)

// PlanningHandler handles estimates and plans for inline project documents
type PlanningHandler struct {
	service *planning.Service
}

// NewPlanningHandler creates a new planning handler
func NewPlanningHandler(service *planning.Service) *PlanningHandler {
	return &PlanningHandler{service: service}
}

// Estimate handles POST /v1/estimate
func (h *PlanningHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	project, err := readProject(w, r)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Estimate(project))
}

// Plan handles POST /v1/plan?mode=&job=
func (h *PlanningHandler) Plan(w http.ResponseWriter, r *http.Request) {
	mode, err := planning.ParseCompareMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, "Invalid mode: "+err.Error(), http.StatusBadRequest)
		return
	}
	project, err := readProject(w, r)
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	plan, err := h.service.Plan(project, mode, r.URL.Query().Get("job"))
	if err != nil {
		writeError(w, "Failed to build plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// ListAudit handles GET /v1/audit?project=&limit=
func (h *PlanningHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit, err := limitOf(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	events, err := h.service.ListAudit(r.URL.Query().Get("project"), limit)
	if err != nil {
		writeError(w, "Failed to fetch audit log", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": events,
	})
}
