package handlers

import (
	"net/http"

	"carbon-planner/core/planning"
	"carbon-planner/core/spec"

	"github.com/gorilla/mux"
)

// ProjectHandler handles stored-project HTTP requests
type ProjectHandler struct {
	service *planning.Service
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service *planning.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProject handles POST /v1/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	project, err := readProject(w, r)
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	if err := h.service.CreateProject(project, actorOf(r)); err != nil {
		writeError(w, "Failed to create project", err)
		return
	}

	writeJSON(w, http.StatusCreated, spec.FromProject(project))
}

// GetProject handles GET /v1/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.GetProject(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "Failed to fetch project", err)
		return
	}
	writeJSON(w, http.StatusOK, spec.FromProject(project))
}

// UpdateProject handles PUT /v1/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	project, err := readProject(w, r)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	project.ID = mux.Vars(r)["id"]

	if err := h.service.UpdateProject(project, actorOf(r)); err != nil {
		writeError(w, "Failed to update project", err)
		return
	}
	writeJSON(w, http.StatusOK, spec.FromProject(project))
}

// ListProjects handles GET /v1/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListProjects()
	if err != nil {
		writeError(w, "Failed to list projects", err)
		return
	}

	items := make([]*spec.ProjectDocument, 0, len(projects))
	for _, p := range projects {
		items = append(items, spec.FromProject(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

// EstimateProject handles GET /v1/projects/{id}/estimate
func (h *ProjectHandler) EstimateProject(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.EstimateProject(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "Failed to estimate project", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PlanProject handles GET /v1/projects/{id}/plan?mode=&job=
func (h *ProjectHandler) PlanProject(w http.ResponseWriter, r *http.Request) {
	mode, err := planning.ParseCompareMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, "Invalid mode: "+err.Error(), http.StatusBadRequest)
		return
	}
	project, err := h.service.GetProject(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "Failed to fetch project", err)
		return
	}

	plan, err := h.service.Plan(project, mode, r.URL.Query().Get("job"))
	if err != nil {
		writeError(w, "Failed to build plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// RunProject handles POST /v1/projects/{id}/runs?mode=&job=
func (h *ProjectHandler) RunProject(w http.ResponseWriter, r *http.Request) {
	mode, err := planning.ParseCompareMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, "Invalid mode: "+err.Error(), http.StatusBadRequest)
		return
	}

	run, err := h.service.RunProject(mux.Vars(r)["id"], mode, r.URL.Query().Get("job"), actorOf(r))
	if err != nil {
		writeError(w, "Failed to run project", err)
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

// ListRuns handles GET /v1/projects/{id}/runs
func (h *ProjectHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := limitOf(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	runs, err := h.service.ListRuns(mux.Vars(r)["id"], limit)
	if err != nil {
		writeError(w, "Failed to fetch runs", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": runs,
	})
}
