package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"

	"carbon-planner/core/models"
	"carbon-planner/core/repository"
	"carbon-planner/core/spec"
)

const maxDocumentBytes = 1 << 20

// defaultActor is recorded in the audit log when a request carries no X-Actor header
const defaultActor = "anonymous"

func actorOf(r *http.Request) string {
	if actor := r.Header.Get("X-Actor"); actor != "" {
		return actor
	}
	return defaultActor
}

// formatOf maps the request content type to a document format, defaulting to JSON
func formatOf(r *http.Request) spec.Format {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return spec.FormatYAML
	case "application/toml":
		return spec.FormatTOML
	}
	return spec.FormatJSON
}

// readProject decodes a project document from the request body. Bodies over
// maxDocumentBytes fail the read instead of being cut short.
func readProject(w http.ResponseWriter, r *http.Request) (*models.Project, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return spec.ParseProject(data, formatOf(r))
}

// writeDocumentError reports a body that could not be read or parsed
func writeDocumentError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, fmt.Sprintf("Project document exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "Invalid project document: "+err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps engine and storage errors to HTTP status codes
func writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		http.Error(w, msg+": "+err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, msg+": not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrConflict):
		http.Error(w, msg+": "+err.Error(), http.StatusConflict)
	default:
		log.Printf("%s: %v", msg, err)
		http.Error(w, msg+": "+err.Error(), http.StatusInternalServerError)
	}
}

// limitOf parses the optional limit query parameter; 0 means the default
func limitOf(r *http.Request) (int, error) {
	limitParam := r.URL.Query().Get("limit")
	if limitParam == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer, got %q", limitParam)
	}
	return limit, nil
}
