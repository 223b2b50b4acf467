package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carbon-planner/core/models"
	"carbon-planner/core/repository"
	"carbon-planner/core/spec"
)

func TestFormatOf(t *testing.T) {
	cases := map[string]spec.Format{
		"":                                  spec.FormatJSON,
		"application/json":                  spec.FormatJSON,
		"application/yaml":                  spec.FormatYAML,
		"text/yaml; charset=utf-8":          spec.FormatYAML,
		"application/toml":                  spec.FormatTOML,
		"application/x-www-form-urlencoded": spec.FormatJSON,
	}
	for contentType, expected := range cases {
		req := httptest.NewRequest("POST", "/v1/estimate", nil)
		req.Header.Set("Content-Type", contentType)
		if got := formatOf(req); got != expected {
			t.Fatalf("formatOf(%q) = %s, expected %s", contentType, got, expected)
		}
	}
}

func TestActorOf(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/audit", nil)
	if got := actorOf(req); got != defaultActor {
		t.Fatalf("actorOf() = %q, expected %q", got, defaultActor)
	}
	req.Header.Set("X-Actor", "alice")
	if got := actorOf(req); got != "alice" {
		t.Fatalf("actorOf() = %q, expected alice", got)
	}
}

func TestWriteErrorStatus(t *testing.T) {
	cases := []struct {
		err      error
		expected int
	}{
		{&models.ValidationError{Field: "name", Reason: "required"}, http.StatusBadRequest},
		{fmt.Errorf("lookup: %w", repository.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("project p: %w", repository.ErrConflict), http.StatusConflict},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, "Failed", c.err)
		if rec.Code != c.expected {
			t.Fatalf("writeError(%v) status = %d, expected %d", c.err, rec.Code, c.expected)
		}
	}
}

func TestLimitOf(t *testing.T) {
	cases := map[string]int{"": 0, "?limit=7": 7, "?limit=0": 0}
	for query, expected := range cases {
		got, err := limitOf(httptest.NewRequest("GET", "/v1/audit"+query, nil))
		if err != nil || got != expected {
			t.Fatalf("limitOf(%q) = %d, %v, expected %d", query, got, err, expected)
		}
	}
	for _, query := range []string{"?limit=abc", "?limit=-3", "?limit=2.5"} {
		if _, err := limitOf(httptest.NewRequest("GET", "/v1/audit"+query, nil)); err == nil {
			t.Fatalf("limitOf(%q) error = nil, expected error", query)
		}
	}
}

func TestReadProjectRejectsOversizeBody(t *testing.T) {
	var body strings.Builder
	body.WriteString("name: big\njobs:\n")
	for i := 0; body.Len() <= maxDocumentBytes; i++ {
		fmt.Fprintf(&body, "  - id: job_%06d\n    name: j\n    compute:\n      expectedRuntimeHours: 1\n", i)
	}

	req := httptest.NewRequest("POST", "/v1/estimate", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()
	if _, err := readProject(rec, req); err == nil {
		t.Fatalf("readProject() of %d bytes error = nil, expected limit error", body.Len())
	} else {
		writeDocumentError(rec, err)
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("writeDocumentError() status = %d, expected 413", rec.Code)
	}
}
