package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithJSONNilBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/tasks", nil)
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, req, http.StatusOK, nil)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json, got %q", got)
	}
	if body := rr.Body.String(); body != "null\n" {
		t.Errorf("Expected a JSON null body, got %q", body)
	}
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rr := httptest.NewRecorder()

	RespondWithError(rr, req, http.StatusNotFound, "Task not found")

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if resp.Error != "Task not found" {
		t.Errorf("Expected error message, got %q", resp.Error)
	}
	if resp.TraceID == "" {
		t.Error("Expected trace ID in error response")
	}
}

func TestRespondWithErrorAndLogHidesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rr := httptest.NewRecorder()

	internal := errors.New("pq: connection to 10.0.0.5 refused")
	RespondWithErrorAndLog(rr, req, http.StatusInternalServerError, "Something went wrong", internal)

	body := rr.Body.String()
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
	if strings.Contains(body, "10.0.0.5") || strings.Contains(body, "pq:") {
		t.Errorf("Expected internal detail to stay out of the response, got %q", body)
	}
}
