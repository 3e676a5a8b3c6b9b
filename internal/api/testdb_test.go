package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staffinder/staffinder/internal/employees"
)

func TestTestDBEndpointReturnsSampleData(t *testing.T) {
	executor := &fakeExecutor{sample: employees.QueryResult{
		Columns: []string{"id", "name", "experience_years", "skills"},
		Rows: []map[string]any{
			{"id": int64(1), "name": "Alice", "experience_years": 6, "skills": "Python, SQL"},
			{"id": int64(2), "name": "Bob", "experience_years": 3, "skills": "Java, React"},
		},
		Count: 2,
	}}
	h := NewHandler(testConfig(t, nil), Dependencies{Executor: executor})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/test-db", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var body testDBResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "success" {
		t.Fatalf("Status = %q", body.Status)
	}
	if body.Message != "Database connection successful" {
		t.Fatalf("Message = %q", body.Message)
	}
	if len(body.SampleData) != 2 {
		t.Fatalf("SampleData length = %d", len(body.SampleData))
	}
}

func TestTestDBEndpointReportsDatabaseFailure(t *testing.T) {
	executor := &fakeExecutor{sampleErr: errors.New("connection refused")}
	h := NewHandler(testConfig(t, nil), Dependencies{Executor: executor})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/test-db", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error_code"] != "DATABASE_ERROR" {
		t.Fatalf("error_code = %v", body["error_code"])
	}
}

func TestTestDBEndpointNotConfigured(t *testing.T) {
	h := NewHandler(testConfig(t, nil), Dependencies{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/test-db", nil))
	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotImplemented)
	}
}
