package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staffinder/staffinder/internal/auth"
	"github.com/staffinder/staffinder/internal/config"
	"github.com/staffinder/staffinder/internal/employees"
	"github.com/staffinder/staffinder/internal/nl2sql"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := testConfig(t, nil)
	h := NewHandler(cfg, Dependencies{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %v", body["status"])
	}
	if body["service"] != "staffinder-api" {
		t.Fatalf("service field = %v", body["service"])
	}
}

func TestReadyEndpointWithoutCheck(t *testing.T) {
	h := NewHandler(testConfig(t, nil), Dependencies{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ready", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestReadyEndpointReportsFailure(t *testing.T) {
	h := NewHandler(testConfig(t, nil), Dependencies{
		Readiness: func(context.Context) error { return errors.New("db unreachable") },
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ready", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	h := NewHandler(testConfig(t, nil), Dependencies{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestProtectedRoutesRequireAPIKeyWhenAuthEnabled(t *testing.T) {
	cfg := testConfig(t, map[string]string{"STAFFINDER_AUTH_REQUIRED": "true"})
	validator, err := auth.NewStaticAPIKeyValidator("k1:reporting")
	if err != nil {
		t.Fatalf("validator setup failed: %v", err)
	}
	h := NewHandler(cfg, Dependencies{
		AuthMiddleware: auth.Middleware(nil, validator),
		Executor:       &fakeExecutor{},
		Synthesizer:    &fakeSynthesizer{},
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/test-db", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status without key = %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/test-db", nil)
	req.Header.Set("X-API-Key", "k1")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status with key = %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestAuthRequiredWithoutMiddlewareFailsClosed(t *testing.T) {
	cfg := testConfig(t, map[string]string{"STAFFINDER_AUTH_REQUIRED": "true"})
	h := NewHandler(cfg, Dependencies{Executor: &fakeExecutor{}, Synthesizer: &fakeSynthesizer{}})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/test-db", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestCombineReadinessChecksStopsAtFirstFailure(t *testing.T) {
	calls := 0
	failing := func(context.Context) error { calls++; return errors.New("nope") }
	passing := func(context.Context) error { calls++; return nil }

	check := CombineReadinessChecks(passing, failing, passing)
	if err := check(context.Background()); err == nil {
		t.Fatal("expected combined check to fail")
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestCheckDatabaseDSN(t *testing.T) {
	cfg := testConfig(t, nil)
	if err := CheckDatabaseDSN(cfg)(context.Background()); err != nil {
		t.Fatalf("CheckDatabaseDSN() error = %v", err)
	}
	cfg.Database.DSN = ""
	if err := CheckDatabaseDSN(cfg)(context.Background()); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func testConfig(t *testing.T, env map[string]string) config.Config {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	cfg, err := config.Load("staffinder-api", mapLookup(env))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	return cfg
}

func mapLookup(values map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

type fakeSynthesizer struct {
	requests []string
	result   nl2sql.Synthesis
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, query string) nl2sql.Synthesis {
	f.requests = append(f.requests, query)
	if f.result.SQL == "" {
		return nl2sql.Synthesis{SQL: nl2sql.DefaultSQL, Source: nl2sql.SourceFallback}
	}
	return f.result
}

type fakeExecutor struct {
	executed  []string
	result    employees.QueryResult
	sample    employees.QueryResult
	err       error
	sampleErr error
}

func (f *fakeExecutor) ExecuteSelect(_ context.Context, sqlText string) (employees.QueryResult, error) {
	f.executed = append(f.executed, sqlText)
	if f.err != nil {
		return employees.QueryResult{}, f.err
	}
	result := f.result
	result.SQL = sqlText
	return result, nil
}

func (f *fakeExecutor) Sample(_ context.Context, limit int) (employees.QueryResult, error) {
	if f.sampleErr != nil {
		return employees.QueryResult{}, f.sampleErr
	}
	result := f.sample
	if result.Count > limit {
		result.Rows = result.Rows[:limit]
		result.Count = limit
	}
	return result, nil
}
