package api

import (
	"net/http"
	"time"

	"github.com/staffinder/staffinder/internal/observability"
)

type testDBResponse struct {
	Status     string           `json:"status"`
	Message    string           `json:"message"`
	SampleData []map[string]any `json:"sample_data"`
}

func handleTestDB(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Executor == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "TESTDB_NOT_CONFIGURED", "executor dependency is not configured", false, nil)
		return
	}

	limit := deps.SampleRows
	if limit <= 0 {
		limit = 5
	}

	start := time.Now()
	result, err := deps.Executor.Sample(r.Context(), limit)
	observability.ObserveQueryExecution(time.Since(start), err != nil)
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "DATABASE_ERROR", "database test failed", true, map[string]any{"details": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, testDBResponse{
		Status:     "success",
		Message:    "Database connection successful",
		SampleData: result.Rows,
	})
}
