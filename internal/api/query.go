package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/staffinder/staffinder/internal/observability"
)

type queryRequest struct {
	Query *string `json:"query"`
}

type queryResponse struct {
	Status       string           `json:"status"`
	NaturalQuery string           `json:"natural_query"`
	GeneratedSQL string           `json:"generated_sql"`
	Data         []map[string]any `json:"data"`
	Count        int              `json:"count"`
}

func handleQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Synthesizer == nil || deps.Executor == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "QUERY_NOT_CONFIGURED", "query dependencies are not configured", false, nil)
		return
	}

	var request queryRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid query request body", false, map[string]any{"details": err.Error()})
		return
	}
	if request.Query == nil {
		writeError(r.Context(), w, http.StatusBadRequest, "QUERY_REQUIRED", "query field is required", false, nil)
		return
	}

	// An empty query string is allowed; the synthesizer resolves it to the
	// default fallback statement.
	synthesis := deps.Synthesizer.Synthesize(r.Context(), *request.Query)
	if deps.Logger != nil {
		deps.Logger.DebugContext(r.Context(), "query synthesized",
			slog.String("trace_id", observability.TraceIDFromContext(r.Context())),
			slog.String("source", synthesis.Source),
			slog.String("sql", synthesis.SQL),
		)
	}

	start := time.Now()
	result, err := deps.Executor.ExecuteSelect(r.Context(), synthesis.SQL)
	observability.ObserveQueryExecution(time.Since(start), err != nil)
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "QUERY_EXECUTION_FAILED", "query execution failed", false, map[string]any{"details": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Status:       "success",
		NaturalQuery: *request.Query,
		GeneratedSQL: result.SQL,
		Data:         result.Rows,
		Count:        result.Count,
	})
}
