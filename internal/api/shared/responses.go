package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Problem is the structured error document returned by every failing
// endpoint: status code, short title, human-readable detail, the trace
// ID of the request, and for validation failures a field-keyed map of
// messages.
type Problem struct {
	Status  int                 `json:"status"`
	Title   string              `json:"title"`
	Detail  string              `json:"detail"`
	Errors  map[string][]string `json:"errors,omitempty"`
	TraceID string              `json:"traceId,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithProblem writes a problem document with the given status,
// title and detail, stamping the request's trace ID onto it.
func RespondWithProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	RespondWithFieldProblem(w, r, status, title, detail, nil)
}

// RespondWithFieldProblem writes a problem document carrying a
// field-keyed validation error map.
func RespondWithFieldProblem(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	title, detail string,
	fields map[string][]string,
) {
	traceID := GetTraceID(r.Context())

	problem := Problem{
		Status:  status,
		Title:   title,
		Detail:  detail,
		Errors:  fields,
		TraceID: traceID,
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response",
		slog.Int("status_code", status),
		slog.String("title", title),
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// RespondWithProblemAndLog writes a problem document and logs the
// underlying error server-side. The error itself never reaches the
// client; only the sanitized detail does.
func RespondWithProblemAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	title, detail string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	problem := Problem{
		Status:  status,
		Title:   title,
		Detail:  detail,
		TraceID: traceID,
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(problem); encErr != nil {
		slog.Error("failed to encode problem response", "error", encErr)
	}
}
