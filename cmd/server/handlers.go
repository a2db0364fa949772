package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/observability"
	"dao-activity-lab/internal/stats"
	"dao-activity-lab/internal/storage"
	"dao-activity-lab/internal/structure"
)

type server struct {
	aggregator *stats.Aggregator
	source     storage.RecordSource
	metrics    *observability.Metrics
	logger     *log.Logger
}

func newServer(a *stats.Aggregator, source storage.RecordSource, m *observability.Metrics, logger *log.Logger) *server {
	return &server{aggregator: a, source: source, metrics: m, logger: logger}
}

// routes builds the mux. metricsHandler serves /metrics.
func (s *server) routes(metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", metricsHandler)
	mux.Handle("GET /stats", s.instrument("/stats", s.handleStats))
	mux.Handle("GET /structure", s.instrument("/structure", s.handleStructure))

	return mux
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *server) instrument(path string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		s.metrics.RecordHTTPRequest(path, rec.code, time.Since(started).Seconds())
	})
}

// platformReport is the JSON shape of one platform in an all-platform
// response.
type platformReport struct {
	Platform domain.Platform              `json:"platform"`
	Result   *domain.ClassificationResult `json:"result,omitempty"`
	Error    string                       `json:"error,omitempty"`
}

// handleStats serves one platform's result, or every platform when the
// platform parameter is absent.
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")

	if platform == "" {
		all := s.aggregator.GetAllStats(r.Context())
		out := make([]platformReport, 0, len(all))
		for _, ps := range all {
			pr := platformReport{Platform: ps.Platform, Result: ps.Result}
			if ps.Err != nil {
				pr.Error = ps.Err.Error()
			}
			out = append(out, pr)
		}
		s.writeJSON(w, http.StatusOK, out)
		return
	}

	result, err := s.aggregator.GetStats(r.Context(), platform)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *server) handleStructure(w http.ResponseWriter, r *http.Request) {
	structures, err := structure.Inspect(r.Context(), s.source, r.URL.Query().Get("platform"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if column := r.URL.Query().Get("column"); column != "" {
		s.writeJSON(w, http.StatusOK, structure.FindColumn(structures, column))
		return
	}
	s.writeJSON(w, http.StatusOK, structures)
}

// statusFor maps analysis errors to HTTP status codes.
func statusFor(err error) int {
	var (
		unsupported *domain.UnsupportedPlatformError
		missing     *domain.MissingInputError
		malformed   *domain.MalformedDataError
	)
	switch {
	case errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &missing), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &malformed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Printf("request failed: %v", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}
