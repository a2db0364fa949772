// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Analysis metrics
	AnalysisRunsTotal       *prometheus.CounterVec
	AnalysisDuration        *prometheus.HistogramVec
	OrganizationsByCategory *prometheus.GaugeVec
	LastSuccessfulAnalysis  *prometheus.GaugeVec

	// Source metrics
	TablesLoaded *prometheus.CounterVec
	RowsLoaded   *prometheus.CounterVec
	LoadErrors   *prometheus.CounterVec

	// Import metrics
	TablesImported *prometheus.CounterVec
	RowsImported   *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a Metrics instance registered with reg. A nil reg
// registers with the default Prometheus registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "dao_activity_lab"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AnalysisRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total number of platform analyses by status",
		}, []string{"platform", "status"}),
		AnalysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Platform analysis duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"platform"}),
		OrganizationsByCategory: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "organizations",
			Help:      "Organizations per activity category in the latest analysis",
		}, []string{"platform", "category"}),
		LastSuccessfulAnalysis: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_analysis_timestamp",
			Help:      "Unix timestamp of the last successful analysis",
		}, []string{"platform"}),

		TablesLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "tables_loaded_total",
			Help:      "Total number of tables loaded from the record source",
		}, []string{"platform", "category"}),
		RowsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "rows_loaded_total",
			Help:      "Total number of rows loaded from the record source",
		}, []string{"platform"}),
		LoadErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "load_errors_total",
			Help:      "Total number of table load failures by reason",
		}, []string{"platform", "category", "reason"}),

		TablesImported: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "tables_total",
			Help:      "Total number of tables imported by backend and status",
		}, []string{"backend", "status"}),
		RowsImported: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Total number of rows imported by backend",
		}, []string{"backend"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by path and status code",
		}, []string{"path", "code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", nil)

// RecordAnalysis records one platform analysis run.
func (m *Metrics) RecordAnalysis(platform, status string, durationSeconds float64) {
	m.AnalysisRunsTotal.WithLabelValues(platform, status).Inc()
	m.AnalysisDuration.WithLabelValues(platform).Observe(durationSeconds)
}

// SetCategoryCounts publishes the category breakdown of a finished analysis.
func (m *Metrics) SetCategoryCounts(platform string, counts map[string]int, finishedUnix int64) {
	for category, n := range counts {
		m.OrganizationsByCategory.WithLabelValues(platform, category).Set(float64(n))
	}
	m.LastSuccessfulAnalysis.WithLabelValues(platform).Set(float64(finishedUnix))
}

// RecordTableLoaded records a successfully loaded table.
func (m *Metrics) RecordTableLoaded(platform, category string, rows int) {
	m.TablesLoaded.WithLabelValues(platform, category).Inc()
	m.RowsLoaded.WithLabelValues(platform).Add(float64(rows))
}

// RecordLoadError records a failed table load. reason is "missing" or "error".
func (m *Metrics) RecordLoadError(platform, category, reason string) {
	m.LoadErrors.WithLabelValues(platform, category, reason).Inc()
}

// RecordImport records one imported table.
func (m *Metrics) RecordImport(backend string, rows int, err error) {
	if err != nil {
		m.TablesImported.WithLabelValues(backend, "error").Inc()
		return
	}
	m.TablesImported.WithLabelValues(backend, "ok").Inc()
	m.RowsImported.WithLabelValues(backend).Add(float64(rows))
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(path string, code int, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(path).Observe(durationSeconds)
}
