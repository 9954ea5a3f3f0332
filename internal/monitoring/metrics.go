package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vol_agent_analyses_total",
			Help: "Total number of analyses run",
		},
		[]string{"command", "symbol"},
	)

	analysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vol_agent_analysis_duration_seconds",
			Help:    "Duration of analysis runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	currentVolatility = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vol_agent_current_volatility",
			Help: "Latest estimated daily volatility per symbol",
		},
		[]string{"symbol"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vol_agent_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(analysesTotal)
	prometheus.MustRegister(analysisDuration)
	prometheus.MustRegister(currentVolatility)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordAnalysis records a completed analysis run.
func RecordAnalysis(command, symbol string, seconds float64) {
	analysesTotal.WithLabelValues(command, symbol).Inc()
	analysisDuration.WithLabelValues(command).Observe(seconds)
}

// UpdateVolatility updates the current volatility gauge for a symbol.
func UpdateVolatility(symbol string, volatility float64) {
	currentVolatility.WithLabelValues(symbol).Set(volatility)
}

// RecordError records an error metric.
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
