// Package metrics provides Prometheus metrics collection for HTTP server
// and recommendation engine monitoring. HTTP metrics track request
// performance, domain metrics track search and consultation outcomes and
// the size of the loaded knowledge graph.
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	DiseaseSearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "disease_search_total",
			Help: "Total disease searches by species and outcome (match/no_match)",
		},
		[]string{"especie", "outcome"},
	)

	ConsultaTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "consulta_total",
			Help: "Total full clinical consultations processed",
		},
	)

	LoadedMedicamentos = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loaded_medicamentos_total",
			Help: "Medications in the currently loaded knowledge graph",
		},
	)

	LoadedEnfermedades = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loaded_enfermedades_total",
			Help: "Diseases in the currently loaded knowledge graph",
		},
	)

	LoadedRelaciones = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loaded_relaciones_total",
			Help: "Disease to medication relations in the currently loaded knowledge graph",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(DiseaseSearchTotal)
	prometheus.MustRegister(ConsultaTotal)
	prometheus.MustRegister(LoadedMedicamentos)
	prometheus.MustRegister(LoadedEnfermedades)
	prometheus.MustRegister(LoadedRelaciones)
}
