package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jlcmcp",
			Name:      "searches_total",
			Help:      "Total number of catalog searches",
		},
		[]string{"status"}, // "ok" / "ambiguous" / "error"
	)

	AlternativesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jlcmcp",
			Name:      "alternatives_requests_total",
			Help:      "Total number of alternatives requests by outcome",
		},
		[]string{"outcome"}, // "found" / "already_optimal" / "no_search_results" / "none_compatible" / "similar_parts" / "error"
	)

	AlternativesDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jlcmcp",
			Name:      "alternatives_duration_seconds",
			Help:      "Alternatives pipeline duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"outcome"},
	)

	UnparseableSpecsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jlcmcp",
			Name:      "unparseable_specs_total",
			Help:      "Attribute values a numeric spec handler could not parse",
		},
		[]string{"spec"},
	)

	CandidatesFiltered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jlcmcp",
			Name:      "alternatives_candidates_filtered_total",
			Help:      "Candidates rejected during alternatives filtering",
		},
		[]string{"stage"}, // "primary" / "must_match" / "same_or_better"
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(AlternativesTotal)
	prometheus.MustRegister(AlternativesDuration)
	prometheus.MustRegister(UnparseableSpecsTotal)
	prometheus.MustRegister(CandidatesFiltered)
	engineMetricsRegistered = true
}
