package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcome label values.
const (
	SearchOutcomeMatched = "matched"
	SearchOutcomeNoMatch = "no_match"
	SearchOutcomeEmpty   = "empty_query"
)

var (
	// SearchesTotal counts search executions by outcome.
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "registryd",
			Name:      "searches_total",
			Help:      "Total number of search executions by outcome",
		},
		[]string{"outcome"},
	)

	// SearchMatches observes the number of records returned per search.
	SearchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "registryd",
			Name:      "search_matches",
			Help:      "Number of records returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
		},
	)
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchMatches)
}
