// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Total number of matching invocations by outcome",
		},
		[]string{"outcome"},
	)

	MatchPipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "match_pipeline_duration_seconds",
			Help: "Duration of the full matching pipeline in seconds",
		},
	)

	CandidatesRetrieved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_candidates_retrieved",
			Help:    "Size of the retrieved candidate pool per inquiry",
			Buckets: []float64{0, 1, 5, 10, 25, 50},
		},
	)

	TriggerPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trigger_polls_total",
			Help: "Total number of conversational trigger polls by resulting state",
		},
		[]string{"state"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of public API requests",
		},
		[]string{"route", "status"},
	)
)
