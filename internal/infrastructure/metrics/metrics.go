package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeComputed = "computed"
	OutcomeCached   = "cached"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financing_quotes_total",
			Help: "Quote requests by outcome",
		},
		[]string{"outcome"},
	)

	RecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financing_records_total",
			Help: "Financing records computed per lender",
		},
		[]string{"lender"},
	)

	PairFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financing_pair_failures_total",
			Help: "Listing and lender pairs that could not be computed",
		},
		[]string{"lender", "kind"},
	)

	QuoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "financing_quote_duration_seconds",
			Help:    "Time to compute and store a quote",
			Buckets: prometheus.DefBuckets,
		},
	)
)
