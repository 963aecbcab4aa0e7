package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ReasonMissing    = "missing"
	ReasonUnreadable = "unreadable"
	ReasonMalformed  = "malformed"
	ReasonNotArray   = "not_array"

	OutcomeMatched = "matched"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
)

type SourceMetrics struct {
	ErrorsTotal         *prometheus.CounterVec
	RecordsSkippedTotal *prometheus.CounterVec
	OffersAvailable     *prometheus.GaugeVec
}

type SearchMetrics struct {
	SearchesTotal *prometheus.CounterVec
}

var (
	Source = SourceMetrics{
		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_offers_source_errors_total",
				Help: "Total number of bank offer files skipped, by reason.",
			},
			[]string{"bank", "reason"},
		),
		RecordsSkippedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_offers_records_skipped_total",
				Help: "Total number of offer records dropped during normalization.",
			},
			[]string{"bank"},
		),
		OffersAvailable: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "loan_offers_available",
				Help: "Number of valid offers per bank seen by the last source audit.",
			},
			[]string{"bank"},
		),
	}

	Search = SearchMetrics{
		SearchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_offers_searches_total",
				Help: "Total number of offer searches, by outcome.",
			},
			[]string{"outcome"},
		),
	}
)

func RecordSourceError(bank, reason string) {
	Source.ErrorsTotal.WithLabelValues(bank, reason).Inc()
}

func RecordSkippedRecord(bank string) {
	Source.RecordsSkippedTotal.WithLabelValues(bank).Inc()
}

func SetOffersAvailable(bank string, count int) {
	Source.OffersAvailable.WithLabelValues(bank).Set(float64(count))
}

func RecordSearch(outcome string) {
	Search.SearchesTotal.WithLabelValues(outcome).Inc()
}
