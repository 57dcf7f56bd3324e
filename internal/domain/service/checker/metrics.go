package checker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"uk_numcheck/internal/domain/entity"
)

var (
	classificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "numcheck",
			Subsystem: "classify",
			Name:      "results_total",
			Help:      "Classification results by outcome",
		},
		[]string{"outcome"},
	)

	resultCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "numcheck",
			Subsystem: "classify",
			Name:      "cache_hits_total",
			Help:      "Classifications answered from the result cache",
		},
	)

	publishedRules = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "numcheck",
			Subsystem: "dataset",
			Name:      "published_rules",
			Help:      "Rule count of the published rule set",
		},
	)

	publishedFetchTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "numcheck",
			Subsystem: "dataset",
			Name:      "fetched_timestamp_seconds",
			Help:      "Fetch time of the published rule set as a unix timestamp",
		},
	)
)

func observeClassification(outcome entity.Outcome) {
	classificationsTotal.WithLabelValues(string(outcome)).Inc()
}

func observeCacheHit() {
	resultCacheHits.Inc()
}

func observePublish(ruleCount int, fetchedAt time.Time) {
	publishedRules.Set(float64(ruleCount))
	publishedFetchTime.Set(float64(fetchedAt.Unix()))
}
