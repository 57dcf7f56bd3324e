package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	refreshResultPublished = "published"
	refreshResultUnchanged = "unchanged"
	refreshResultFailed    = "failed"
)

var (
	refreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "numcheck",
			Subsystem: "refresh",
			Name:      "runs_total",
			Help:      "Refresh runs by result",
		},
		[]string{"result"},
	)

	refreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "numcheck",
			Subsystem: "refresh",
			Name:      "duration_seconds",
			Help:      "Refresh run duration",
			Buckets:   prometheus.DefBuckets,
		},
	)

	skippedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "numcheck",
			Subsystem: "refresh",
			Name:      "skipped_rows",
			Help:      "Source rows dropped by validation in the last parse",
		},
	)
)

func observeRefresh(result string, elapsed time.Duration) {
	refreshesTotal.WithLabelValues(result).Inc()
	refreshDuration.Observe(elapsed.Seconds())
}

func observeSkippedRows(count int) {
	skippedRows.Set(float64(count))
}
