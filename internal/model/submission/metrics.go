package submission

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var histogramSubmitTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "budget",
		Subsystem: "submission",
		Name:      "histogram_submit_time_seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	},
	[]string{"outcome"},
)

func observeSubmission(elapsed time.Duration, outcome Outcome) {
	histogramSubmitTime.
		WithLabelValues(outcome.String()).
		Observe(elapsed.Seconds())
}
