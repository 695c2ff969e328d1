package archive

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "archive_query_duration_seconds",
		Help:    "Archive query duration in seconds",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	},
	[]string{"query"},
)

func observeQuery(name string) func() {
	start := time.Now()
	return func() {
		queryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}
