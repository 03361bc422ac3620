package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jadwalku",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	scheduleBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jadwalku",
			Name:      "schedule_builds_total",
			Help:      "Count of schedule store builds by outcome.",
		},
		[]string{"status"},
	)

	sheetFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jadwalku",
			Name:      "sheet_fetches_total",
			Help:      "Count of spreadsheet range fetches by sheet.",
		},
		[]string{"sheet"},
	)

	buildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jadwalku",
			Name:      "schedule_build_duration_seconds",
			Help:      "Time spent fetching and building the schedule store.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, scheduleBuilds, sheetFetches, buildDuration)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncScheduleBuild(status string) {
	scheduleBuilds.WithLabelValues(status).Inc()
}

func IncSheetFetch(sheet string) {
	sheetFetches.WithLabelValues(sheet).Inc()
}

func ObserveBuildDuration(d time.Duration) {
	buildDuration.Observe(d.Seconds())
}
