package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "healthtracker"

var (
	recordsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "records_logged_total",
		Help:      "Tracker records written, by record kind.",
	}, []string{"kind"})

	reportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "report",
		Name:      "generation_duration_seconds",
		Help:      "Time spent fetching records, aggregating and assembling a PDF report.",
		Buckets:   prometheus.DefBuckets,
	})

	reportFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "report",
		Name:      "failures_total",
		Help:      "Report exports that failed, by stage.",
	}, []string{"stage"})

	cachedRecordLists = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "tracker_record_lists",
		Help:      "Cached per-user tracker record lists seen by the last sweep.",
	})
)

func init() {
	prometheus.MustRegister(recordsLogged, reportDuration, reportFailures, cachedRecordLists)
}

func RecordLogged(kind string) {
	recordsLogged.WithLabelValues(kind).Inc()
}

func ObserveReportGeneration(started time.Time) {
	reportDuration.Observe(time.Since(started).Seconds())
}

// ReportFailed counts a failed export; stage is "fetch", "assemble" or "stream".
func ReportFailed(stage string) {
	reportFailures.WithLabelValues(stage).Inc()
}

func SetCachedRecordLists(count int) {
	cachedRecordLists.Set(float64(count))
}
