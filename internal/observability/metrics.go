// Package observability exposes prometheus counters for tracker mutations
// and for the storage recoveries that are otherwise only logged.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
)

var (
	mutationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "squirrels",
		Subsystem: "tracker",
		Name:      "mutations_total",
		Help:      "Number of tracker mutations grouped by operation and result.",
	}, []string{"operation", "result"})

	recoveriesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "squirrels",
		Subsystem: "storage",
		Name:      "recoveries_total",
		Help:      "Number of stored records or fields replaced by defaults while loading.",
	}, []string{"record", "reason"})

	writeErrorsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "squirrels",
		Subsystem: "storage",
		Name:      "write_errors_total",
		Help:      "Number of failed writes to the key-value medium.",
	}, []string{"record"})

	lastSaveGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "squirrels",
		Subsystem: "storage",
		Name:      "last_save_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful database write.",
	})
)

func init() {
	prometheus.MustRegister(mutationsCounter, recoveriesCounter, writeErrorsCounter, lastSaveGauge)
}

func RecordMutation(operation string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultRejected
	}
	mutationsCounter.WithLabelValues(operation, result).Inc()
}

func RecordRecovery(record, reason string) {
	recoveriesCounter.WithLabelValues(record, reason).Inc()
}

func RecordWriteError(record string) {
	writeErrorsCounter.WithLabelValues(record).Inc()
}

func RecordSaved(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastSaveGauge.Set(float64(ts.Unix()))
}

// Collectors is exposed for tests that read counter values with testutil.
func Collectors() (mutations, recoveries, writeErrors *prometheus.CounterVec) {
	return mutationsCounter, recoveriesCounter, writeErrorsCounter
}
