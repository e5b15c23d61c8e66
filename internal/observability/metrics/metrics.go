package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "yacht_tracker_"

	ResultSuccess   = "success"
	ResultError     = "error"
	ResultDiscarded = "discarded"
	ResultConflict  = "conflict"
	ResultInvalid   = "invalid"
	ResultPartial   = "partial"
)

var (
	registerOnce sync.Once

	pollTotal       *prometheus.CounterVec
	pollLatency     *prometheus.HistogramVec
	pollCoalesced   prometheus.Counter
	snapshotDevices prometheus.Gauge
	snapshotStale   prometheus.Gauge

	assignmentTotal   *prometheus.CounterVec
	assignmentLatency *prometheus.HistogramVec
	linkMissingTotal  prometheus.Counter
)

// Init registers the tracker metrics with reg, or the default registerer
// when reg is nil. Only the first call has an effect.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		pollTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "poll_total",
				Help: "Total telemetry polls by result",
			},
			[]string{"result"},
		)
		pollLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "poll_latency_seconds",
				Help:    "Telemetry fetch latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		pollCoalesced = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "poll_coalesced_total",
				Help: "Refresh requests dropped because a fetch was already in flight",
			},
		)
		snapshotDevices = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "snapshot_devices",
				Help: "Devices in the current snapshot",
			},
		)
		snapshotStale = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "snapshot_stale",
				Help: "1 when the last fetch failed and the snapshot is stale",
			},
		)

		assignmentTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "assignment_operations_total",
				Help: "Total assignment operations by operation and result",
			},
			[]string{"operation", "result"},
		)
		assignmentLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "assignment_latency_seconds",
				Help:    "Assignment operation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		)
		linkMissingTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "guest_link_missing_total",
				Help: "Guests stored without their device link",
			},
		)

		reg.MustRegister(
			pollTotal,
			pollLatency,
			pollCoalesced,
			snapshotDevices,
			snapshotStale,
			assignmentTotal,
			assignmentLatency,
			linkMissingTotal,
		)
	})
}

// ObservePoll records one telemetry fetch.
func ObservePoll(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if pollTotal != nil {
		pollTotal.WithLabelValues(result).Inc()
	}
	if pollLatency != nil {
		pollLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

func IncPollCoalesced() {
	if pollCoalesced != nil {
		pollCoalesced.Inc()
	}
}

// SetSnapshot publishes the current snapshot size and staleness.
func SetSnapshot(devices int, stale bool) {
	if snapshotDevices != nil {
		snapshotDevices.Set(float64(devices))
	}
	if snapshotStale != nil {
		if stale {
			snapshotStale.Set(1)
		} else {
			snapshotStale.Set(0)
		}
	}
}

// ObserveAssignment records an assign or unassign call.
func ObserveAssignment(operation, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if assignmentTotal != nil {
		assignmentTotal.WithLabelValues(operation, result).Inc()
	}
	if assignmentLatency != nil {
		assignmentLatency.WithLabelValues(operation).Observe(duration.Seconds())
	}
}

func IncLinkMissing() {
	if linkMissingTotal != nil {
		linkMissingTotal.Inc()
	}
}
