package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	httpRequestsTotal   *prometheus.CounterVec
	httpDurationSeconds *prometheus.HistogramVec
	attendanceWrites    *prometheus.CounterVec
	auditEntriesTotal   *prometheus.CounterVec
	outboxPublished     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors on the default registry.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		attendanceWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_writes_total",
			Help: "Work log writes issued by bulk attendance saves.",
		}, []string{"kind"})

		auditEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_entries_total",
			Help: "Audit entries appended, by action.",
		}, []string{"action"})

		outboxPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_events_total",
			Help: "Outbox events handed to Kafka, by result.",
		}, []string{"result"})

		prometheus.MustRegister(httpRequestsTotal, httpDurationSeconds, attendanceWrites, auditEntriesTotal, outboxPublished)
	})
}

func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

func HTTPDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpDurationSeconds
}

// AttendanceWrites is labelled by kind: insert, update or failed.
func AttendanceWrites() *prometheus.CounterVec {
	RegisterMetrics()
	return attendanceWrites
}

func AuditEntries() *prometheus.CounterVec {
	RegisterMetrics()
	return auditEntriesTotal
}

// OutboxEvents is labelled by result: sent or failed.
func OutboxEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return outboxPublished
}
