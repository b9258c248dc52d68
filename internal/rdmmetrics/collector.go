// Package rdmmetrics exposes Prometheus instrumentation for RDM responder
// dispatch: request volume, NACK reasons, AckTimer queue depth, and
// dispatch latency.
package rdmmetrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "rdmresponder"
	subsystem = "rdm"
)

// Label names for RDM dispatch metrics.
const (
	labelUID     = "uid"
	labelPID     = "pid"
	labelReason  = "reason"
	labelStatus  = "status"
)

// Collector holds all RDM dispatch Prometheus metrics.
//
// Requests tracks per-(uid, pid) GET/SET volume. NackReasons tracks how
// often each NACK reason fires, the signal an operator watches for a
// misbehaving controller or a responder configuration mistake.
// QueueDepth tracks AckTimerResponder's live queued-message count.
// DispatchLatency times HandleRDMRequest end to end.
type Collector struct {
	// Requests counts every HandleRDMRequest call, labeled by responder UID,
	// PID, and transport outcome status.
	Requests *prometheus.CounterVec

	// NackReasons counts NACK responses, labeled by responder UID and
	// reason code.
	NackReasons *prometheus.CounterVec

	// QueueDepth reports an AckTimerResponder's live queued-message count
	// (upcoming + ready), labeled by responder UID.
	QueueDepth *prometheus.GaugeVec

	// DispatchLatency records HandleRDMRequest wall-clock duration in
	// seconds, labeled by responder UID and PID.
	DispatchLatency *prometheus.HistogramVec
}

// NewCollector creates a Collector with all RDM metrics registered against
// reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.Requests,
		c.NackReasons,
		c.QueueDepth,
		c.DispatchLatency,
	)

	return c
}

func newMetrics() *Collector {
	requestLabels := []string{labelUID, labelPID, labelStatus}
	nackLabels := []string{labelUID, labelReason}
	queueLabels := []string{labelUID}
	latencyLabels := []string{labelUID, labelPID}

	return &Collector{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Total RDM requests dispatched, by responder UID, PID, and outcome status.",
		}, requestLabels),

		NackReasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "nack_reasons_total",
			Help:      "Total NACK responses, by responder UID and NACK reason.",
		}, nackLabels),

		QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ack_timer_queue_depth",
			Help:      "Current AckTimerResponder queued-message count (upcoming + ready).",
		}, queueLabels),

		DispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dispatch_latency_seconds",
			Help:      "HandleRDMRequest wall-clock latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, latencyLabels),
	}
}

// RecordRequest increments the request counter for one dispatch outcome.
func (c *Collector) RecordRequest(uid, status string, pid uint16) {
	c.Requests.WithLabelValues(uid, pidLabel(pid), status).Inc()
}

// RecordNack increments the NACK-reason counter.
func (c *Collector) RecordNack(uid, reason string) {
	c.NackReasons.WithLabelValues(uid, reason).Inc()
}

// SetQueueDepth reports an AckTimerResponder's current queue depth.
func (c *Collector) SetQueueDepth(uid string, depth int) {
	c.QueueDepth.WithLabelValues(uid).Set(float64(depth))
}

// ObserveDispatchLatency records one HandleRDMRequest duration.
func (c *Collector) ObserveDispatchLatency(uid string, pid uint16, seconds float64) {
	c.DispatchLatency.WithLabelValues(uid, pidLabel(pid)).Observe(seconds)
}

// pidLabel renders a PID as the "0xNNNN" form used throughout RDM tooling.
func pidLabel(pid uint16) string {
	return fmt.Sprintf("0x%04X", pid)
}
