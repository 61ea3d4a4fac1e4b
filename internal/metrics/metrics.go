// Package metrics provides Prometheus metrics for the command link and render loop.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lednode",
		Subsystem: "link",
		Name:      "messages_received_total",
		Help:      "Total command payloads received on any ingestion path",
	})

	messagesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lednode",
		Subsystem: "link",
		Name:      "messages_rejected_total",
		Help:      "Total payloads rejected during decode, by reason",
	}, []string{"reason"})

	commandsAdopted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lednode",
		Subsystem: "link",
		Name:      "commands_adopted_total",
		Help:      "Total decoded commands adopted as the active command",
	})

	linkConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lednode",
		Subsystem: "link",
		Name:      "connected",
		Help:      "Whether a command was received within the staleness window (1/0)",
	})

	patternChanges = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lednode",
		Subsystem: "render",
		Name:      "pattern_changes_total",
		Help:      "Total transitions of the active pattern",
	})

	framesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lednode",
		Subsystem: "render",
		Name:      "frames_rendered_total",
		Help:      "Total frames pushed to the LED driver",
	})

	// Local counters for the periodic stats reporter.
	receivedCount atomic.Uint64
	rejectedCount atomic.Uint64
	frameCount    atomic.Uint64
)

// IncReceived records an inbound command payload.
func IncReceived() {
	messagesReceived.Inc()
	receivedCount.Add(1)
}

// IncRejected records a rejected payload with its decode failure reason.
func IncRejected(reason string) {
	messagesRejected.WithLabelValues(reason).Inc()
	rejectedCount.Add(1)
}

// IncAdopted records a command adoption.
func IncAdopted() {
	commandsAdopted.Inc()
}

// IncPatternChange records an active pattern transition.
func IncPatternChange() {
	patternChanges.Inc()
}

// IncFrame records a frame handed to the driver.
func IncFrame() {
	framesRendered.Inc()
	frameCount.Add(1)
}

// SetConnected sets the link connectivity gauge.
func SetConnected(connected bool) {
	if connected {
		linkConnected.Set(1)
	} else {
		linkConnected.Set(0)
	}
}

// Snapshot holds cumulative counts for the stats reporter.
type Snapshot struct {
	Received uint64
	Rejected uint64
	Frames   uint64
}

// GetSnapshot returns the current cumulative counters.
func GetSnapshot() Snapshot {
	return Snapshot{
		Received: receivedCount.Load(),
		Rejected: rejectedCount.Load(),
		Frames:   frameCount.Load(),
	}
}
