// File: metrics/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package metrics provides Prometheus instrumentation for the reactor and
// its sockets. Metrics are created against a caller-supplied Registerer so
// the library never touches the global registry on its own.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the reactor-level counters and gauges.
type Metrics struct {
	// MessagesSent counts multipart messages accepted by the engine.
	MessagesSent prometheus.Counter
	// MessagesReceived counts multipart messages delivered to consumers.
	MessagesReceived prometheus.Counter
	// SendsBlocked counts sends that hit the engine's high-water mark
	// and had to wait for writability.
	SendsBlocked prometheus.Counter
	// Commands counts control commands executed on the polling goroutine.
	Commands prometheus.Counter
	// PollCycles counts reactor poll iterations.
	PollCycles prometheus.Counter
	// SocketsActive tracks currently registered sockets.
	SocketsActive prometheus.Gauge
	// SendQueueDepth tracks messages queued wrapper-side awaiting POLLOUT.
	SendQueueDepth prometheus.Gauge
}

// New creates the metric set registered with reg. A nil reg yields
// unregistered but fully functional metrics, so callers may always
// increment without nil checks.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MessagesSent: f.NewCounter(prometheus.CounterOpts{
			Name: "hzmq_messages_sent_total",
			Help: "Total multipart messages handed to the messaging engine.",
		}),
		MessagesReceived: f.NewCounter(prometheus.CounterOpts{
			Name: "hzmq_messages_received_total",
			Help: "Total multipart messages delivered to receivers.",
		}),
		SendsBlocked: f.NewCounter(prometheus.CounterOpts{
			Name: "hzmq_sends_blocked_total",
			Help: "Total sends deferred because the engine reached its high-water mark.",
		}),
		Commands: f.NewCounter(prometheus.CounterOpts{
			Name: "hzmq_commands_total",
			Help: "Total control commands executed on the reactor goroutine.",
		}),
		PollCycles: f.NewCounter(prometheus.CounterOpts{
			Name: "hzmq_poll_cycles_total",
			Help: "Total reactor poll loop iterations.",
		}),
		SocketsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "hzmq_sockets_active",
			Help: "Sockets currently registered with the reactor.",
		}),
		SendQueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "hzmq_send_queue_depth",
			Help: "Messages queued in the wrapper awaiting engine writability.",
		}),
	}
}
