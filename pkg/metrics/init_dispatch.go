package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDispatchMetrics() {
	r.MessagesSentTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "maxcut_dispatch_messages_sent_total",
			Help: "Total number of messages sent over the transport",
		},
		[]string{"type"},
	)

	r.MessagesReceivedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "maxcut_dispatch_messages_received_total",
			Help: "Total number of messages received over the transport",
		},
		[]string{"type"},
	)

	r.MessageBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "maxcut_dispatch_message_bytes_total",
			Help: "Total encoded payload bytes through the transport",
		},
		[]string{"direction"}, // sent, received
	)

	r.WorkersConnected = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "maxcut_dispatch_workers_connected",
			Help: "Number of workers currently attached to the coordinator",
		},
	)

	r.TaskDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maxcut_dispatch_task_duration_seconds",
			Help:    "Duration of remote subgraph tasks in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"worker"},
	)

	r.TransportErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "maxcut_dispatch_transport_errors_total",
			Help: "Total number of transport-level failures",
		},
		[]string{"op"}, // send, recv, close
	)
}
