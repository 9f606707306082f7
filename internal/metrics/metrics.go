package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the relay's Prometheus instruments.
type Metrics struct {
	AdminsActive   prometheus.Gauge
	StudentsActive prometheus.Gauge

	FramesForwarded prometheus.Counter
	FrameSendErrors prometheus.Counter

	BroadcastsSent      prometheus.Counter
	BroadcastsPruned    prometheus.Counter
	TranscriptsReceived *prometheus.CounterVec

	UpstreamOpens  prometheus.Counter
	UpstreamErrors *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AdminsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "relay_admins_active",
			Help: "Current number of connected admin observers",
		}),
		StudentsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "relay_students_active",
			Help: "Current number of live student sessions",
		}),
		FramesForwarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_frames_forwarded_total",
			Help: "Audio frames forwarded to the upstream provider",
		}),
		FrameSendErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_frame_send_errors_total",
			Help: "Audio frames that failed to forward upstream",
		}),
		BroadcastsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_broadcasts_sent_total",
			Help: "Messages fanned out to admin channels",
		}),
		BroadcastsPruned: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_broadcast_channels_pruned_total",
			Help: "Admin channels removed after a failed delivery",
		}),
		TranscriptsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_transcripts_received_total",
			Help: "Transcript events received from the upstream provider",
		}, []string{"final"}),
		UpstreamOpens: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_upstream_opens_total",
			Help: "Upstream transcription sessions opened",
		}),
		UpstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_upstream_errors_total",
			Help: "Upstream errors by kind",
		}, []string{"kind"}),
	}
}

// NewDefault registers on the default registry for production wiring.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}
