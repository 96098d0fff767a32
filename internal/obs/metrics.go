package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "entanglement"

// Registry is this core's private Prometheus registry, rather than the
// global default one, so embedding this module alongside another
// Prometheus-instrumented component never collides on metric names
// (matches the teacher's internal/metrics.Registry convention, which this
// ledger's grounding review found to be referenced but not itself defined
// in the retrieved teacher snapshot — defined fresh here, same pattern).
var Registry = prometheus.NewRegistry()

var (
	// HandshakesStarted tracks handshakes entering HANDSHAKING.
	HandshakesStarted = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handshakes",
			Name:      "started_total",
			Help:      "Total number of handshakes started",
		},
		[]string{"role"}, // session.Role value: INITIATOR, RESPONDER
	)

	// HandshakesCompleted tracks handshakes reaching ESTABLISHED.
	HandshakesCompleted = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handshakes",
			Name:      "completed_total",
			Help:      "Total number of handshakes completed",
		},
		[]string{"status"}, // success, failure, timeout
	)

	// HandshakeDuration tracks end-to-end handshake latency.
	HandshakeDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "handshakes",
			Name:      "duration_seconds",
			Help:      "Handshake duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	// SessionsActive tracks currently active sessions.
	SessionsActive = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Number of currently active sessions",
		},
	)

	// ParticipantsActive tracks currently established participants.
	ParticipantsActive = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "participants_active",
			Help:      "Number of currently ESTABLISHED participants",
		},
	)

	// DataRecords tracks data-phase record throughput.
	DataRecords = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "records_total",
			Help:      "Total number of data-phase records processed",
		},
		[]string{"direction"}, // sent, received
	)

	// CryptoOperations tracks strategy-level crypto operations.
	CryptoOperations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crypto",
			Name:      "operations_total",
			Help:      "Total number of cryptographic operations",
		},
		[]string{"operation", "algorithm"}, // encrypt/decrypt/encapsulate/sign/verify, catalog type name
	)

	// CryptoErrors tracks failed crypto operations.
	CryptoErrors = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crypto",
			Name:      "errors_total",
			Help:      "Total number of cryptographic operation failures",
		},
		[]string{"operation"},
	)
)
