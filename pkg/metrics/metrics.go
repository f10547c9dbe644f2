// Package metrics implements Prometheus metrics for the sendgate service
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	prometheusNamespace  = "reachforge"
	prometheusSubsystem  = "sendgate"
	workspaceIDLabelName = "workspace_id"
	reasonLabelName      = "reason"
)

var (
	metrics *Metrics
	once    sync.Once
)

// Metrics holds the prometheus.Collector instances
type Metrics struct {
	sendEmail       *prometheus.CounterVec
	failedSendEmail *prometheus.CounterVec
	deniedSendEmail *prometheus.CounterVec
	warmupSendEmail *prometheus.CounterVec
}

// Register registers the metrics with the given prometheus.Registerer
func (m *Metrics) Register(r prometheus.Registerer) {
	r.MustRegister(m.sendEmail)
	r.MustRegister(m.failedSendEmail)
	r.MustRegister(m.deniedSendEmail)
	r.MustRegister(m.warmupSendEmail)
}

// IncSendEmail increments the metric counter for delivered outreach emails
func (m *Metrics) IncSendEmail(workspaceID string) {
	m.sendEmail.With(prometheus.Labels{workspaceIDLabelName: workspaceID}).Inc()
}

// IncFailedSendEmail increments the metric counter for transport failures
func (m *Metrics) IncFailedSendEmail(workspaceID string) {
	m.failedSendEmail.With(prometheus.Labels{workspaceIDLabelName: workspaceID}).Inc()
}

// IncDeniedSendEmail increments the metric counter for quota denials
func (m *Metrics) IncDeniedSendEmail(workspaceID, reason string) {
	m.deniedSendEmail.With(prometheus.Labels{workspaceIDLabelName: workspaceID, reasonLabelName: reason}).Inc()
}

// IncWarmupSendEmail increments the metric counter for warm-up sends
func (m *Metrics) IncWarmupSendEmail(workspaceID string) {
	m.warmupSendEmail.With(prometheus.Labels{workspaceIDLabelName: workspaceID}).Inc()
}

// DefaultInstance returns the global Singleton instance for Metrics
func DefaultInstance() *Metrics {
	once.Do(func() {
		metrics = NewInstance()
	})
	return metrics
}

// NewInstance returns a fresh Metrics instance, mainly for isolated tests
func NewInstance() *Metrics {
	return &Metrics{
		sendEmail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "send_email_total",
			Help:      "The number of outreach emails delivered by the transport.",
		}, []string{workspaceIDLabelName},
		),
		failedSendEmail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "failed_send_email_total",
			Help:      "The number of outreach emails the transport failed to deliver.",
		}, []string{workspaceIDLabelName},
		),
		deniedSendEmail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "denied_send_email_total",
			Help:      "The number of sends denied by quota admission, by reason code.",
		}, []string{workspaceIDLabelName, reasonLabelName},
		),
		warmupSendEmail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "warmup_send_email_total",
			Help:      "The number of warm-up emails delivered outside the outreach quotas.",
		}, []string{workspaceIDLabelName},
		),
	}
}
