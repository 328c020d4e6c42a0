package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration holds the counters for registration, linkage and payment
// flows. A nil *Registration is valid and records nothing.
type Registration struct {
	Registrations     *prometheus.CounterVec
	DuplicateRefusals *prometheus.CounterVec
	Attaches          *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
	SoftFailures      *prometheus.CounterVec
	ReconcileActions  *prometheus.CounterVec
	OperationLatency  *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// the service and a fresh registry in tests.
func New(reg prometheus.Registerer) *Registration {
	factory := promauto.With(reg)
	return &Registration{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_entities_total",
			Help: "Entities registered by kind and outcome",
		}, []string{"kind", "outcome"}),

		DuplicateRefusals: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_duplicate_refusals_total",
			Help: "Team registrations refused by a duplicate guard",
		}, []string{"guard"}), // guard: "user", "team_name", "contact_email"

		Attaches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_attaches_total",
			Help: "Attach operations by kind and outcome",
		}, []string{"kind", "outcome"}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_status_transitions_total",
			Help: "Payment status writes by source and target status",
		}, []string{"from", "to"}),

		SoftFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_soft_failures_total",
			Help: "Best-effort writes that failed and were swallowed",
		}, []string{"operation"}),

		ReconcileActions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_reconcile_actions_total",
			Help: "Reconciliation sweep findings by action",
		}, []string{"kind", "action"}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registration_operation_duration_seconds",
			Help:    "Duration of registration use case operations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
	}
}

func (m *Registration) IncRegistration(kind, outcome string) {
	if m != nil {
		m.Registrations.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Registration) IncDuplicateRefusal(guard string) {
	if m != nil {
		m.DuplicateRefusals.WithLabelValues(guard).Inc()
	}
}

func (m *Registration) IncAttach(kind, outcome string) {
	if m != nil {
		m.Attaches.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Registration) IncStatusTransition(from, to string) {
	if m != nil {
		m.StatusTransitions.WithLabelValues(from, to).Inc()
	}
}

func (m *Registration) IncSoftFailure(operation string) {
	if m != nil {
		m.SoftFailures.WithLabelValues(operation).Inc()
	}
}

func (m *Registration) AddReconcileActions(kind, action string, n int) {
	if m != nil && n > 0 {
		m.ReconcileActions.WithLabelValues(kind, action).Add(float64(n))
	}
}

func (m *Registration) ObserveOperation(operation string, started time.Time) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	}
}
