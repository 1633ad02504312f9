package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the submission pipeline.
type Metrics struct {
	// Cases created through the wizard, by category
	CasesSubmitted *prometheus.CounterVec

	// Wizard validation rejections, by reason key
	WizardRejections *prometheus.CounterVec

	// Status transitions applied by the case store
	StatusTransitions *prometheus.CounterVec
}

// New creates a Metrics instance registered against reg. Production code
// passes prometheus.DefaultRegisterer; tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CasesSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "attestflow_cases_submitted_total",
			Help: "Total cases created through the intake wizard by category",
		}, []string{"category"}),

		WizardRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "attestflow_wizard_rejections_total",
			Help: "Total wizard gate and upload rejections by reason",
		}, []string{"reason"}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "attestflow_status_transitions_total",
			Help: "Total case status transitions by resulting status",
		}, []string{"status"}),
	}
}

// IncrementSubmitted records a confirmed case.
func (m *Metrics) IncrementSubmitted(category string) {
	if m != nil {
		m.CasesSubmitted.WithLabelValues(category).Inc()
	}
}

// IncrementRejection records a validation failure.
func (m *Metrics) IncrementRejection(reason string) {
	if m != nil {
		m.WizardRejections.WithLabelValues(reason).Inc()
	}
}

// IncrementTransition records a status advance.
func (m *Metrics) IncrementTransition(status string) {
	if m != nil {
		m.StatusTransitions.WithLabelValues(status).Inc()
	}
}
