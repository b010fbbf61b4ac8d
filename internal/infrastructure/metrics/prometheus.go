// Package metrics expone las métricas del núcleo en Prometheus.
package metrics

import (
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bananera_ledger"

var _ ports.LedgerMetrics = (*PrometheusRecorder)(nil)

// PrometheusRecorder implementa ports.LedgerMetrics con contadores etiquetados.
type PrometheusRecorder struct {
	movementsApplied   *prometheus.CounterVec
	movementsRejected  *prometheus.CounterVec
	alertsRaised       *prometheus.CounterVec
	payrollTransitions *prometheus.CounterVec
	loanPayments       *prometheus.CounterVec
	txRetries          *prometheus.CounterVec
}

// NewPrometheusRecorder crea y registra los contadores en reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	counter := func(name, help, label string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, []string{label})
	}
	r := &PrometheusRecorder{
		movementsApplied:   counter("movements_applied_total", "Movimientos de inventario confirmados", "kind"),
		movementsRejected:  counter("movements_rejected_total", "Movimientos rechazados por motivo", "reason"),
		alertsRaised:       counter("alerts_raised_total", "Alertas de stock generadas", "severity"),
		payrollTransitions: counter("payroll_transitions_total", "Cambios de estado de roles de pago", "status"),
		loanPayments:       counter("loan_payments_total", "Pagos de préstamos por resultado", "outcome"),
		txRetries:          counter("tx_retries_total", "Reintentos por conflicto de concurrencia", "operation"),
	}
	reg.MustRegister(
		r.movementsApplied,
		r.movementsRejected,
		r.alertsRaised,
		r.payrollTransitions,
		r.loanPayments,
		r.txRetries,
	)
	return r
}

func (r *PrometheusRecorder) MovementApplied(kind string) {
	r.movementsApplied.WithLabelValues(kind).Inc()
}

func (r *PrometheusRecorder) MovementRejected(reason string) {
	r.movementsRejected.WithLabelValues(reason).Inc()
}

func (r *PrometheusRecorder) AlertRaised(severity string) {
	r.alertsRaised.WithLabelValues(severity).Inc()
}

func (r *PrometheusRecorder) PayrollTransition(status string) {
	r.payrollTransitions.WithLabelValues(status).Inc()
}

func (r *PrometheusRecorder) LoanPayment(outcome string) {
	r.loanPayments.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) TxRetry(operation string) {
	r.txRetries.WithLabelValues(operation).Inc()
}
