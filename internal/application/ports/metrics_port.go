package ports

// LedgerMetrics define el puerto de salida para métricas del núcleo.
// El adaptador Prometheus vive en infrastructure/metrics.
type LedgerMetrics interface {
	MovementApplied(kind string)
	MovementRejected(reason string)
	AlertRaised(severity string)
	PayrollTransition(status string)
	LoanPayment(outcome string)
	TxRetry(operation string)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) MovementApplied(string)   {}
func (NopMetrics) MovementRejected(string)  {}
func (NopMetrics) AlertRaised(string)       {}
func (NopMetrics) PayrollTransition(string) {}
func (NopMetrics) LoanPayment(string)       {}
func (NopMetrics) TxRetry(string)           {}
