// Package loan contiene las reglas puras de amortización de préstamos a empleados.
package loan

import (
	"fmt"

	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Validate verifica los invariantes del préstamo:
// 0 ≤ pagado ≤ monto, 0 ≤ cuotas pagadas ≤ cuotas, estado pagado sii pagado ≥ monto.
func Validate(l entity.Loan) error {
	if !l.Principal.IsPositive() {
		return fmt.Errorf("%w: el monto del préstamo debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if l.AmountPaid.IsNegative() {
		return fmt.Errorf("%w: monto pagado negativo", domain.ErrInvalidInput)
	}
	if l.AmountPaid.GreaterThan(l.Principal) {
		return domain.ErrOverpaymentRejected
	}
	if err := ValidateInstallments(l.InstallmentsPaid, l.InstallmentCount); err != nil {
		return err
	}
	if l.Status != StatusFor(l.Principal, l.AmountPaid) {
		return fmt.Errorf("%w: estado %q no corresponde al saldo", domain.ErrInvalidStateTransition, l.Status)
	}
	return nil
}

// ValidateInstallments exige cuotas ≥ 1 y 0 ≤ cuotas pagadas ≤ cuotas.
func ValidateInstallments(paid, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: el préstamo necesita al menos una cuota", domain.ErrInvalidInstallmentCount)
	}
	if paid < 0 || paid > count {
		return fmt.Errorf("%w: %d cuotas pagadas de %d", domain.ErrInvalidInstallmentCount, paid, count)
	}
	return nil
}

// StatusFor deriva el estado del préstamo a partir del saldo.
func StatusFor(principal, paid decimal.Decimal) string {
	if paid.GreaterThanOrEqual(principal) {
		return entity.LoanStatusPaid
	}
	return entity.LoanStatusActive
}

// ApplyPayment devuelve una copia del préstamo con el pago aplicado.
// El original nunca se modifica: si hay error, el llamador conserva el estado previo.
// installmentsPaid nil deja las cuotas como están.
func ApplyPayment(l entity.Loan, amount decimal.Decimal, installmentsPaid *int) (entity.Loan, error) {
	if !amount.IsPositive() {
		return l, fmt.Errorf("%w: el pago debe ser mayor a cero", domain.ErrInvalidInput)
	}
	newPaid := l.AmountPaid.Add(amount)
	if newPaid.GreaterThan(l.Principal) {
		return l, fmt.Errorf("%w: saldo pendiente %s, pago %s",
			domain.ErrOverpaymentRejected, l.Outstanding().StringFixed(2), amount.StringFixed(2))
	}
	next := l
	if installmentsPaid != nil {
		if err := ValidateInstallments(*installmentsPaid, l.InstallmentCount); err != nil {
			return l, err
		}
		next.InstallmentsPaid = *installmentsPaid
	}
	next.AmountPaid = newPaid
	next.Status = StatusFor(l.Principal, newPaid)
	return next, nil
}

// SetInstallments devuelve una copia con el avance de cuotas informado.
func SetInstallments(l entity.Loan, paid int) (entity.Loan, error) {
	if err := ValidateInstallments(paid, l.InstallmentCount); err != nil {
		return l, err
	}
	next := l
	next.InstallmentsPaid = paid
	return next, nil
}
