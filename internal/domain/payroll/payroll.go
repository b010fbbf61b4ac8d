// Package payroll contiene las reglas puras del rol de pago: cálculo del total a pagar
// y la máquina de estados pendiente → aprobado → pagado.
package payroll

import (
	"fmt"

	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ComputeTotal calcula total = base + horas extras + bonificaciones - deducciones en decimal fijo.
// Un componente negativo o un total negativo es un error de datos: no se recorta a cero.
func ComputeTotal(base, overtime, bonuses, deductions decimal.Decimal) (decimal.Decimal, error) {
	components := []struct {
		name  string
		value decimal.Decimal
	}{
		{"salario base", base}, {"horas extras", overtime},
		{"bonificaciones", bonuses}, {"deducciones", deductions},
	}
	for _, c := range components {
		if c.value.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: %s negativo", domain.ErrInvalidPayrollLine, c.name)
		}
	}
	total := base.Add(overtime).Add(bonuses).Sub(deductions)
	if total.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: total a pagar negativo (%s)", domain.ErrInvalidPayrollLine, total.StringFixed(2))
	}
	return total, nil
}

// Recompute recalcula TotalPayable de la línea a partir de sus componentes.
func Recompute(line *entity.PayrollLine) error {
	total, err := ComputeTotal(line.BaseSalary, line.Overtime, line.Bonuses, line.Deductions)
	if err != nil {
		return err
	}
	line.TotalPayable = total
	return nil
}

// Approve requiere estado pendiente.
func Approve(status string) (string, error) {
	if status != entity.PayrollStatusPending {
		return status, transitionError(status, entity.PayrollStatusApproved)
	}
	return entity.PayrollStatusApproved, nil
}

// MarkPaid requiere estado pendiente o aprobado. Marcar pagado un rol ya pagado se rechaza.
func MarkPaid(status string) (string, error) {
	switch status {
	case entity.PayrollStatusPending, entity.PayrollStatusApproved:
		return entity.PayrollStatusPaid, nil
	}
	return status, transitionError(status, entity.PayrollStatusPaid)
}

// Revert devuelve a pendiente un rol aprobado o pagado (override administrativo).
func Revert(status string) (string, error) {
	switch status {
	case entity.PayrollStatusApproved, entity.PayrollStatusPaid:
		return entity.PayrollStatusPending, nil
	}
	return status, transitionError(status, entity.PayrollStatusPending)
}

func transitionError(from, to string) error {
	return fmt.Errorf("%w: %s → %s", domain.ErrInvalidStateTransition, from, to)
}
