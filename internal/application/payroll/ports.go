package payroll

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de roles atado a ella.
type TxRunner interface {
	RunPayroll(ctx context.Context, fn func(repo repository.PayrollRepository) error) error
}

// PayslipGenerator genera el comprobante de pago (PDF) de un rol.
type PayslipGenerator interface {
	GeneratePayslip(ctx context.Context, line *entity.PayrollLine) ([]byte, error)
}
