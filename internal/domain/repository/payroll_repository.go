package repository

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
)

// PayrollRepository define el puerto de persistencia para roles de pago.
type PayrollRepository interface {
	Create(ctx context.Context, line *entity.PayrollLine) error
	GetByID(ctx context.Context, id string) (*entity.PayrollLine, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PayrollLine, error)
	Update(ctx context.Context, line *entity.PayrollLine) error
	// ListByEmployee devuelve el historial del empleado, fecha de pago más reciente primero.
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.PayrollLine, error)
}
