package repository

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
)

// LoanRepository define el puerto de persistencia para préstamos.
type LoanRepository interface {
	Create(ctx context.Context, loan *entity.Loan) error
	GetByID(ctx context.Context, id string) (*entity.Loan, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Loan, error)
	Update(ctx context.Context, loan *entity.Loan) error
	// ListByEmployee devuelve los préstamos del empleado, el más reciente primero.
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Loan, error)
}
