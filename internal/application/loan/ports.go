package loan

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de préstamos atado a ella.
type TxRunner interface {
	RunLoans(ctx context.Context, fn func(repo repository.LoanRepository) error) error
}
