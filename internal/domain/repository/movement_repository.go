package repository

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del ledger de movimientos (solo inserción).
type MovementRepository interface {
	// Create persiste el movimiento y le asigna su número de secuencia.
	Create(ctx context.Context, movement *entity.MovementEvent) error
	// ListByStockRecord devuelve los movimientos de un registro en orden de commit.
	ListByStockRecord(ctx context.Context, stockRecordID string) ([]*entity.MovementEvent, error)
}
