package inventory

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del ledger: movimiento, snapshot de stock y alerta se confirman juntos o nada.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error) error
}
