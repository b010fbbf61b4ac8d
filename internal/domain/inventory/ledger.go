package inventory

import (
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ApplyDelta calcula la nueva cantidad tras un movimiento.
// Una salida que dejaría el stock negativo falla con ErrInsufficientStock.
func ApplyDelta(current decimal.Decimal, kind string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return current, domain.ErrInvalidInput
	}
	switch kind {
	case entity.MovementKindInflow:
		return current.Add(amount), nil
	case entity.MovementKindOutflow:
		if current.LessThan(amount) {
			return current, domain.ErrInsufficientStock
		}
		return current.Sub(amount), nil
	default:
		return current, domain.ErrInvalidInput
	}
}

// Replay reconstruye la cantidad desde cero sumando los movimientos en orden.
func Replay(movements []*entity.MovementEvent) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.SignedAmount())
	}
	return total
}
