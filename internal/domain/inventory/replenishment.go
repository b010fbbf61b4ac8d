package inventory

import (
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var idealStockFactor = decimal.RequireFromString("1.5")

// IdealStock devuelve el nivel objetivo de reposición: la capacidad máxima si está definida,
// si no 1.5 × umbral de reorden.
func IdealStock(record entity.StockRecord) decimal.Decimal {
	if record.MaxCapacity.IsPositive() {
		return record.MaxCapacity
	}
	return record.ReorderThreshold.Mul(idealStockFactor)
}

// SuggestedOrderQty cantidad sugerida a pedir para llegar al stock ideal (nunca negativa).
func SuggestedOrderQty(record entity.StockRecord) decimal.Decimal {
	qty := IdealStock(record).Sub(record.QuantityOnHand)
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty
}

// OrderReceived indica si un pedido pendiente ya se cubrió: el stock volvió al umbral de reorden.
func OrderReceived(record entity.StockRecord) bool {
	return record.OrderPlaced && !record.QuantityOnHand.LessThan(record.ReorderThreshold)
}
