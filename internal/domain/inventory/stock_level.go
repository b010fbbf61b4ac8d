package inventory

import (
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var criticalRatio = decimal.RequireFromString("0.5")

// ClassifyLevel clasifica el stock frente al umbral de reorden (servicio de dominio puro).
// Prioridad: crítico si qty < 0.5 × umbral; bajo si qty < umbral; normal en otro caso.
func ClassifyLevel(quantity, reorderThreshold decimal.Decimal) entity.StockLevel {
	if quantity.LessThan(reorderThreshold.Mul(criticalRatio)) {
		return entity.StockLevelCritical
	}
	if quantity.LessThan(reorderThreshold) {
		return entity.StockLevelLow
	}
	return entity.StockLevelNormal
}
