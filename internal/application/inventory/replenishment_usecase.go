package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/bananera-ledger/internal/application/dto"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/inventory"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de insumos de una finca.
type ReplenishmentUseCase struct {
	stockRepo repository.StockRecordRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(stockRepo repository.StockRecordRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{stockRepo: stockRepo}
}

// GenerateReplenishmentList devuelve los insumos bajo el umbral de reorden con la cantidad
// sugerida de pedido. siteID puede ser vacío para considerar todas las fincas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, siteID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Registros por debajo del umbral
	records, err := uc.stockRepo.ListBelowThreshold(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Construir los DTOs
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(records))
	for _, rec := range records {
		qty := inventory.SuggestedOrderQty(*rec)
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			StockRecordID:      rec.ID,
			SiteID:             rec.SiteID,
			Name:               rec.Name,
			Category:           rec.Category,
			Unit:               rec.Unit,
			CurrentStock:       rec.QuantityOnHand,
			ReorderThreshold:   rec.ReorderThreshold,
			IdealStock:         inventory.IdealStock(*rec),
			SuggestedOrderQty:  qty,
			UnitPrice:          rec.UnitPrice,
			EstimatedOrderCost: qty.Mul(rec.UnitPrice),
			Level:              string(inventory.ClassifyLevel(rec.QuantityOnHand, rec.ReorderThreshold)),
			OrderPlaced:        rec.OrderPlaced,
		})
	}

	// 3. Ordenar: pendientes de pedido antes que los ya pedidos; dentro de cada grupo
	// primero los críticos y luego el mayor déficit absoluto bajo el umbral
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.OrderPlaced != b.OrderPlaced {
			return !a.OrderPlaced
		}
		critA := a.Level == string(entity.StockLevelCritical)
		critB := b.Level == string(entity.StockLevelCritical)
		if critA != critB {
			return critA
		}
		defA := a.ReorderThreshold.Sub(a.CurrentStock)
		defB := b.ReorderThreshold.Sub(b.CurrentStock)
		return defA.GreaterThan(defB)
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
