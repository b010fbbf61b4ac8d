package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/inventory"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

// AlertEvaluator inspecciona el stock tras un movimiento y crea la alerta de umbral si corresponde.
// Se ejecuta dentro de la transacción del movimiento: lee las alertas pendientes con el
// registro ya bloqueado, así la deduplicación nunca trabaja sobre una lista desactualizada.
type AlertEvaluator struct{}

// NewAlertEvaluator construye el evaluador.
func NewAlertEvaluator() *AlertEvaluator { return &AlertEvaluator{} }

// Evaluate devuelve la alerta creada o nil si no hacía falta.
func (e *AlertEvaluator) Evaluate(
	ctx context.Context,
	alertRepo repository.AlertRepository,
	record *entity.StockRecord,
	now time.Time,
) (*entity.Alert, error) {
	open, err := alertRepo.ListUnacknowledgedByStockRecord(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("listar alertas pendientes: %w", err)
	}
	alert := inventory.EvaluateAlert(*record, open, now)
	if alert == nil {
		return nil, nil
	}
	alert.ID = uuid.New().String()
	if err := alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}
