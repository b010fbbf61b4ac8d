package ports

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
)

// AlertNotifier publica una alerta ya confirmada en la base (ej. Kafka).
// Se invoca después del commit: un fallo aquí nunca revierte el movimiento.
type AlertNotifier interface {
	NotifyAlert(ctx context.Context, alert *entity.Alert) error
}

// NopNotifier no publica nada (Kafka deshabilitado).
type NopNotifier struct{}

// NotifyAlert implementa AlertNotifier.
func (NopNotifier) NotifyAlert(context.Context, *entity.Alert) error { return nil }
