package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Alert, error)
	ListUnacknowledgedByStockRecord(ctx context.Context, stockRecordID string) ([]*entity.Alert, error)
	Acknowledge(ctx context.Context, id string, at time.Time) error
	// AcknowledgeAll marca como leídas todas las alertas pendientes (siteID vacío = todas las fincas).
	AcknowledgeAll(ctx context.Context, siteID string, at time.Time) (int64, error)
}
