package inventory

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/application/txretry"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
	"github.com/jhoicas/bananera-ledger/pkg/logger"
)

// AlertUseCase operaciones sobre alertas ya emitidas: consulta y reconocimiento (marcar leída).
// El ledger nunca modifica una alerta; subir de nuevo sobre el umbral tampoco la reconoce.
type AlertUseCase struct {
	txRunner  TxRunner
	alertRepo repository.AlertRepository
	stockRepo repository.StockRecordRepository
	retry     *txretry.Retrier
	clock     ports.Clock
	log       *logger.Logger
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	txRunner TxRunner,
	alertRepo repository.AlertRepository,
	stockRepo repository.StockRecordRepository,
	retry *txretry.Retrier,
	clock ports.Clock,
	log *logger.Logger,
) *AlertUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if retry == nil {
		retry = txretry.New(txretry.DefaultAttempts, txretry.DefaultBackoff, log, nil)
	}
	return &AlertUseCase{txRunner: txRunner, alertRepo: alertRepo, stockRepo: stockRepo, retry: retry, clock: clock, log: log}
}

// ListUnacknowledged devuelve las alertas pendientes de un registro de stock.
func (uc *AlertUseCase) ListUnacknowledged(ctx context.Context, stockRecordID string) ([]*entity.Alert, error) {
	record, err := uc.stockRepo.GetByID(ctx, stockRecordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return uc.alertRepo.ListUnacknowledgedByStockRecord(ctx, stockRecordID)
}

// Get lectura simple de una alerta.
func (uc *AlertUseCase) Get(ctx context.Context, alertID string) (*entity.Alert, error) {
	alert, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	return alert, nil
}

// Acknowledge marca la alerta como leída. Reconocer una alerta ya reconocida es idempotente.
func (uc *AlertUseCase) Acknowledge(ctx context.Context, alertID string) (*entity.Alert, error) {
	var out *entity.Alert
	err := uc.retry.Do(ctx, "acknowledge_alert", func(ctx context.Context) error {
		return uc.txRunner.RunInventory(ctx, func(
			_ repository.StockRecordRepository,
			_ repository.MovementRepository,
			alertRepo repository.AlertRepository,
		) error {
			alert, err := alertRepo.GetForUpdate(ctx, alertID)
			if err != nil {
				return err
			}
			if alert == nil {
				return domain.ErrNotFound
			}
			if !alert.Acknowledged {
				now := uc.clock.Now()
				if err := alertRepo.Acknowledge(ctx, alert.ID, now); err != nil {
					return err
				}
				alert.Acknowledged = true
				alert.AcknowledgedAt = &now
			}
			out = alert
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("alert_id", out.ID).Msg("alerta reconocida")
	return out, nil
}

// AcknowledgeAll marca como leídas todas las alertas pendientes (siteID vacío = todas las fincas).
func (uc *AlertUseCase) AcknowledgeAll(ctx context.Context, siteID string) (int64, error) {
	var n int64
	err := uc.retry.Do(ctx, "acknowledge_all_alerts", func(ctx context.Context) error {
		return uc.txRunner.RunInventory(ctx, func(
			_ repository.StockRecordRepository,
			_ repository.MovementRepository,
			alertRepo repository.AlertRepository,
		) error {
			var err error
			n, err = alertRepo.AcknowledgeAll(ctx, siteID, uc.clock.Now())
			return err
		})
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Str("site_id", siteID).Int64("count", n).Msg("alertas reconocidas en bloque")
	return n, nil
}
