package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/application/txretry"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/inventory"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
	"github.com/jhoicas/bananera-ledger/pkg/logger"
	"github.com/shopspring/decimal"
)

// LedgerUseCase es el ledger de movimientos: único mutador autorizado de la cantidad de un
// registro de stock. Cada movimiento bloquea la fila (SELECT FOR UPDATE), persiste el evento,
// actualiza el snapshot y evalúa alertas dentro de la misma transacción.
type LedgerUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRecordRepository
	movRepo   repository.MovementRepository
	evaluator *AlertEvaluator
	retry     *txretry.Retrier
	clock     ports.Clock
	notifier  ports.AlertNotifier
	metrics   ports.LedgerMetrics
	log       *logger.Logger
}

// NewLedgerUseCase construye el caso de uso. Todo salvo txRunner y los repos admite nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	retry *txretry.Retrier,
	clock ports.Clock,
	notifier ports.AlertNotifier,
	metrics ports.LedgerMetrics,
	log *logger.Logger,
) *LedgerUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if retry == nil {
		retry = txretry.New(txretry.DefaultAttempts, txretry.DefaultBackoff, log, metrics)
	}
	return &LedgerUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		movRepo:   movRepo,
		evaluator: NewAlertEvaluator(),
		retry:     retry,
		clock:     clock,
		notifier:  notifier,
		metrics:   metrics,
		log:       log,
	}
}

// MovementInput entrada para aplicar un movimiento de inventario.
type MovementInput struct {
	StockRecordID string
	Kind          string // inflow | outflow
	Amount        decimal.Decimal
	ActorID       string // opcional
	Note          string
}

// MovementResult resultado de un movimiento confirmado.
type MovementResult struct {
	Record   *entity.StockRecord
	Movement *entity.MovementEvent
	Alert    *entity.Alert // nil si no se generó alerta
}

// ApplyMovement valida, bloquea el registro, aplica el movimiento y evalúa alertas de forma atómica.
// Una salida mayor al stock falla con ErrInsufficientStock sin persistir nada.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if strings.TrimSpace(in.StockRecordID) == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.MovementKindInflow && in.Kind != entity.MovementKindOutflow {
		return nil, domain.ErrInvalidInput
	}

	var res *MovementResult
	err := uc.retry.Do(ctx, "apply_movement", func(ctx context.Context) error {
		res = nil
		return uc.txRunner.RunInventory(ctx, func(
			stockRepo repository.StockRecordRepository,
			movRepo repository.MovementRepository,
			alertRepo repository.AlertRepository,
		) error {
			r, err := uc.applyInTx(ctx, stockRepo, movRepo, alertRepo, in)
			if err != nil {
				return err
			}
			res = r
			return nil
		})
	})
	if err != nil {
		uc.metrics.MovementRejected(domain.Code(err))
		uc.log.Warn().Err(err).
			Str("stock_record_id", in.StockRecordID).
			Str("kind", in.Kind).
			Str("amount", in.Amount.String()).
			Msg("movimiento rechazado")
		return nil, err
	}

	uc.metrics.MovementApplied(in.Kind)
	uc.log.Info().
		Str("stock_record_id", res.Record.ID).
		Str("movement_id", res.Movement.ID).
		Str("kind", in.Kind).
		Str("amount", in.Amount.String()).
		Str("quantity_on_hand", res.Record.QuantityOnHand.String()).
		Msg("movimiento aplicado")

	if res.Alert != nil {
		uc.metrics.AlertRaised(res.Alert.Severity)
		uc.log.Info().
			Str("alert_id", res.Alert.ID).
			Str("stock_record_id", res.Record.ID).
			Str("severity", res.Alert.Severity).
			Msg("alerta de stock generada")
		if err := uc.notifier.NotifyAlert(ctx, res.Alert); err != nil {
			uc.log.Error().Err(err).Str("alert_id", res.Alert.ID).Msg("no se pudo publicar la alerta")
		}
	}
	return res, nil
}

// applyInTx es el núcleo transaccional: debe ejecutarse con repos atados a la misma tx.
func (uc *LedgerUseCase) applyInTx(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
	in MovementInput,
) (*MovementResult, error) {
	// Bloquea la fila del registro para serializar movimientos concurrentes
	record, err := stockRepo.GetForUpdate(ctx, in.StockRecordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}

	newQty, err := inventory.ApplyDelta(record.QuantityOnHand, in.Kind, in.Amount)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	mov := &entity.MovementEvent{
		ID:            uuid.New().String(),
		StockRecordID: record.ID,
		SiteID:        record.SiteID,
		Kind:          in.Kind,
		Amount:        in.Amount,
		OccurredAt:    now,
		ActorID:       in.ActorID,
		Note:          in.Note,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := stockRepo.UpdateQuantity(ctx, record.ID, newQty, now); err != nil {
		return nil, err
	}
	record.QuantityOnHand = newQty
	record.UpdatedAt = now
	if inventory.OrderReceived(*record) {
		if err := stockRepo.SetOrderPlaced(ctx, record.ID, false, now); err != nil {
			return nil, err
		}
		record.OrderPlaced = false
	}

	alert, err := uc.evaluator.Evaluate(ctx, alertRepo, record, now)
	if err != nil {
		return nil, err
	}
	return &MovementResult{Record: record, Movement: mov, Alert: alert}, nil
}

// MarkOrderPlaced registra que se generó el pedido de compra del insumo. Es idempotente;
// la marca se limpia sola cuando una entrada devuelve el stock al umbral de reorden.
func (uc *LedgerUseCase) MarkOrderPlaced(ctx context.Context, id string) (*entity.StockRecord, error) {
	var out *entity.StockRecord
	err := uc.retry.Do(ctx, "mark_order_placed", func(ctx context.Context) error {
		return uc.txRunner.RunInventory(ctx, func(
			stockRepo repository.StockRecordRepository,
			_ repository.MovementRepository,
			_ repository.AlertRepository,
		) error {
			record, err := stockRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if record == nil {
				return domain.ErrNotFound
			}
			if !record.OrderPlaced {
				now := uc.clock.Now()
				if err := stockRepo.SetOrderPlaced(ctx, record.ID, true, now); err != nil {
					return err
				}
				record.OrderPlaced = true
				record.UpdatedAt = now
			}
			out = record
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("stock_record_id", out.ID).Str("site_id", out.SiteID).Msg("pedido de compra generado")
	return out, nil
}

// CreateStockRecordInput entrada para dar de alta un insumo en una finca.
type CreateStockRecordInput struct {
	SiteID           string
	Name             string
	Category         string
	Unit             string
	InitialQuantity  decimal.Decimal
	ReorderThreshold decimal.Decimal
	MaxCapacity      decimal.Decimal
	UnitPrice        decimal.Decimal
	ActorID          string
}

// CreateStockRecord crea el registro con cantidad cero. Si hay cantidad inicial, se registra
// como entrada "stock inicial" en la misma transacción para que el replay cuadre desde el origen.
func (uc *LedgerUseCase) CreateStockRecord(ctx context.Context, in CreateStockRecordInput) (*MovementResult, error) {
	if err := validateStockRecordInput(in); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	record := &entity.StockRecord{
		ID:               uuid.New().String(),
		SiteID:           in.SiteID,
		Name:             strings.TrimSpace(in.Name),
		Category:         in.Category,
		Unit:             in.Unit,
		QuantityOnHand:   decimal.Zero,
		ReorderThreshold: in.ReorderThreshold,
		MaxCapacity:      in.MaxCapacity,
		UnitPrice:        in.UnitPrice,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var res *MovementResult
	err := uc.txRunner.RunInventory(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		if err := stockRepo.Create(ctx, record); err != nil {
			return err
		}
		if !in.InitialQuantity.IsPositive() {
			alert, err := uc.evaluator.Evaluate(ctx, alertRepo, record, now)
			if err != nil {
				return err
			}
			res = &MovementResult{Record: record, Alert: alert}
			return nil
		}
		r, err := uc.applyInTx(ctx, stockRepo, movRepo, alertRepo, MovementInput{
			StockRecordID: record.ID,
			Kind:          entity.MovementKindInflow,
			Amount:        in.InitialQuantity,
			ActorID:       in.ActorID,
			Note:          "stock inicial",
		})
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("stock_record_id", record.ID).
		Str("site_id", record.SiteID).
		Str("name", record.Name).
		Msg("registro de stock creado")
	if res.Alert != nil {
		uc.metrics.AlertRaised(res.Alert.Severity)
		if err := uc.notifier.NotifyAlert(ctx, res.Alert); err != nil {
			uc.log.Error().Err(err).Str("alert_id", res.Alert.ID).Msg("no se pudo publicar la alerta")
		}
	}
	return res, nil
}

func validateStockRecordInput(in CreateStockRecordInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return fmt.Errorf("%w: nombre y unidad son obligatorios", domain.ErrInvalidInput)
	}
	for _, v := range []decimal.Decimal{in.InitialQuantity, in.ReorderThreshold, in.MaxCapacity, in.UnitPrice} {
		if v.IsNegative() {
			return fmt.Errorf("%w: cantidades y precios no pueden ser negativos", domain.ErrInvalidInput)
		}
	}
	if in.MaxCapacity.IsPositive() && in.MaxCapacity.LessThan(in.ReorderThreshold) {
		return fmt.Errorf("%w: el stock máximo no puede ser menor al mínimo", domain.ErrInvalidInput)
	}
	return nil
}

// GetStockRecord lectura simple, sin efectos.
func (uc *LedgerUseCase) GetStockRecord(ctx context.Context, id string) (*entity.StockRecord, error) {
	record, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// ListMovements devuelve los movimientos del registro en orden de commit.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, stockRecordID string) ([]*entity.MovementEvent, error) {
	if _, err := uc.GetStockRecord(ctx, stockRecordID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByStockRecord(ctx, stockRecordID)
}
