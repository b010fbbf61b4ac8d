// Package payroll implementa el motor de roles de pago: alta, ajuste de montos
// y la máquina de estados pendiente → aprobado → pagado.
package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/application/txretry"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	domainpayroll "github.com/jhoicas/bananera-ledger/internal/domain/payroll"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
	"github.com/jhoicas/bananera-ledger/pkg/logger"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso del rol de pago.
type UseCase struct {
	txRunner TxRunner
	repo     repository.PayrollRepository
	retry    *txretry.Retrier
	clock    ports.Clock
	metrics  ports.LedgerMetrics
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. retry, clock, metrics y log admiten nil.
func NewUseCase(
	txRunner TxRunner,
	repo repository.PayrollRepository,
	retry *txretry.Retrier,
	clock ports.Clock,
	metrics ports.LedgerMetrics,
	log *logger.Logger,
) *UseCase {
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
	return &UseCase{txRunner: txRunner, repo: repo, retry: retry, clock: clock, metrics: metrics, log: log}
}

// CreateInput entrada para registrar un rol de pago.
type CreateInput struct {
	EmployeeID  string
	PayDate     time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	BaseSalary  decimal.Decimal
	Overtime    decimal.Decimal
	Bonuses     decimal.Decimal
	Deductions  decimal.Decimal
	Notes       string
}

// AmountsPatch cambios parciales de montos; nil = sin cambio.
type AmountsPatch struct {
	BaseSalary *decimal.Decimal
	Overtime   *decimal.Decimal
	Bonuses    *decimal.Decimal
	Deductions *decimal.Decimal
	Notes      *string
}

// Create calcula el total y registra el rol en estado pendiente.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.PayrollLine, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return nil, fmt.Errorf("%w: empleado obligatorio", domain.ErrInvalidPayrollLine)
	}
	if in.PeriodStart.After(in.PeriodEnd) {
		return nil, fmt.Errorf("%w: el inicio del período es posterior al fin", domain.ErrInvalidPayrollLine)
	}
	now := uc.clock.Now()
	line := &entity.PayrollLine{
		ID:          uuid.New().String(),
		EmployeeID:  in.EmployeeID,
		PayDate:     in.PayDate,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		BaseSalary:  in.BaseSalary,
		Overtime:    in.Overtime,
		Bonuses:     in.Bonuses,
		Deductions:  in.Deductions,
		Status:      entity.PayrollStatusPending,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := domainpayroll.Recompute(line); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, line); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("payroll_id", line.ID).
		Str("employee_id", line.EmployeeID).
		Str("total_payable", line.TotalPayable.StringFixed(2)).
		Msg("rol de pago creado")
	return line, nil
}

// Get lectura simple.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.PayrollLine, error) {
	line, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	return line, nil
}

// ListByEmployee historial de pagos del empleado, el más reciente primero.
func (uc *UseCase) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.PayrollLine, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, fmt.Errorf("%w: empleado obligatorio", domain.ErrInvalidInput)
	}
	return uc.repo.ListByEmployee(ctx, employeeID)
}

// UpdateAmounts ajusta montos de un rol pendiente y recalcula el total.
// Un rol aprobado o pagado debe revertirse antes de editarse.
func (uc *UseCase) UpdateAmounts(ctx context.Context, id string, patch AmountsPatch) (*entity.PayrollLine, error) {
	return uc.mutate(ctx, "update_payroll_amounts", id, func(line *entity.PayrollLine) error {
		if line.Status != entity.PayrollStatusPending {
			return fmt.Errorf("%w: solo se editan roles pendientes (estado %s)", domain.ErrInvalidStateTransition, line.Status)
		}
		if patch.BaseSalary != nil {
			line.BaseSalary = *patch.BaseSalary
		}
		if patch.Overtime != nil {
			line.Overtime = *patch.Overtime
		}
		if patch.Bonuses != nil {
			line.Bonuses = *patch.Bonuses
		}
		if patch.Deductions != nil {
			line.Deductions = *patch.Deductions
		}
		if patch.Notes != nil {
			line.Notes = *patch.Notes
		}
		return domainpayroll.Recompute(line)
	})
}

// Approve pendiente → aprobado.
func (uc *UseCase) Approve(ctx context.Context, id string) (*entity.PayrollLine, error) {
	return uc.transition(ctx, "approve_payroll", id, domainpayroll.Approve)
}

// MarkPaid pendiente|aprobado → pagado.
func (uc *UseCase) MarkPaid(ctx context.Context, id string) (*entity.PayrollLine, error) {
	return uc.transition(ctx, "pay_payroll", id, domainpayroll.MarkPaid)
}

// Revert aprobado|pagado → pendiente.
func (uc *UseCase) Revert(ctx context.Context, id string) (*entity.PayrollLine, error) {
	return uc.transition(ctx, "revert_payroll", id, domainpayroll.Revert)
}

func (uc *UseCase) transition(
	ctx context.Context,
	operation, id string,
	next func(status string) (string, error),
) (*entity.PayrollLine, error) {
	var from string
	line, err := uc.mutate(ctx, operation, id, func(line *entity.PayrollLine) error {
		status, err := next(line.Status)
		if err != nil {
			return err
		}
		from = line.Status
		line.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PayrollTransition(line.Status)
	uc.log.Info().
		Str("payroll_id", line.ID).
		Str("from", from).
		Str("to", line.Status).
		Msg("rol de pago actualizado")
	return line, nil
}

// mutate bloquea el rol, aplica fn sobre una copia y persiste solo si fn no falla.
func (uc *UseCase) mutate(
	ctx context.Context,
	operation, id string,
	fn func(line *entity.PayrollLine) error,
) (*entity.PayrollLine, error) {
	var out *entity.PayrollLine
	err := uc.retry.Do(ctx, operation, func(ctx context.Context) error {
		return uc.txRunner.RunPayroll(ctx, func(repo repository.PayrollRepository) error {
			current, err := repo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if current == nil {
				return domain.ErrNotFound
			}
			line := *current
			if err := fn(&line); err != nil {
				return err
			}
			line.UpdatedAt = uc.clock.Now()
			if err := repo.Update(ctx, &line); err != nil {
				return err
			}
			out = &line
			return nil
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("payroll_id", id).Str("operation", operation).Msg("operación de rol rechazada")
		return nil, err
	}
	return out, nil
}
