// Package loan implementa el motor de préstamos a empleados.
package loan

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/application/txretry"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	domainloan "github.com/jhoicas/bananera-ledger/internal/domain/loan"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
	"github.com/jhoicas/bananera-ledger/pkg/logger"
	"github.com/shopspring/decimal"
)

// Resultados de pago para métricas.
const (
	PaymentOutcomeApplied  = "applied"
	PaymentOutcomeSettled  = "settled"
	PaymentOutcomeRejected = "rejected"
)

// UseCase casos de uso de préstamos.
type UseCase struct {
	txRunner TxRunner
	repo     repository.LoanRepository
	retry    *txretry.Retrier
	clock    ports.Clock
	metrics  ports.LedgerMetrics
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. retry, clock, metrics y log admiten nil.
func NewUseCase(
	txRunner TxRunner,
	repo repository.LoanRepository,
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

// CreateInput entrada para otorgar un préstamo.
type CreateInput struct {
	EmployeeID       string
	Principal        decimal.Decimal
	InstallmentCount int
	Reason           string
}

// Create registra el préstamo activo, sin pagos.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Loan, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return nil, fmt.Errorf("%w: empleado obligatorio", domain.ErrInvalidInput)
	}
	now := uc.clock.Now()
	l := &entity.Loan{
		ID:               uuid.New().String(),
		EmployeeID:       in.EmployeeID,
		Principal:        in.Principal,
		AmountPaid:       decimal.Zero,
		InstallmentCount: in.InstallmentCount,
		Status:           entity.LoanStatusActive,
		Reason:           in.Reason,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := domainloan.Validate(*l); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("loan_id", l.ID).
		Str("employee_id", l.EmployeeID).
		Str("principal", l.Principal.StringFixed(2)).
		Int("installment_count", l.InstallmentCount).
		Msg("préstamo otorgado")
	return l, nil
}

// Get lectura simple.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Loan, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// ListByEmployee préstamos del empleado, el más reciente primero.
func (uc *UseCase) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Loan, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, fmt.Errorf("%w: empleado obligatorio", domain.ErrInvalidInput)
	}
	return uc.repo.ListByEmployee(ctx, employeeID)
}

// RegisterPayment abona al préstamo. Un pago que supere el saldo se rechaza con
// ErrOverpaymentRejected y el préstamo queda intacto. installmentsPaid nil conserva el avance.
func (uc *UseCase) RegisterPayment(ctx context.Context, id string, amount decimal.Decimal, installmentsPaid *int) (*entity.Loan, error) {
	l, err := uc.mutate(ctx, "register_loan_payment", id, func(current entity.Loan) (entity.Loan, error) {
		return domainloan.ApplyPayment(current, amount, installmentsPaid)
	})
	if err != nil {
		uc.metrics.LoanPayment(PaymentOutcomeRejected)
		return nil, err
	}
	outcome := PaymentOutcomeApplied
	if l.Status == entity.LoanStatusPaid {
		outcome = PaymentOutcomeSettled
	}
	uc.metrics.LoanPayment(outcome)
	uc.log.Info().
		Str("loan_id", l.ID).
		Str("amount", amount.StringFixed(2)).
		Str("amount_paid", l.AmountPaid.StringFixed(2)).
		Str("status", l.Status).
		Msg("pago de préstamo registrado")
	return l, nil
}

// UpdateInstallments registra el avance de cuotas sin mover montos.
func (uc *UseCase) UpdateInstallments(ctx context.Context, id string, installmentsPaid int) (*entity.Loan, error) {
	l, err := uc.mutate(ctx, "update_loan_installments", id, func(current entity.Loan) (entity.Loan, error) {
		return domainloan.SetInstallments(current, installmentsPaid)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("loan_id", l.ID).Int("installments_paid", l.InstallmentsPaid).Msg("cuotas actualizadas")
	return l, nil
}

func (uc *UseCase) mutate(
	ctx context.Context,
	operation, id string,
	fn func(current entity.Loan) (entity.Loan, error),
) (*entity.Loan, error) {
	var out *entity.Loan
	err := uc.retry.Do(ctx, operation, func(ctx context.Context) error {
		return uc.txRunner.RunLoans(ctx, func(repo repository.LoanRepository) error {
			current, err := repo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if current == nil {
				return domain.ErrNotFound
			}
			next, err := fn(*current)
			if err != nil {
				return err
			}
			next.UpdatedAt = uc.clock.Now()
			if err := repo.Update(ctx, &next); err != nil {
				return err
			}
			out = &next
			return nil
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("loan_id", id).Str("operation", operation).Msg("operación de préstamo rechazada")
		return nil, err
	}
	return out, nil
}
