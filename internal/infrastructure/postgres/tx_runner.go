package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
	"github.com/jhoicas/bananera-ledger/internal/application/loan"
	"github.com/jhoicas/bananera-ledger/internal/application/payroll"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

// Ensure TxRunner implements los runners de cada motor.
var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ payroll.TxRunner   = (*TxRunner)(nil)
	_ loan.TxRunner      = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Cada tx fija lock_timeout: la espera por un SELECT ... FOR UPDATE es acotada.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout <= 0 deja el valor del servidor.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// RunInventory implementa inventory.TxRunner.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockRecordRepository(tx), NewMovementRepository(tx), NewAlertRepository(tx))
	})
}

// RunPayroll implementa payroll.TxRunner.
func (r *TxRunner) RunPayroll(ctx context.Context, fn func(repo repository.PayrollRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewPayrollRepository(tx))
	})
}

// RunLoans implementa loan.TxRunner.
func (r *TxRunner) RunLoans(ctx context.Context, fn func(repo repository.LoanRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewLoanRepository(tx))
	})
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
// Los conflictos de concurrencia salen como domain.ErrConcurrentModification.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		// SET no admite parámetros; el valor es un entero controlado por config.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(tx); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
