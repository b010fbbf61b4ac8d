// Package backend arma la persistencia elegida por configuración (PostgreSQL o memoria)
// detrás de los mismos puertos de repositorio y transacción.
package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
	"github.com/jhoicas/bananera-ledger/internal/application/loan"
	"github.com/jhoicas/bananera-ledger/internal/application/payroll"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
	"github.com/jhoicas/bananera-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/bananera-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/bananera-ledger/pkg/config"
)

// TxRunner reúne los runners transaccionales de los tres motores.
type TxRunner interface {
	inventory.TxRunner
	payroll.TxRunner
	loan.TxRunner
}

// Backend repositorios de lectura directa más el runner transaccional.
type Backend struct {
	Driver       string
	Tx           TxRunner
	StockRecords repository.StockRecordRepository
	Movements    repository.MovementRepository
	Alerts       repository.AlertRepository
	Payroll      repository.PayrollRepository
	Loans        repository.LoanRepository

	close func()
}

// Open construye el backend según cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		s := memory.New(memory.WithLockTimeout(cfg.DB.LockTimeout))
		return &Backend{
			Driver:       cfg.Store.Driver,
			Tx:           s,
			StockRecords: s.StockRecords(),
			Movements:    s.Movements(),
			Alerts:       s.Alerts(),
			Payroll:      s.Payroll(),
			Loans:        s.Loans(),
		}, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:       cfg.Store.Driver,
			Tx:           postgres.NewTxRunner(pool, cfg.DB.LockTimeout),
			StockRecords: postgres.NewStockRecordRepository(pool),
			Movements:    postgres.NewMovementRepository(pool),
			Alerts:       postgres.NewAlertRepository(pool),
			Payroll:      postgres.NewPayrollRepository(pool),
			Loans:        postgres.NewLoanRepository(pool),
			close:        pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("backend: driver desconocido %q", cfg.Store.Driver)
	}
}

// Close libera el pool de conexiones, si lo hay.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}
