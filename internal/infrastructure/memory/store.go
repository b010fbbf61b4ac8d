// Package memory implementa un store transaccional en memoria con los mismos contratos
// que el adaptador Postgres: bloqueo por entidad con espera acotada, escrituras
// diferidas hasta el commit y rollback implícito si la función falla.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
	"github.com/jhoicas/bananera-ledger/internal/application/loan"
	"github.com/jhoicas/bananera-ledger/internal/application/payroll"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

// DefaultLockTimeout espera máxima por el bloqueo de una entidad.
const DefaultLockTimeout = 5 * time.Second

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ payroll.TxRunner   = (*Store)(nil)
	_ loan.TxRunner      = (*Store)(nil)
)

// Store guarda el estado confirmado. Los repos sin tx leen y escriben directo (autocommit).
type Store struct {
	mu sync.Mutex

	stock     map[string]entity.StockRecord
	movements []entity.MovementEvent
	alerts    map[string]entity.Alert
	alertSeq  map[string]int64
	payroll   map[string]entity.PayrollLine
	loans     map[string]entity.Loan

	seq         int64
	locks       *lockTable
	lockTimeout time.Duration
}

// Option configura el Store.
type Option func(*Store)

// WithLockTimeout cambia la espera máxima por un bloqueo.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// New crea un store vacío.
func New(opts ...Option) *Store {
	s := &Store{
		stock:       make(map[string]entity.StockRecord),
		alerts:      make(map[string]entity.Alert),
		alertSeq:    make(map[string]int64),
		payroll:     make(map[string]entity.PayrollLine),
		loans:       make(map[string]entity.Loan),
		locks:       newLockTable(),
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StockRecords repositorio en modo autocommit.
func (s *Store) StockRecords() repository.StockRecordRepository { return &stockRecordRepo{s: s} }

// Movements repositorio en modo autocommit.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }

// Alerts repositorio en modo autocommit.
func (s *Store) Alerts() repository.AlertRepository { return &alertRepo{s: s} }

// Payroll repositorio en modo autocommit.
func (s *Store) Payroll() repository.PayrollRepository { return &payrollRepo{s: s} }

// Loans repositorio en modo autocommit.
func (s *Store) Loans() repository.LoanRepository { return &loanRepo{s: s} }

// RunInventory implementa inventory.TxRunner.
func (s *Store) RunInventory(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	return s.run(ctx, func(t *tx) error {
		return fn(&stockRecordRepo{s: s, t: t}, &movementRepo{s: s, t: t}, &alertRepo{s: s, t: t})
	})
}

// RunPayroll implementa payroll.TxRunner.
func (s *Store) RunPayroll(ctx context.Context, fn func(repo repository.PayrollRepository) error) error {
	return s.run(ctx, func(t *tx) error {
		return fn(&payrollRepo{s: s, t: t})
	})
}

// RunLoans implementa loan.TxRunner.
func (s *Store) RunLoans(ctx context.Context, fn func(repo repository.LoanRepository) error) error {
	return s.run(ctx, func(t *tx) error {
		return fn(&loanRepo{s: s, t: t})
	})
}

func (s *Store) run(ctx context.Context, fn func(t *tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := newTx(s)
	defer t.release()
	if err := fn(t); err != nil {
		return err
	}
	s.commit(t)
	return nil
}

func (s *Store) nextSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// commit aplica las escrituras diferidas de t en un solo paso.
func (s *Store) commit(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range t.stock {
		s.stock[id] = rec
	}
	s.movements = append(s.movements, t.movements...)
	for id, a := range t.alerts {
		s.alerts[id] = a
	}
	for id, seq := range t.alertSeq {
		s.alertSeq[id] = seq
	}
	for id, line := range t.payroll {
		s.payroll[id] = line
	}
	for id, l := range t.loans {
		s.loans[id] = l
	}
}

// tx acumula escrituras y los bloqueos tomados. Lo usa una sola goroutine.
type tx struct {
	s    *Store
	held []string

	stock     map[string]entity.StockRecord
	movements []entity.MovementEvent
	alerts    map[string]entity.Alert
	alertSeq  map[string]int64
	payroll   map[string]entity.PayrollLine
	loans     map[string]entity.Loan
}

func newTx(s *Store) *tx {
	return &tx{
		s:        s,
		stock:    make(map[string]entity.StockRecord),
		alerts:   make(map[string]entity.Alert),
		alertSeq: make(map[string]int64),
		payroll:  make(map[string]entity.PayrollLine),
		loans:    make(map[string]entity.Loan),
	}
}

// lock toma el bloqueo de key hasta el fin de la tx (reentrante).
func (t *tx) lock(ctx context.Context, key string) error {
	for _, k := range t.held {
		if k == key {
			return nil
		}
	}
	if err := t.s.locks.acquire(ctx, key, t.s.lockTimeout); err != nil {
		return err
	}
	t.held = append(t.held, key)
	return nil
}

func (t *tx) release() {
	for _, k := range t.held {
		t.s.locks.release(k)
	}
	t.held = nil
}
