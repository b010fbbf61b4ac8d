package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/domain"
)

// lockTable un mutex por entidad con espera acotada (equivalente a FOR UPDATE + lock_timeout).
type lockTable struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]chan struct{})}
}

func (l *lockTable) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

// acquire espera el bloqueo; al vencer timeout devuelve ErrConcurrentModification.
func (l *lockTable) acquire(ctx context.Context, key string, timeout time.Duration) error {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
		return nil
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return domain.ErrConcurrentModification
	}
}

func (l *lockTable) release(key string) {
	<-l.slot(key)
}

func stockKey(id string) string   { return "stock:" + id }
func alertKey(id string) string   { return "alert:" + id }
func payrollKey(id string) string { return "payroll:" + id }
func loanKey(id string) string    { return "loan:" + id }
