// Package txretry reintenta transacciones que fallan por conflicto de concurrencia.
// Solo domain.ErrConcurrentModification se reintenta; cualquier otro error es terminal.
package txretry

import (
	"context"
	"errors"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/pkg/logger"
)

// Defaults: 3 intentos en total con backoff exponencial desde 20ms.
const (
	DefaultAttempts = 3
	DefaultBackoff  = 20 * time.Millisecond
)

// Retrier envuelve go-resiliency/retrier con la clasificación de errores del dominio.
type Retrier struct {
	attempts int
	backoff  time.Duration
	log      *logger.Logger
	metrics  ports.LedgerMetrics
}

// New construye el retrier. attempts < 1 se trata como 1 (sin reintentos).
func New(attempts int, backoff time.Duration, log *logger.Logger, metrics ports.LedgerMetrics) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Retrier{attempts: attempts, backoff: backoff, log: log, metrics: metrics}
}

// Do ejecuta fn hasta agotar los intentos mientras falle con ErrConcurrentModification.
// Al agotarse devuelve ErrConcurrentModification.
func (r *Retrier) Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	attempt := 0
	work := func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			r.metrics.TxRetry(operation)
			r.log.Warn().Str("operation", operation).Int("attempt", attempt).Msg("reintentando por conflicto de concurrencia")
		}
		return fn(ctx)
	}
	// Un retrier por llamada: el de go-resiliency guarda estado de jitter interno.
	rt := retrier.New(retrier.ExponentialBackoff(r.attempts-1, r.backoff), concurrencyClassifier{})
	return rt.RunCtx(ctx, work)
}

type concurrencyClassifier struct{}

func (concurrencyClassifier) Classify(err error) retrier.Action {
	switch {
	case err == nil:
		return retrier.Succeed
	case errors.Is(err, domain.ErrConcurrentModification):
		return retrier.Retry
	default:
		return retrier.Fail
	}
}
