package txretry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/application/txretry"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDo_ReintentaSoloConflictos(t *testing.T) {
	r := txretry.New(3, time.Millisecond, nil, nil)

	calls := 0
	err := r.Do(context.Background(), "test", func(context.Context) error {
		calls++
		if calls < 3 {
			return domain.ErrConcurrentModification
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_AgotaIntentos(t *testing.T) {
	r := txretry.New(3, time.Millisecond, nil, nil)

	calls := 0
	err := r.Do(context.Background(), "test", func(context.Context) error {
		calls++
		return domain.ErrConcurrentModification
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Equal(t, 3, calls, "3 intentos en total")
}

func TestDo_ErrorTerminalNoSeReintenta(t *testing.T) {
	r := txretry.New(3, time.Millisecond, nil, nil)

	calls := 0
	boom := errors.New("boom")
	err := r.Do(context.Background(), "test", func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)

	calls = 0
	err = r.Do(context.Background(), "test", func(context.Context) error {
		calls++
		return domain.ErrInsufficientStock
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, calls)
}
