package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bananera-ledger/internal/domain"
)

func TestMapTxError(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("update stock: %w", &pgconn.PgError{Code: code})
	}
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"serialización", wrap("40001"), domain.ErrConcurrentModification},
		{"deadlock", wrap("40P01"), domain.ErrConcurrentModification},
		{"lock_timeout", wrap("55P03"), domain.ErrConcurrentModification},
		{"check", wrap("23514"), domain.ErrInvalidInput},
		{"dominio intacto", domain.ErrInsufficientStock, domain.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapTxError(tt.err), tt.want)
		})
	}
	assert.NoError(t, mapTxError(nil))

	other := errors.New("conexión cerrada")
	assert.Same(t, other, mapTxError(other))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}
