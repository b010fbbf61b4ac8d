package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bananera-ledger/pkg/config"
)

func TestNewPoolConfig(t *testing.T) {
	base := config.DBConfig{Host: "db.finca.local", Port: 5432, User: "ledger", DBName: "bananera", SSLMode: "disable"}

	t.Run("valores por defecto", func(t *testing.T) {
		pc, err := newPoolConfig(base)
		require.NoError(t, err)
		assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
		assert.EqualValues(t, defaultMinConns, pc.MinConns)
		assert.Equal(t, "db.finca.local", pc.ConnConfig.Host)
		assert.Equal(t, "bananera-ledger", pc.ConnConfig.RuntimeParams["application_name"])
		assert.NotNil(t, pc.AfterConnect)
	})

	t.Run("límites de configuración", func(t *testing.T) {
		cfg := base
		cfg.MaxConns = 3
		cfg.MinConns = 8
		pc, err := newPoolConfig(cfg)
		require.NoError(t, err)
		assert.EqualValues(t, 3, pc.MaxConns)
		assert.EqualValues(t, 3, pc.MinConns, "el mínimo no supera al máximo")
	})

	t.Run("DATABASE_URL tiene prioridad", func(t *testing.T) {
		cfg := base
		cfg.DatabaseURL = "postgres://app@pg.example:6543/ledger?application_name=ledgerctl"
		pc, err := newPoolConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, "pg.example", pc.ConnConfig.Host)
		assert.EqualValues(t, 6543, pc.ConnConfig.Port)
		assert.Equal(t, "ledgerctl", pc.ConnConfig.RuntimeParams["application_name"])
	})

	t.Run("DSN inválido", func(t *testing.T) {
		cfg := base
		cfg.DatabaseURL = "postgres://%zz"
		_, err := newPoolConfig(cfg)
		assert.Error(t, err)
	})
}

func TestResolveIPv4_Literales(t *testing.T) {
	ip, err := resolveIPv4(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ip)

	_, err = resolveIPv4(context.Background(), "::1")
	assert.Error(t, err)
}
