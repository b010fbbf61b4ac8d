package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bananera-ledger/pkg/logger"
)

func TestNewWithWriter_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "warn")

	log.Info().Msg("descartado")
	log.Warn().Str("stock_record_id", "r-1").Msg("movimiento rechazado")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "r-1", entry["stock_record_id"])
	assert.Equal(t, "movimiento rechazado", entry["message"])
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(&buf, "").Component("kafka").Info().Msg("alerta publicada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kafka", entry["component"])
	assert.Equal(t, "info", entry["level"])
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("nada") })
}
