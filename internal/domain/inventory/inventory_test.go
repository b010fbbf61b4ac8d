package inventory_test

import (
	"testing"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClassifyLevel(t *testing.T) {
	cases := []struct {
		name      string
		qty       string
		threshold string
		want      entity.StockLevel
	}{
		{"sobre el umbral", "10", "10", entity.StockLevelNormal},
		{"bajo el umbral", "5", "10", entity.StockLevelLow},
		{"justo en la mitad no es crítico", "5", "10", entity.StockLevelLow},
		{"bajo la mitad es crítico", "4.99", "10", entity.StockLevelCritical},
		{"stock cero", "0", "10", entity.StockLevelCritical},
		{"umbral cero nunca alerta", "0", "0", entity.StockLevelNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.ClassifyLevel(dec(tc.qty), dec(tc.threshold)))
		})
	}
}

func TestApplyDelta(t *testing.T) {
	qty, err := inventory.ApplyDelta(dec("10"), entity.MovementKindInflow, dec("2.5"))
	require.NoError(t, err)
	assert.True(t, qty.Equal(dec("12.5")))

	qty, err = inventory.ApplyDelta(dec("10"), entity.MovementKindOutflow, dec("10"))
	require.NoError(t, err)
	assert.True(t, qty.IsZero(), "una salida igual al stock deja cero")

	_, err = inventory.ApplyDelta(dec("10"), entity.MovementKindOutflow, dec("10.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.ApplyDelta(dec("10"), entity.MovementKindInflow, dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ApplyDelta(dec("10"), "transfer", dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplay_ReconstruyeCantidad(t *testing.T) {
	movs := []*entity.MovementEvent{
		{Kind: entity.MovementKindInflow, Amount: dec("100")},
		{Kind: entity.MovementKindOutflow, Amount: dec("30")},
		{Kind: entity.MovementKindInflow, Amount: dec("0.5")},
		{Kind: entity.MovementKindOutflow, Amount: dec("70.5")},
	}
	assert.True(t, inventory.Replay(movs).IsZero())
	assert.True(t, inventory.Replay(nil).IsZero())
}

func TestEvaluateAlert(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	record := entity.StockRecord{
		ID: "rec-1", SiteID: "finca-1", Name: "cinta azul marcadora", Unit: "rollo",
		QuantityOnHand: dec("5"), ReorderThreshold: dec("10"),
	}

	t.Run("stock bajo crea alerta media", func(t *testing.T) {
		a := inventory.EvaluateAlert(record, nil, now)
		require.NotNil(t, a)
		assert.Equal(t, entity.AlertCategoryStockLow, a.Category)
		assert.Equal(t, entity.AlertSeverityMedium, a.Severity)
		assert.Equal(t, "Stock bajo: Cinta Azul Marcadora", a.Title)
		assert.Equal(t, "finca-1", a.SiteID)
		assert.Equal(t, now, a.CreatedAt)
		assert.Empty(t, a.ID)
	})

	t.Run("deduplica contra alerta pendiente de la misma categoría", func(t *testing.T) {
		open := []*entity.Alert{{StockRecordID: "rec-1", Category: entity.AlertCategoryStockLow}}
		assert.Nil(t, inventory.EvaluateAlert(record, open, now))
	})

	t.Run("alerta reconocida no bloquea una nueva", func(t *testing.T) {
		acked := []*entity.Alert{{StockRecordID: "rec-1", Category: entity.AlertCategoryStockLow, Acknowledged: true}}
		assert.NotNil(t, inventory.EvaluateAlert(record, acked, now))
	})

	t.Run("caída a crítico escala aunque haya alerta baja pendiente", func(t *testing.T) {
		crit := record
		crit.QuantityOnHand = dec("2")
		open := []*entity.Alert{{StockRecordID: "rec-1", Category: entity.AlertCategoryStockLow}}
		a := inventory.EvaluateAlert(crit, open, now)
		require.NotNil(t, a)
		assert.Equal(t, entity.AlertCategoryStockCritical, a.Category)
		assert.Equal(t, entity.AlertSeverityCritical, a.Severity)
	})

	t.Run("stock normal no alerta", func(t *testing.T) {
		ok := record
		ok.QuantityOnHand = dec("10")
		assert.Nil(t, inventory.EvaluateAlert(ok, nil, now))
	})
}

func TestSuggestedOrderQty(t *testing.T) {
	withMax := entity.StockRecord{QuantityOnHand: dec("15"), ReorderThreshold: dec("100"), MaxCapacity: dec("300")}
	assert.True(t, inventory.SuggestedOrderQty(withMax).Equal(dec("285")))

	noMax := entity.StockRecord{QuantityOnHand: dec("8"), ReorderThreshold: dec("50")}
	assert.True(t, inventory.IdealStock(noMax).Equal(dec("75")))
	assert.True(t, inventory.SuggestedOrderQty(noMax).Equal(dec("67")))

	full := entity.StockRecord{QuantityOnHand: dec("400"), ReorderThreshold: dec("100"), MaxCapacity: dec("300")}
	assert.True(t, inventory.SuggestedOrderQty(full).IsZero())
}

func TestOrderReceived(t *testing.T) {
	rec := entity.StockRecord{QuantityOnHand: dec("4"), ReorderThreshold: dec("10"), OrderPlaced: true}
	assert.False(t, inventory.OrderReceived(rec))

	rec.QuantityOnHand = dec("10")
	assert.True(t, inventory.OrderReceived(rec))

	rec.OrderPlaced = false
	assert.False(t, inventory.OrderReceived(rec))
}
