package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/infrastructure/kafka"
)

func sampleAlert() *entity.Alert {
	return &entity.Alert{
		ID:            "alert-1",
		StockRecordID: "stock-1",
		SiteID:        "finca-1",
		Category:      entity.AlertCategoryStockCritical,
		Severity:      entity.AlertSeverityCritical,
		Title:         "Stock crítico: Urea",
		Message:       "Quedan 2 kg (mínimo 10)",
		CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNotifyAlert_PublishesEvent(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev kafka.AlertRaisedEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.EventType != kafka.EventTypeAlertRaised || ev.AlertID != "alert-1" || ev.Severity != "critical" {
			return errors.New("evento inesperado")
		}
		return nil
	})

	pub := kafka.NewAlertPublisherWithProducer(producer, "bananera.inventory.alerts", nil)
	require.NoError(t, pub.NotifyAlert(context.Background(), sampleAlert()))
	require.NoError(t, pub.Close())
}

func TestNotifyAlert_ReturnsProducerError(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := kafka.NewAlertPublisherWithProducer(producer, "bananera.inventory.alerts", nil)
	err := pub.NotifyAlert(context.Background(), sampleAlert())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestNewProducerConfig(t *testing.T) {
	cfg := kafka.NewProducerConfig()
	assert.True(t, cfg.Producer.Return.Successes)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.NoError(t, cfg.Validate())
}
