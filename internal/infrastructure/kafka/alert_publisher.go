// Package kafka publica las alertas de stock confirmadas como eventos en Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/pkg/logger"
)

// EventTypeAlertRaised tipo de evento publicado por cada alerta nueva.
const EventTypeAlertRaised = "inventory.alert_raised"

var _ ports.AlertNotifier = (*AlertPublisher)(nil)

// AlertRaisedEvent cuerpo JSON del mensaje.
type AlertRaisedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	AlertID       string    `json:"alert_id"`
	StockRecordID string    `json:"stock_record_id"`
	SiteID        string    `json:"site_id,omitempty"`
	Category      string    `json:"category"`
	Severity      string    `json:"severity"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	RaisedAt      time.Time `json:"raised_at"`
}

// AlertPublisher implementa ports.AlertNotifier sobre un SyncProducer de sarama.
type AlertPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewProducerConfig configuración del productor: acks de todas las réplicas y reintentos acotados.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000
	return config
}

// NewAlertPublisher conecta con los brokers y crea el productor.
func NewAlertPublisher(brokers []string, topic string, log *logger.Logger) (*AlertPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("crear productor kafka: %w", err)
	}
	if log != nil {
		log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("publicador de alertas kafka inicializado")
	}
	return NewAlertPublisherWithProducer(producer, topic, log), nil
}

// NewAlertPublisherWithProducer usa un productor ya construido (tests con sarama/mocks).
func NewAlertPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *AlertPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertPublisher{producer: producer, topic: topic, log: log}
}

// NotifyAlert publica la alerta con clave = registro de stock, así los eventos de un mismo
// insumo caen en la misma partición y conservan su orden.
func (p *AlertPublisher) NotifyAlert(ctx context.Context, alert *entity.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	event := AlertRaisedEvent{
		EventID:       "evt_" + alert.ID,
		EventType:     EventTypeAlertRaised,
		AlertID:       alert.ID,
		StockRecordID: alert.StockRecordID,
		SiteID:        alert.SiteID,
		Category:      alert.Category,
		Severity:      alert.Severity,
		Title:         alert.Title,
		Message:       alert.Message,
		RaisedAt:      alert.CreatedAt,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(alert.StockRecordID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(EventTypeAlertRaised)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).Str("topic", p.topic).Str("alert_id", alert.ID).Msg("fallo al publicar alerta")
		return fmt.Errorf("enviar mensaje a kafka: %w", err)
	}
	p.log.Debug().
		Str("alert_id", alert.ID).
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("alerta publicada")
	return nil
}

// Close cierra el productor.
func (p *AlertPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
