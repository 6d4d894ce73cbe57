package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// KafkaPublisher публикует уведомления о смене статуса заказа в Kafka.
// Ключ сообщения - ID заказа, поэтому события одного заказа попадают в одну партицию по порядку.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
	logger Logger
}

// NewKafkaPublisher создает публикатор поверх writer
func NewKafkaPublisher(writer MessageWriter, topic string, logger Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// NewWriter создает *kafka.Writer с балансировкой по ключу сообщения
func NewWriter(brokers []string) *kafka.Writer {
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Balancer: &kafka.Hash{},
	})
}

// Publish отправляет уведомление
func (p *KafkaPublisher) Publish(ctx context.Context, intent *domain.NotifyIntent) error {
	msg, err := buildMessage(p.topic, intent, uuid.NewString(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Publish: order_id=%s, status=%s: %v", intent.OrderID, intent.NewStatus, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.logger.Info("Publish: order_id=%s, status=%s, recipient=%s", intent.OrderID, intent.NewStatus, intent.RecipientID)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func buildMessage(topic string, intent *domain.NotifyIntent, eventID string, occurredAt time.Time) (kafka.Message, error) {
	if intent == nil || intent.OrderID == "" {
		return kafka.Message{}, ErrInvalidIntent
	}

	payload, err := json.Marshal(StatusChangedEvent{
		EventID:     eventID,
		OrderID:     intent.OrderID,
		OrderNo:     intent.OrderNo,
		RecipientID: intent.RecipientID,
		Status:      string(intent.NewStatus),
		Message:     intent.Message,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: marshal payload: %v", ErrInvalidIntent, err)
	}

	return kafka.Message{
		Topic: topic,
		Key:   []byte(intent.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte(EventTypeStatusChanged)},
		},
	}, nil
}

// LogPublisher пишет уведомления в лог, когда брокер не настроен
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создает публикатор в лог
func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish записывает уведомление в лог
func (p *LogPublisher) Publish(_ context.Context, intent *domain.NotifyIntent) error {
	if intent == nil {
		return ErrInvalidIntent
	}
	p.logger.Info("Notify: recipient=%s, order_id=%s, order_no=%s, status=%s, message=%q",
		intent.RecipientID, intent.OrderID, intent.OrderNo, intent.NewStatus, intent.Message)
	return nil
}

// Close ничего не освобождает
func (p *LogPublisher) Close() error {
	return nil
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
