package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.OrderEventPublisher = (*Producer)(nil)

// EventOrderCreated — тип события в заголовке event-type.
const EventOrderCreated = "order.created"

// writer — минимальный контракт над kafka.Writer для подмены в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderCreatedEvent — полезная нагрузка события о новом заказе.
type OrderCreatedEvent struct {
	OrderID    string            `json:"orderId"`
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	Status     string            `json:"status"`
	Total      string            `json:"total"`
	Items      []domain.LineItem `json:"items"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Producer — публикация событий о заказах; ключ сообщения — номер заказа.
type Producer struct {
	writer    writer
	topic     string
	closeOnce sync.Once
}

func NewProducer(cfg *ProducerConfig) *Producer {
	return &Producer{writer: cfg.Writer(), topic: cfg.Topic}
}

// PublishOrderCreated — событие order.created; request id уходит в заголовке.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(OrderCreatedEvent{
		OrderID:    order.OrderID,
		ID:         order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		Total:      order.Total.StringFixed(2),
		Items:      order.Items,
		OccurredAt: order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	headers := []kafka.Header{{Key: "event-type", Value: []byte(EventOrderCreated)}}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		headers = append(headers, kafka.Header{Key: "request-id", Value: []byte(rid)})
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(order.OrderID),
		Value:   payload,
		Headers: headers,
	})
	if err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("write message: %w", err)
	}
	metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "ok").Inc()
	return nil
}

func (p *Producer) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
