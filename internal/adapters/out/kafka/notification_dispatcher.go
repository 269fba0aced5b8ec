// Package kafka publishes order lifecycle notifications to a Kafka topic.
//
// Messages are keyed by order ID so that all events for one order land on the
// same partition and are consumed in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/ports"

	"github.com/Shopify/sarama"
)

// notificationMessage is the wire format of a lifecycle event.
type notificationMessage struct {
	Kind          string    `json:"kind"`
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	Status        string    `json:"status"`
	CustomerID    string    `json:"customer_id"`
	TransporterID *string   `json:"transporter_id,omitempty"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency"`
	Recipients    []string  `json:"recipients,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NotificationDispatcher implements ports.NotificationDispatcher on top of a
// synchronous Kafka producer.
type NotificationDispatcher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewNotificationDispatcher connects a synchronous producer to the given
// brokers. The producer waits for all in-sync replicas to acknowledge each
// message before returning.
func NewNotificationDispatcher(brokers []string, topic string, logger *slog.Logger) (*NotificationDispatcher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 10
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewNotificationDispatcherWithProducer(producer, topic, logger), nil
}

// NewNotificationDispatcherWithProducer wraps an existing producer. Used by
// tests to substitute a mock producer.
func NewNotificationDispatcherWithProducer(
	producer sarama.SyncProducer, topic string, logger *slog.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_notification_dispatcher"),
	}
}

// Notify publishes a lifecycle event for the given order. The returned error
// is informational: callers fire notifications after commit and never fail the
// order operation over an undelivered message.
func (d *NotificationDispatcher) Notify(
	ctx context.Context, kind ports.EventKind, aggregate *order.Order, recipients []kernel.UUID,
) error {
	message := notificationMessage{
		Kind:        string(kind),
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      aggregate.Status().String(),
		CustomerID:  aggregate.CustomerID().String(),
		Total:       aggregate.Price().Total,
		Currency:    aggregate.Price().Currency,
		OccurredAt:  aggregate.UpdatedAt(),
	}
	if transporterID := aggregate.TransporterID(); transporterID != nil {
		s := transporterID.String()
		message.TransporterID = &s
	}
	for _, recipient := range recipients {
		message.Recipients = append(message.Recipients, recipient.String())
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	partition, offset, err := d.producer.SendMessage(&sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(aggregate.ID().String()),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to publish order notification",
			"error", err,
			"kind", string(kind),
			"orderId", aggregate.ID().String())
		return fmt.Errorf("failed to publish order notification: %w", err)
	}

	d.logger.DebugContext(ctx, "Order notification published",
		"kind", string(kind),
		"orderId", aggregate.ID().String(),
		"partition", partition,
		"offset", offset)
	return nil
}

// Close shuts down the underlying producer.
func (d *NotificationDispatcher) Close() error {
	return d.producer.Close()
}
