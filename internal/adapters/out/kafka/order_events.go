// Package kafka publishes committed order changes to downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

// orderChangedEvent is the wire envelope for one committed order change.
type orderChangedEvent struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Payload   orderChangedPayload `json:"payload"`
	Timestamp time.Time           `json:"timestamp"`
}

type orderChangedPayload struct {
	TenantID       string `json:"tenant_id"`
	OrderID        string `json:"order_id"`
	Number         string `json:"number"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	Stage          string `json:"stage"`
	QAStatus       string `json:"qa_status"`
	HasIssue       bool   `json:"has_issue"`
}

// OrderEventPublisher writes order-changed events to a Kafka topic.
// Messages are keyed by order ID so changes to one order stay ordered
// within a partition.
type OrderEventPublisher struct {
	writer *kafka.Writer
}

// NewOrderEventPublisher creates a publisher for the given brokers and topic.
func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// OrderChanged publishes the aggregate's committed state together with the
// status it moved from.
func (p *OrderEventPublisher) OrderChanged(ctx context.Context, aggregate *order.Order, previous order.Status) error {
	event := orderChangedEvent{
		EventID:   uuid.New().String(),
		EventType: "OrderChanged",
		Payload: orderChangedPayload{
			TenantID:       aggregate.TenantID().String(),
			OrderID:        aggregate.ID().String(),
			Number:         aggregate.Number(),
			PreviousStatus: previous.String(),
			Status:         aggregate.Status().String(),
			Stage:          aggregate.Stage().String(),
			QAStatus:       aggregate.QAStatus().String(),
			HasIssue:       aggregate.HasIssue(),
		},
		Timestamp: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return errs.NewDependencyFailureError("kafka", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(aggregate.ID().String()),
		Value: value,
	})
	if err != nil {
		return errs.NewDependencyFailureError("kafka", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
