package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType identifies an order lifecycle event
type EventType string

const (
	OrderCreated       EventType = "order.created"
	OrderCancelled     EventType = "order.cancelled"
	OrderStatusChanged EventType = "order.status_changed"
)

// OrderEvent is published to the order-events topic after the store
// writes are durable. Consumers get no ordering guarantee relative to
// the HTTP response.
type OrderEvent struct {
	ID       string    `json:"id"`
	Type     EventType `json:"type"`
	OrderID  string    `json:"order_id"`
	PlantID  string    `json:"plant_id"`
	Quantity int       `json:"quantity"`
	Status   string    `json:"status,omitempty"`
	At       time.Time `json:"at"`
}

// NewOrderEvent builds an event with a fresh id and timestamp
func NewOrderEvent(eventType EventType, orderID, plantID string, quantity int, status string) OrderEvent {
	return OrderEvent{
		ID:       uuid.New().String(),
		Type:     eventType,
		OrderID:  orderID,
		PlantID:  plantID,
		Quantity: quantity,
		Status:   status,
		At:       time.Now(),
	}
}

// Publisher dispatches order events fire-and-forget
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// NoopPublisher is used when no Kafka brokers are configured
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, OrderEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
