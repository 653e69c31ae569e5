// Package events publishes storefront events to Kafka for downstream
// consumers (fulfilment, analytics). Publishing is best-effort from the
// checkout path's point of view; a broker outage never blocks a purchase.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nvalera/supermart/internal/domain"
	"github.com/segmentio/kafka-go"
)

const TopicOrderCreated = "storefront.order.created"

// OrderCreatedEvent is the wire form of a committed order.
type OrderCreatedEvent struct {
	OrderID    string           `json:"order_id"`
	UserID     string           `json:"user_id"`
	TotalCents int64            `json:"total_cents"`
	Items      []OrderItemEvent `json:"items"`
	CreatedAt  time.Time        `json:"created_at"`
}

type OrderItemEvent struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Publisher writes order events keyed by order id.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        TopicOrderCreated,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) OrderCreated(ctx context.Context, order domain.Order) error {
	evt := NewOrderCreatedEvent(order)
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
		Time:  order.CreatedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NewOrderCreatedEvent maps a committed order to its event form.
func NewOrderCreatedEvent(order domain.Order) OrderCreatedEvent {
	items := make([]OrderItemEvent, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderItemEvent{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
		})
	}
	return OrderCreatedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalCents: order.TotalCents,
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}
}
