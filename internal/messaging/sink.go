package messaging

import (
	"context"
	"fmt"

	"restaurant-menu/internal/models"
	"restaurant-menu/internal/orderflow"
	"restaurant-menu/internal/session"
)

type orderPublisher interface {
	PublishOrderPlaced(ctx context.Context, msg *models.OrderPlacedMessage) error
}

// OrderSink hands confirmed orders to RabbitMQ
type OrderSink struct {
	publisher orderPublisher
	currency  string
}

var _ session.OrderSink = (*OrderSink)(nil)

// NewOrderSink wraps publisher as a session order sink. currency is the display glyph carried on every message.
func NewOrderSink(publisher *Publisher, currency string) *OrderSink {
	return &OrderSink{publisher: publisher, currency: currency}
}

func (s *OrderSink) OrderPlaced(ctx context.Context, order orderflow.Order) error {
	msg := models.NewOrderPlacedMessage(order, s.currency)
	if err := s.publisher.PublishOrderPlaced(ctx, msg); err != nil {
		return fmt.Errorf("publish order %s: %w", order.Number, err)
	}
	return nil
}
