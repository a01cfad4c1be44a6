package models

import (
	"time"

	"github.com/shopspring/decimal"

	"restaurant-menu/internal/orderflow"
)

// OrderPlacedMessage is published when a diner confirms an order
type OrderPlacedMessage struct {
	OrderNumber string             `json:"order_number"`
	Items       []OrderItemMessage `json:"items"`
	TotalItems  int                `json:"total_items"`
	TotalPrice  decimal.Decimal    `json:"total_price"`
	Currency    string             `json:"currency"`
	PlacedAt    time.Time          `json:"placed_at"`
}

// OrderItemMessage is one line of a placed order
type OrderItemMessage struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewOrderPlacedMessage builds the wire message for a confirmed order
func NewOrderPlacedMessage(order orderflow.Order, currency string) *OrderPlacedMessage {
	items := make([]OrderItemMessage, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, OrderItemMessage{
			ID:        line.Item.ID,
			Name:      line.Item.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Item.Price,
			Subtotal:  line.Subtotal().Round(2),
		})
	}

	return &OrderPlacedMessage{
		OrderNumber: order.Number,
		Items:       items,
		TotalItems:  order.TotalItems,
		TotalPrice:  order.TotalPrice,
		Currency:    currency,
		PlacedAt:    order.PlacedAt.UTC(),
	}
}
