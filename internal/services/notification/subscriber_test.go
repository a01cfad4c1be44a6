package notification

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/messaging"
	"restaurant-menu/internal/models"
)

type fakeConsumer struct {
	bodies [][]byte
	err    error
	closed bool
}

func (f *fakeConsumer) StartConsuming(ctx context.Context, handler messaging.MessageHandler) error {
	for _, body := range f.bodies {
		if err := handler(ctx, body); err != nil {
			return err
		}
	}
	return f.err
}

func (f *fakeConsumer) Close() error {
	f.closed = true
	return nil
}

func TestFormatNotification(t *testing.T) {
	msg := &models.OrderPlacedMessage{
		OrderNumber: "ORD_20261018_003",
		Items: []models.OrderItemMessage{
			{ID: 1, Name: "Classic Cheeseburger", Quantity: 2},
			{ID: 3, Name: "Caesar Salad", Quantity: 1},
		},
		TotalItems: 3,
		TotalPrice: decimal.RequireFromString("35.97"),
		Currency:   "₦",
		PlacedAt:   time.Date(2026, 10, 18, 13, 5, 0, 0, time.UTC),
	}

	assert.Equal(t,
		"🧾 [2026-10-18 13:05:00] Order ORD_20261018_003 placed: 3 items, total ₦35.97 (2x Classic Cheeseburger, 1x Caesar Salad)",
		formatNotification(msg))

	msg.Items = msg.Items[1:]
	msg.TotalItems = 1
	msg.TotalPrice = decimal.RequireFromString("9.99")
	assert.Contains(t, formatNotification(msg), "1 item, total ₦9.99")
}

func TestStart_PrintsEachOrder(t *testing.T) {
	var out bytes.Buffer
	fc := &fakeConsumer{
		bodies: [][]byte{
			[]byte(`{"order_number":"ORD_20261018_001","items":[{"id":5,"name":"Chicken Alfredo","quantity":1}],"total_items":1,"total_price":"15.99","currency":"₦","placed_at":"2026-10-18T10:00:00Z"}`),
		},
		err: context.Canceled,
	}
	s := &Subscriber{consumer: fc, logger: logger.Discard(), out: &out}

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, fc.closed)
	assert.Contains(t, out.String(), "Order ORD_20261018_001 placed: 1 item, total ₦15.99 (1x Chicken Alfredo)")
}

func TestStart_ReportsConsumerFailure(t *testing.T) {
	fc := &fakeConsumer{err: errors.New("queue deleted")}
	s := &Subscriber{consumer: fc, logger: logger.Discard(), out: &bytes.Buffer{}}

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue deleted")
	assert.True(t, fc.closed)
}

func TestHandleOrderPlaced_BadJSON(t *testing.T) {
	var out bytes.Buffer
	s := &Subscriber{logger: logger.Discard(), out: &out}

	assert.Error(t, s.handleOrderPlaced(context.Background(), []byte("not json")))
	assert.Empty(t, out.String())
}
