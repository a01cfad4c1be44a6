package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-menu/internal/cart"
	"restaurant-menu/internal/menu"
	"restaurant-menu/internal/models"
	"restaurant-menu/internal/orderflow"
)

type fakePublisher struct {
	published []*models.OrderPlacedMessage
	err       error
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, msg *models.OrderPlacedMessage) error {
	f.published = append(f.published, msg)
	return f.err
}

func testOrder(t *testing.T) orderflow.Order {
	t.Helper()
	item, ok := menu.DefaultCatalog().Lookup(5)
	require.True(t, ok)
	return orderflow.NewOrder("ORD_20261018_002", cart.Cart{}.Add(item), time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
}

func TestOrderSink_PublishesMessage(t *testing.T) {
	pub := &fakePublisher{}
	sink := &OrderSink{publisher: pub, currency: "₦"}

	require.NoError(t, sink.OrderPlaced(context.Background(), testOrder(t)))
	require.Len(t, pub.published, 1)

	msg := pub.published[0]
	assert.Equal(t, "ORD_20261018_002", msg.OrderNumber)
	assert.Equal(t, "₦", msg.Currency)
	assert.Equal(t, "15.99", msg.TotalPrice.StringFixed(2))
}

func TestOrderSink_WrapsPublishError(t *testing.T) {
	broker := errors.New("channel closed")
	sink := &OrderSink{publisher: &fakePublisher{err: broker}, currency: "₦"}

	err := sink.OrderPlaced(context.Background(), testOrder(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, broker))
	assert.Contains(t, err.Error(), "ORD_20261018_002")
}

func TestDeliveryMode(t *testing.T) {
	assert.Equal(t, amqp091.Persistent, deliveryMode(true))
	assert.Equal(t, amqp091.Transient, deliveryMode(false))
}

func TestParseMessage(t *testing.T) {
	var msg models.OrderPlacedMessage
	require.NoError(t, ParseMessage([]byte(`{"order_number":"ORD_20261018_001","total_items":2,"total_price":"21.98"}`), &msg))
	assert.Equal(t, 2, msg.TotalItems)
	assert.Equal(t, "21.98", msg.TotalPrice.StringFixed(2))

	assert.Error(t, ParseMessage([]byte(`{`), &msg))
}
