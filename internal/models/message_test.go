package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-menu/internal/cart"
	"restaurant-menu/internal/menu"
	"restaurant-menu/internal/orderflow"
)

func TestNewOrderPlacedMessage(t *testing.T) {
	catalog := menu.DefaultCatalog()
	burger, _ := catalog.Lookup(1)
	salad, _ := catalog.Lookup(3)

	c := cart.Cart{}.Add(burger).Add(burger).Add(salad)
	placedAt := time.Date(2026, 10, 18, 19, 30, 0, 0, time.FixedZone("WAT", 3600))
	order := orderflow.NewOrder("ORD_20261018_004", c, placedAt)

	msg := NewOrderPlacedMessage(order, "₦")

	assert.Equal(t, "ORD_20261018_004", msg.OrderNumber)
	assert.Equal(t, 3, msg.TotalItems)
	assert.Equal(t, "35.97", msg.TotalPrice.StringFixed(2))
	assert.Equal(t, "₦", msg.Currency)
	assert.Equal(t, time.UTC, msg.PlacedAt.Location())
	assert.True(t, placedAt.Equal(msg.PlacedAt))

	require.Len(t, msg.Items, 2)
	assert.Equal(t, "Classic Cheeseburger", msg.Items[0].Name)
	assert.Equal(t, 2, msg.Items[0].Quantity)
	assert.Equal(t, "25.98", msg.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, 3, msg.Items[1].ID)
}

func TestOrderPlacedMessage_JSON(t *testing.T) {
	burger, _ := menu.DefaultCatalog().Lookup(1)
	order := orderflow.NewOrder("ORD_20261018_001", cart.Cart{}.Add(burger), time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))

	body, err := json.Marshal(NewOrderPlacedMessage(order, "₦"))
	require.NoError(t, err)

	var decoded OrderPlacedMessage
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "ORD_20261018_001", decoded.OrderNumber)
	assert.True(t, decoded.TotalPrice.Equal(burger.Price))
	assert.Contains(t, string(body), `"total_price":"12.99"`)
}
