package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-menu/internal/menu"
)

func item(t *testing.T, id int) menu.MenuItem {
	t.Helper()
	it, ok := menu.DefaultCatalog().Lookup(id)
	require.True(t, ok, "item %d", id)
	return it
}

func quantities(c Cart) map[int]int {
	out := make(map[int]int)
	for _, l := range c.Lines() {
		out[l.Item.ID] = l.Quantity
	}
	return out
}

func TestAdd_MergesSameItem(t *testing.T) {
	for _, it := range menu.DefaultItems() {
		c := Cart{}.Add(it).Add(it)
		require.Equal(t, 1, c.Len())
		line, ok := c.Line(it.ID)
		require.True(t, ok)
		assert.Equal(t, 2, line.Quantity)
	}
}

func TestAdd_AppendsInInsertionOrder(t *testing.T) {
	c := Cart{}.Add(item(t, 3)).Add(item(t, 1)).Add(item(t, 3)).Add(item(t, 5))

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, 3, lines[0].Item.ID)
	assert.Equal(t, 1, lines[1].Item.ID)
	assert.Equal(t, 5, lines[2].Item.ID)
}

func TestReducersDoNotMutateReceiver(t *testing.T) {
	base := Cart{}.Add(item(t, 1))

	_ = base.Add(item(t, 1))
	_ = base.Add(item(t, 2))
	_ = base.UpdateQuantity(1, 7)
	_ = base.Remove(1)
	_ = base.Clear()

	assert.Equal(t, map[int]int{1: 1}, quantities(base))
}

func TestScenario_TwoLinesTotals(t *testing.T) {
	c := Cart{}.Add(item(t, 1)).Add(item(t, 1)).Add(item(t, 3))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.TotalItems())

	want := item(t, 1).Price.Mul(decimal.NewFromInt(2)).Add(item(t, 3).Price)
	assert.True(t, want.Equal(c.TotalPrice()), "want %s got %s", want, c.TotalPrice())
	assert.Equal(t, "35.97", c.TotalPrice().StringFixed(2))
}

func TestUpdateQuantity(t *testing.T) {
	c := Cart{}.Add(item(t, 1)).Add(item(t, 2))

	tests := []struct {
		name     string
		id       int
		quantity int
		want     map[int]int
	}{
		{name: "set quantity", id: 1, quantity: 4, want: map[int]int{1: 4, 2: 1}},
		{name: "zero removes", id: 1, quantity: 0, want: map[int]int{2: 1}},
		{name: "negative removes", id: 2, quantity: -1, want: map[int]int{1: 1}},
		{name: "absent id is a no-op", id: 9, quantity: 3, want: map[int]int{1: 1, 2: 1}},
		{name: "absent id with zero is a no-op", id: 9, quantity: 0, want: map[int]int{1: 1, 2: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.UpdateQuantity(tt.id, tt.quantity)
			assert.Equal(t, tt.want, quantities(got))
		})
	}
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	c := Cart{}.Add(item(t, 1)).Add(item(t, 2)).Add(item(t, 2))
	for _, id := range []int{1, 2, 3} {
		assert.Equal(t, c.Remove(id).Lines(), c.UpdateQuantity(id, 0).Lines(), "id %d", id)
	}
}

func TestScenario_NegativeQuantityEmptiesCart(t *testing.T) {
	c := Cart{}.Add(item(t, 4)).UpdateQuantity(4, -1)
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestRemove(t *testing.T) {
	c := Cart{}.Add(item(t, 1)).Add(item(t, 2)).Add(item(t, 3))

	got := c.Remove(2)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, 1, got.Lines()[0].Item.ID)
	assert.Equal(t, 3, got.Lines()[1].Item.ID)

	assert.Equal(t, c.Lines(), c.Remove(42).Lines())
}

func TestClear(t *testing.T) {
	c := Cart{}.Add(item(t, 1)).Add(item(t, 2)).Clear()
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.TotalItems())
}

func TestTotalItemsIsSumOfQuantities(t *testing.T) {
	c := Cart{}
	ops := []func(Cart) Cart{
		func(c Cart) Cart { return c.Add(item(t, 1)) },
		func(c Cart) Cart { return c.Add(item(t, 2)) },
		func(c Cart) Cart { return c.UpdateQuantity(2, 5) },
		func(c Cart) Cart { return c.Add(item(t, 1)) },
		func(c Cart) Cart { return c.Remove(1) },
		func(c Cart) Cart { return c.Add(item(t, 5)) },
		func(c Cart) Cart { return c.UpdateQuantity(5, 0) },
	}

	for i, op := range ops {
		c = op(c)
		sum := 0
		for _, l := range c.Lines() {
			sum += l.Quantity
			assert.GreaterOrEqual(t, l.Quantity, 1)
		}
		assert.Equal(t, sum, c.TotalItems(), "after op %d", i)
	}
}

func TestTotalPriceUsesSnapshotPrice(t *testing.T) {
	it := item(t, 2)
	c := Cart{}.Add(it)

	repriced := it
	repriced.Price = decimal.RequireFromString("99.00")
	c = c.Add(repriced)

	line, _ := c.Line(2)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "29.98", c.TotalPrice().StringFixed(2))
}

func TestTotalPriceRounding(t *testing.T) {
	it := item(t, 1)
	it.Price = decimal.RequireFromString("0.333")
	c := Cart{}.Add(it).UpdateQuantity(1, 3)
	assert.Equal(t, "1.00", c.TotalPrice().StringFixed(2))
}

func TestLineSubtotal(t *testing.T) {
	l := Line{Item: item(t, 5), Quantity: 3}
	assert.Equal(t, "47.97", l.Subtotal().StringFixed(2))
}
