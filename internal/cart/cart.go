// Package cart holds the shopping cart value and its reducers.
//
// A Cart is never modified in place: every operation returns a new Cart and
// leaves the receiver untouched, so callers can keep earlier values as
// snapshots.
package cart

import (
	"github.com/shopspring/decimal"

	"restaurant-menu/internal/menu"
)

// Line is one item in the cart. Item is a snapshot taken when the line was
// created; later catalog price changes do not reach it.
type Line struct {
	Item     menu.MenuItem `json:"item"`
	Quantity int           `json:"quantity"`
}

// Subtotal returns price times quantity for the line
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an insertion-ordered set of lines, one per item id
type Cart struct {
	lines []Line
}

// Lines returns a copy of the lines in insertion order
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines
func (c Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Line returns the line for id, if present
func (c Cart) Line(id int) (Line, bool) {
	if i := c.find(id); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Add increments the line for item, or appends a new line with quantity 1
func (c Cart) Add(item menu.MenuItem) Cart {
	if i := c.find(item.ID); i >= 0 {
		next := c.clone()
		next.lines[i].Quantity++
		return next
	}

	lines := make([]Line, len(c.lines), len(c.lines)+1)
	copy(lines, c.lines)
	return Cart{lines: append(lines, Line{Item: item, Quantity: 1})}
}

// UpdateQuantity sets the quantity for id. A quantity below 1 removes the line.
// Unknown ids leave the cart unchanged.
func (c Cart) UpdateQuantity(id, quantity int) Cart {
	if quantity < 1 {
		return c.Remove(id)
	}

	i := c.find(id)
	if i < 0 {
		return c
	}

	next := c.clone()
	next.lines[i].Quantity = quantity
	return next
}

// Remove deletes the line for id, if present
func (c Cart) Remove(id int) Cart {
	i := c.find(id)
	if i < 0 {
		return c
	}

	lines := make([]Line, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:i]...)
	lines = append(lines, c.lines[i+1:]...)
	return Cart{lines: lines}
}

// Clear returns an empty cart
func (c Cart) Clear() Cart {
	return Cart{}
}

// TotalItems returns the sum of all quantities
func (c Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the sum of line subtotals rounded to two decimal places
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

func (c Cart) find(id int) int {
	for i, l := range c.lines {
		if l.Item.ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return Cart{lines: lines}
}
