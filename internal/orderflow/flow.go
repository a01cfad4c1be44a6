// Package orderflow is the submit / confirm / reset state machine layered on
// top of the cart.
package orderflow

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-menu/internal/cart"
)

// DefaultConfirmationDelay is how long a confirmation is shown before the cart resets
const DefaultConfirmationDelay = 3 * time.Second

// Phase is the order flow state
type Phase int

const (
	// Empty means there is nothing to submit
	Empty Phase = iota
	// Idle means the cart has items and has not been submitted
	Idle
	// Confirmed means the order was accepted and is waiting for the reset
	Confirmed
)

func (p Phase) String() string {
	switch p {
	case Empty:
		return "empty"
	case Idle:
		return "idle"
	case Confirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PhaseOf derives the phase of an unsubmitted cart
func PhaseOf(c cart.Cart) Phase {
	if c.IsEmpty() {
		return Empty
	}
	return Idle
}

// Settle recomputes the phase after a cart change. Confirmed is sticky until Complete.
func Settle(p Phase, c cart.Cart) Phase {
	if p == Confirmed {
		return Confirmed
	}
	return PhaseOf(c)
}

// Submit moves a non-empty, unsubmitted cart to Confirmed.
// The second result reports whether the transition happened.
func Submit(p Phase, c cart.Cart) (Phase, bool) {
	if p == Confirmed {
		return p, false
	}
	if c.IsEmpty() {
		return Empty, false
	}
	return Confirmed, true
}

// Complete ends a confirmation: the cart is cleared and the flow returns to Empty.
// Outside Confirmed it changes nothing.
func Complete(p Phase, c cart.Cart) (Phase, cart.Cart, bool) {
	if p != Confirmed {
		return p, c, false
	}
	return Empty, c.Clear(), true
}

// Order is the record of a confirmed submission
type Order struct {
	Number     string          `json:"order_number"`
	Lines      []cart.Line     `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	PlacedAt   time.Time       `json:"placed_at"`
}

// NewOrder snapshots the cart as an order
func NewOrder(number string, c cart.Cart, placedAt time.Time) Order {
	return Order{
		Number:     number,
		Lines:      c.Lines(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		PlacedAt:   placedAt,
	}
}

// Numberer hands out order numbers in format ORD_YYYYMMDD_NNN, restarting the sequence each UTC day
type Numberer struct {
	day string
	seq int
}

// Next returns the next order number for the day of now
func (n *Numberer) Next(now time.Time) string {
	today := now.UTC().Format("20060102")
	if today != n.day {
		n.day = today
		n.seq = 0
	}
	n.seq++
	return fmt.Sprintf("ORD_%s_%03d", today, n.seq)
}
