// Package session owns the mutable widget state for one page view.
//
// The menu, cart, order flow and carousel packages are pure; a Session holds
// their current values, applies user actions and timer ticks to them, and
// publishes an immutable Snapshot to subscribers after every change.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant-menu/internal/carousel"
	"restaurant-menu/internal/cart"
	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/menu"
	"restaurant-menu/internal/orderflow"
	"restaurant-menu/internal/schedule"
)

var (
	// ErrUnknownItem is returned when an item id is not in the catalog
	ErrUnknownItem = errors.New("unknown menu item")
	// ErrClosed is returned by actions on a closed session
	ErrClosed = errors.New("session closed")
)

// View selects which page the widget is showing
type View string

const (
	StaticView View = "static"
	OrderView  View = "order"
)

// IsValid reports whether v is a known view
func (v View) IsValid() bool {
	return v == StaticView || v == OrderView
}

// OrderSink receives confirmed orders
type OrderSink interface {
	OrderPlaced(ctx context.Context, order orderflow.Order) error
}

// NopSink discards orders
type NopSink struct{}

func (NopSink) OrderPlaced(context.Context, orderflow.Order) error { return nil }

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	Scheduler         schedule.Scheduler
	Logger            *logger.Logger
	Sink              OrderSink
	CarouselInterval  time.Duration
	ConfirmationDelay time.Duration
}

// Snapshot is a read-only copy of the session state. Version grows by one with every change.
type Snapshot struct {
	ID         string
	Version    uint64
	View       View
	Filter     menu.FilterState
	Visible    []menu.MenuItem
	Lines      []cart.Line
	TotalItems int
	TotalPrice decimal.Decimal
	CartOpen   bool
	Phase      orderflow.Phase
	LastOrder  *orderflow.Order
	Carousel   carousel.State
	Slide      string
}

// Session is the state store for one page view
type Session struct {
	id      string
	catalog *menu.Catalog
	images  []string

	sched             schedule.Scheduler
	logger            *logger.Logger
	sink              OrderSink
	carouselInterval  time.Duration
	confirmationDelay time.Duration

	mu        sync.Mutex
	closed    bool
	view      View
	filter    menu.FilterState
	cart      cart.Cart
	cartOpen  bool
	phase     orderflow.Phase
	lastOrder *orderflow.Order
	numbers   orderflow.Numberer
	carousel  carousel.State

	carouselTask schedule.Task
	carouselGen  uint64
	resetTask    schedule.Task
	resetGen     uint64

	version     uint64
	pending     []Snapshot
	dispatching bool
	delivered   uint64

	listeners    map[int]func(Snapshot)
	nextListener int
}

// New creates a session over catalog, starting in the static view with an empty cart
func New(catalog *menu.Catalog, opts Options) *Session {
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}
	if opts.CarouselInterval <= 0 {
		opts.CarouselInterval = carousel.DefaultInterval
	}
	if opts.ConfirmationDelay <= 0 {
		opts.ConfirmationDelay = orderflow.DefaultConfirmationDelay
	}

	s := &Session{
		id:                uuid.NewString(),
		catalog:           catalog,
		images:            catalog.ImageURLs(),
		sched:             opts.Scheduler,
		logger:            opts.Logger,
		sink:              opts.Sink,
		carouselInterval:  opts.CarouselInterval,
		confirmationDelay: opts.ConfirmationDelay,
		view:              StaticView,
		filter:            menu.NewFilterState(),
		phase:             orderflow.Empty,
		carousel:          carousel.New(catalog.Len()),
		listeners:         make(map[int]func(Snapshot)),
	}

	s.mu.Lock()
	s.armCarousel()
	s.mu.Unlock()

	s.logger.Info("session_started", "Menu session started", s.id, map[string]interface{}{
		"catalog_size":      catalog.Len(),
		"carousel_interval": s.carouselInterval.String(),
	})
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Catalog returns the catalog the session was created with
func (s *Session) Catalog() *menu.Catalog {
	return s.catalog
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn to receive a snapshot after every change, in version order.
// fn may call back into the session; changes it makes are delivered after it returns.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close cancels pending timers and drops subscribers. Every later action is ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancelCarousel()
	if s.resetTask != nil {
		s.resetTask.Cancel()
		s.resetTask = nil
	}
	s.listeners = make(map[int]func(Snapshot))

	s.logger.Info("session_closed", "Menu session closed", s.id, nil)
}

// SetView switches between the static and order views. The carousel restarts on every switch.
func (s *Session) SetView(v View) {
	if !v.IsValid() {
		return
	}
	s.update(func() bool {
		if s.view == v {
			return false
		}
		s.view = v
		s.carousel = carousel.New(len(s.images))
		s.armCarousel()
		s.logger.Debug("view_switched", "View switched", s.id, map[string]interface{}{"view": string(v)})
		return true
	})
}

// SetFilter replaces the search term and category
func (s *Session) SetFilter(f menu.FilterState) {
	if f.Category == "" {
		f.Category = menu.All
	}
	s.update(func() bool {
		if s.filter == f {
			return false
		}
		s.filter = f
		return true
	})
}

// SetSearch replaces the search term
func (s *Session) SetSearch(term string) {
	s.update(func() bool {
		if s.filter.Search == term {
			return false
		}
		s.filter.Search = term
		return true
	})
}

// SelectCategory replaces the category filter
func (s *Session) SelectCategory(c menu.Category) {
	s.update(func() bool {
		if s.filter.Category == c {
			return false
		}
		s.filter.Category = c
		return true
	})
}

// Visible returns the catalog items that pass the current filter
func (s *Session) Visible() []menu.MenuItem {
	s.mu.Lock()
	f := s.filter
	s.mu.Unlock()
	return s.catalog.Visible(f)
}

// AddItem adds one of the catalog item id to the cart. Cart actions are
// accepted in both views; the view only decides what is shown.
func (s *Session) AddItem(id int) error {
	item, ok := s.catalog.Lookup(id)
	if !ok {
		return ErrUnknownItem
	}
	added := s.update(func() bool {
		s.setCart(s.cart.Add(item))
		s.logger.Debug("cart_item_added", "Item added to cart", s.id, map[string]interface{}{
			"item_id":     id,
			"total_items": s.cart.TotalItems(),
		})
		return true
	})
	if !added {
		return ErrClosed
	}
	return nil
}

// UpdateQuantity sets the quantity of a cart line; below 1 removes it
func (s *Session) UpdateQuantity(id, quantity int) {
	s.update(func() bool {
		next := s.cart.UpdateQuantity(id, quantity)
		if _, had := s.cart.Line(id); !had {
			return false
		}
		s.setCart(next)
		s.logger.Debug("cart_quantity_updated", "Cart quantity updated", s.id, map[string]interface{}{
			"item_id":  id,
			"quantity": quantity,
		})
		return true
	})
}

// RemoveItem deletes a cart line
func (s *Session) RemoveItem(id int) {
	s.update(func() bool {
		if _, had := s.cart.Line(id); !had {
			return false
		}
		s.setCart(s.cart.Remove(id))
		s.logger.Debug("cart_item_removed", "Item removed from cart", s.id, map[string]interface{}{"item_id": id})
		return true
	})
}

// ClearCart empties the cart
func (s *Session) ClearCart() {
	s.update(func() bool {
		if s.cart.IsEmpty() {
			return false
		}
		s.setCart(s.cart.Clear())
		s.logger.Debug("cart_cleared", "Cart cleared", s.id, nil)
		return true
	})
}

// OpenCart shows the cart panel. An empty cart stays closed.
func (s *Session) OpenCart() {
	s.update(func() bool {
		if s.cartOpen || s.cart.IsEmpty() {
			return false
		}
		s.cartOpen = true
		return true
	})
}

// CloseCart hides the cart panel
func (s *Session) CloseCart() {
	s.update(func() bool {
		if !s.cartOpen {
			return false
		}
		s.cartOpen = false
		return true
	})
}

// PlaceOrder submits the cart. It reports false, changing nothing, when the
// cart is empty or a confirmation is already showing. A confirmed order is
// handed to the order sink and the cart resets after the confirmation delay.
func (s *Session) PlaceOrder(ctx context.Context) (orderflow.Order, bool) {
	var order orderflow.Order

	placed := s.update(func() bool {
		phase, ok := orderflow.Submit(s.phase, s.cart)
		if !ok {
			s.logger.Debug("order_rejected", "Order submission ignored", s.id, map[string]interface{}{
				"phase": s.phase.String(),
			})
			return false
		}

		now := s.sched.Now()
		order = orderflow.NewOrder(s.numbers.Next(now), s.cart, now)
		s.phase = phase
		s.lastOrder = &order

		s.resetGen++
		gen := s.resetGen
		s.resetTask = s.sched.AfterFunc(s.confirmationDelay, func() { s.completeOrder(gen) })

		s.logger.Info("order_placed", "Order placed", s.id, map[string]interface{}{
			"order_number": order.Number,
			"total_items":  order.TotalItems,
			"total_price":  order.TotalPrice.StringFixed(2),
		})
		return true
	})
	if !placed {
		return orderflow.Order{}, false
	}

	if err := s.sink.OrderPlaced(ctx, order); err != nil {
		s.logger.Error("order_sink_failed", "Failed to hand off placed order", s.id, err, map[string]interface{}{
			"order_number": order.Number,
		})
	}
	return order, true
}

// NextSlide moves the carousel forward
func (s *Session) NextSlide() {
	s.moveCarousel(carousel.State.Next)
}

// PrevSlide moves the carousel back
func (s *Session) PrevSlide() {
	s.moveCarousel(carousel.State.Prev)
}

// JumpToSlide shows slide i; out-of-range indices are ignored
func (s *Session) JumpToSlide(i int) {
	s.moveCarousel(func(c carousel.State) carousel.State { return c.Jump(i) })
}

func (s *Session) moveCarousel(step func(carousel.State) carousel.State) {
	s.update(func() bool {
		next := step(s.carousel)
		if next == s.carousel {
			return false
		}
		s.carousel = next
		s.armCarousel()
		return true
	})
}

func (s *Session) completeOrder(gen uint64) {
	s.update(func() bool {
		if gen != s.resetGen {
			return false
		}
		s.resetTask = nil

		phase, cleared, ok := orderflow.Complete(s.phase, s.cart)
		if !ok {
			return false
		}
		s.phase = phase
		s.cart = cleared
		s.cartOpen = false

		s.logger.Debug("order_reset", "Order confirmation finished, cart reset", s.id, nil)
		return true
	})
}

func (s *Session) onCarouselTick(gen uint64) {
	s.update(func() bool {
		if gen != s.carouselGen {
			return false
		}
		s.carouselTask = nil
		s.carousel = s.carousel.Advance()
		s.armCarousel()
		return true
	})
}

// armCarousel replaces any pending advance with a fresh one. Caller holds mu.
func (s *Session) armCarousel() {
	s.cancelCarousel()
	if s.closed || !s.carousel.Active() {
		return
	}
	s.carouselGen++
	gen := s.carouselGen
	s.carouselTask = s.sched.AfterFunc(s.carouselInterval, func() { s.onCarouselTick(gen) })
}

func (s *Session) cancelCarousel() {
	if s.carouselTask != nil {
		s.carouselTask.Cancel()
		s.carouselTask = nil
	}
}

// setCart stores a new cart, settles the order phase and closes the panel once the cart is empty. Caller holds mu.
func (s *Session) setCart(c cart.Cart) {
	s.cart = c
	s.phase = orderflow.Settle(s.phase, c)
	if c.IsEmpty() {
		s.cartOpen = false
	}
}

// update runs fn under the lock unless the session is closed. When fn reports
// a change the new snapshot is queued and, unless another call is already
// dispatching, delivered to subscribers. Listeners run without the lock held.
func (s *Session) update(fn func() bool) bool {
	s.mu.Lock()
	if s.closed || !fn() {
		s.mu.Unlock()
		return false
	}
	s.version++
	s.pending = append(s.pending, s.snapshot())

	if s.dispatching {
		s.mu.Unlock()
		return true
	}
	s.dispatching = true
	s.dispatch()
	s.dispatching = false
	s.mu.Unlock()
	return true
}

// dispatch drains the pending queue. Caller holds mu and set dispatching; mu is
// released while listeners run, so they may call back into the session.
func (s *Session) dispatch() {
	for len(s.pending) > 0 {
		batch := s.pending
		s.pending = nil
		listeners := make([]func(Snapshot), 0, len(s.listeners))
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
		s.mu.Unlock()

		for _, snap := range batch {
			if snap.Version <= s.delivered {
				continue
			}
			s.delivered = snap.Version
			for _, l := range listeners {
				l(snap)
			}
		}

		s.mu.Lock()
	}
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:         s.id,
		Version:    s.version,
		View:       s.view,
		Filter:     s.filter,
		Visible:    s.catalog.Visible(s.filter),
		Lines:      s.cart.Lines(),
		TotalItems: s.cart.TotalItems(),
		TotalPrice: s.cart.TotalPrice(),
		CartOpen:   s.cartOpen,
		Phase:      s.phase,
		Carousel:   s.carousel,
	}
	if s.lastOrder != nil {
		order := *s.lastOrder
		snap.LastOrder = &order
	}
	if s.carousel.Active() {
		snap.Slide = s.images[s.carousel.Index]
	}
	return snap
}
