package menu

import (
	"time"

	"restaurant-menu/internal/cart"
	catalog "restaurant-menu/internal/menu"
	"restaurant-menu/internal/orderflow"
	"restaurant-menu/internal/session"
)

type itemResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	PriceDisplay string `json:"price_display"`
	Category     string `json:"category"`
	SubCategory  string `json:"sub_category"`
	Status       string `json:"status"`
	ImageURL     string `json:"image_url"`
}

type lineResponse struct {
	ItemID          int    `json:"item_id"`
	Name            string `json:"name"`
	UnitPrice       string `json:"unit_price"`
	Quantity        int    `json:"quantity"`
	Subtotal        string `json:"subtotal"`
	SubtotalDisplay string `json:"subtotal_display"`
}

type cartResponse struct {
	Lines             []lineResponse `json:"lines"`
	TotalItems        int            `json:"total_items"`
	TotalPrice        string         `json:"total_price"`
	TotalPriceDisplay string         `json:"total_price_display"`
	Open              bool           `json:"open"`
}

type orderResponse struct {
	OrderNumber       string         `json:"order_number"`
	Lines             []lineResponse `json:"lines"`
	TotalItems        int            `json:"total_items"`
	TotalPrice        string         `json:"total_price"`
	TotalPriceDisplay string         `json:"total_price_display"`
	PlacedAt          time.Time      `json:"placed_at"`
}

type orderStateResponse struct {
	Phase     orderflow.Phase `json:"phase"`
	LastOrder *orderResponse  `json:"last_order,omitempty"`
}

type carouselResponse struct {
	Index int    `json:"index"`
	Count int    `json:"count"`
	Slide string `json:"slide,omitempty"`
}

type snapshotResponse struct {
	SessionID string              `json:"session_id"`
	View      session.View        `json:"view"`
	Filter    catalog.FilterState `json:"filter"`
	Items     []itemResponse      `json:"items"`
	Cart      cartResponse        `json:"cart"`
	Order     orderStateResponse  `json:"order"`
	Carousel  carouselResponse    `json:"carousel"`
}

type categoriesResponse struct {
	Categories    []catalog.Category                         `json:"categories"`
	SubCategories map[catalog.Category][]catalog.SubCategory `json:"sub_categories"`
}

func (h *Handler) toItems(items []catalog.MenuItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse{
			ID:           it.ID,
			Name:         it.Name,
			Description:  it.Description,
			Price:        it.Price.StringFixed(2),
			PriceDisplay: h.price.Format(it.Price),
			Category:     string(it.Category),
			SubCategory:  string(it.SubCategory),
			Status:       string(it.Status),
			ImageURL:     it.ImageURL,
		})
	}
	return out
}

func (h *Handler) toLines(lines []cart.Line) []lineResponse {
	out := make([]lineResponse, 0, len(lines))
	for _, l := range lines {
		subtotal := l.Subtotal().Round(2)
		out = append(out, lineResponse{
			ItemID:          l.Item.ID,
			Name:            l.Item.Name,
			UnitPrice:       l.Item.Price.StringFixed(2),
			Quantity:        l.Quantity,
			Subtotal:        subtotal.StringFixed(2),
			SubtotalDisplay: h.price.Format(subtotal),
		})
	}
	return out
}

func (h *Handler) toOrder(o orderflow.Order) *orderResponse {
	return &orderResponse{
		OrderNumber:       o.Number,
		Lines:             h.toLines(o.Lines),
		TotalItems:        o.TotalItems,
		TotalPrice:        o.TotalPrice.StringFixed(2),
		TotalPriceDisplay: h.price.Format(o.TotalPrice),
		PlacedAt:          o.PlacedAt,
	}
}

func (h *Handler) toSnapshot(s session.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		SessionID: s.ID,
		View:      s.View,
		Filter:    s.Filter,
		Items:     h.toItems(s.Visible),
		Cart: cartResponse{
			Lines:             h.toLines(s.Lines),
			TotalItems:        s.TotalItems,
			TotalPrice:        s.TotalPrice.StringFixed(2),
			TotalPriceDisplay: h.price.Format(s.TotalPrice),
			Open:              s.CartOpen,
		},
		Order: orderStateResponse{Phase: s.Phase},
		Carousel: carouselResponse{
			Index: s.Carousel.Index,
			Count: s.Carousel.Len,
			Slide: s.Slide,
		},
	}
	if s.LastOrder != nil {
		resp.Order.LastOrder = h.toOrder(*s.LastOrder)
	}
	return resp
}
