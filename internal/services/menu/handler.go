package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-menu/internal/logger"
	catalog "restaurant-menu/internal/menu"
	"restaurant-menu/internal/session"
)

const healthTimeout = 5 * time.Second

type ctxKey int

const requestIDKey ctxKey = iota

// HealthCheck reports whether a dependency is usable
type HealthCheck func(ctx context.Context) error

// Handler serves the menu widget session over HTTP
type Handler struct {
	session *session.Session
	price   catalog.PriceFormatter
	logger  *logger.Logger
	checks  map[string]HealthCheck
}

// NewHandler creates a handler for sess. currency is the glyph used for every displayed amount.
func NewHandler(sess *session.Session, currency string, log *logger.Logger) *Handler {
	return &Handler{
		session: sess,
		price:   catalog.PriceFormatter{Symbol: currency},
		logger:  log,
		checks:  make(map[string]HealthCheck),
	}
}

// AddHealthCheck registers a dependency probe for GET /health
func (h *Handler) AddHealthCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.withLogging)
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the widget endpoints on r
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Get("/menu", h.ListMenu)
	r.Get("/categories", h.ListCategories)

	r.Get("/session", h.GetSession)
	r.Put("/view", h.SetView)
	r.Put("/filter", h.SetFilter)

	r.Route("/cart", func(r chi.Router) {
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{id}", h.UpdateQuantity)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Post("/open", h.OpenCart)
		r.Post("/close", h.CloseCart)
	})

	r.Post("/orders", h.PlaceOrder)

	r.Route("/carousel", func(r chi.Router) {
		r.Put("/", h.JumpToSlide)
		r.Post("/next", h.NextSlide)
		r.Post("/prev", h.PrevSlide)
	})
}

// ListMenu handles GET /menu?search=&category=
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.FilterState{
		Search:   q.Get("search"),
		Category: catalog.Category(q.Get("category")),
	}
	items := h.session.Catalog().Visible(f)
	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"items": h.toItems(items),
		"count": len(items),
	})
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, categoriesResponse{
		Categories:    catalog.FilterCategories(),
		SubCategories: catalog.SubCategories,
	})
}

// GetSession handles GET /session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r, http.StatusOK)
}

type viewRequest struct {
	View session.View `json:"view"`
}

// SetView handles PUT /view
func (h *Handler) SetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !req.View.IsValid() {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown view %q", req.View), requestIDFrom(r.Context()))
		return
	}
	h.session.SetView(req.View)
	h.writeSnapshot(w, r, http.StatusOK)
}

// SetFilter handles PUT /filter
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req catalog.FilterState
	if !h.decode(w, r, &req) {
		return
	}
	h.session.SetFilter(req)
	h.writeSnapshot(w, r, http.StatusOK)
}

type addItemRequest struct {
	ID int `json:"id"`
}

// AddItem handles POST /cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.session.AddItem(req.ID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrUnknownItem) {
			status = http.StatusNotFound
		}
		h.writeErrorResponse(w, status, fmt.Sprintf("menu item %d not found", req.ID), requestIDFrom(r.Context()))
		return
	}
	h.writeSnapshot(w, r, http.StatusOK)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PATCH /cart/items/{id}. A quantity below 1 removes the line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var req quantityRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.session.UpdateQuantity(id, req.Quantity)
	h.writeSnapshot(w, r, http.StatusOK)
}

// RemoveItem handles DELETE /cart/items/{id}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	h.session.RemoveItem(id)
	h.writeSnapshot(w, r, http.StatusOK)
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.session.ClearCart()
	h.writeSnapshot(w, r, http.StatusOK)
}

// OpenCart handles POST /cart/open
func (h *Handler) OpenCart(w http.ResponseWriter, r *http.Request) {
	h.session.OpenCart()
	h.writeSnapshot(w, r, http.StatusOK)
}

// CloseCart handles POST /cart/close
func (h *Handler) CloseCart(w http.ResponseWriter, r *http.Request) {
	h.session.CloseCart()
	h.writeSnapshot(w, r, http.StatusOK)
}

// PlaceOrder handles POST /orders. Submitting an empty cart, or submitting
// while a confirmation is showing, is answered with 409 and changes nothing.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	order, placed := h.session.PlaceOrder(r.Context())
	if !placed {
		h.writeErrorResponse(w, http.StatusConflict, "nothing to order", requestID)
		return
	}

	h.logger.Debug("order_created", "Order placed over HTTP", requestID, map[string]interface{}{
		"order_number": order.Number,
	})
	h.writeSnapshot(w, r, http.StatusCreated)
}

// NextSlide handles POST /carousel/next
func (h *Handler) NextSlide(w http.ResponseWriter, r *http.Request) {
	h.session.NextSlide()
	h.writeSnapshot(w, r, http.StatusOK)
}

// PrevSlide handles POST /carousel/prev
func (h *Handler) PrevSlide(w http.ResponseWriter, r *http.Request) {
	h.session.PrevSlide()
	h.writeSnapshot(w, r, http.StatusOK)
}

type slideRequest struct {
	Index int `json:"index"`
}

// JumpToSlide handles PUT /carousel
func (h *Handler) JumpToSlide(w http.ResponseWriter, r *http.Request) {
	var req slideRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.session.JumpToSlide(req.Index)
	h.writeSnapshot(w, r, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			healthy = false
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "menu-service",
		"session":   h.session.ID(),
		"checks":    checks,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	h.writeJSON(w, r, status, response)
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid item id %q", raw), requestIDFrom(r.Context()))
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		requestID := requestIDFrom(r.Context())
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, map[string]interface{}{
			"path": r.URL.Path,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return false
	}
	return true
}

func (h *Handler) writeSnapshot(w http.ResponseWriter, r *http.Request, status int) {
	h.writeJSON(w, r, status, h.toSnapshot(h.session.Snapshot()))
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestIDFrom(r.Context()), err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// withLogging tags each request with an id and logs its start and completion
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		rw.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(rw, r)

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// responseWriter captures the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
