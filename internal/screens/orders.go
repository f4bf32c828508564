package screens

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bunaifromhills/admin-console/internal/gateway"
)

// OrderService is the slice of the gateway the orders screen uses.
type OrderService interface {
	FetchOrders(ctx context.Context) error
	Orders() []gateway.Order
	Loading() gateway.Loading
	UpdateOrderStatus(ctx context.Context, id string, status gateway.Status) (*gateway.Order, error)
}

// OrdersHandler serves the orders screen.
type OrdersHandler struct{ service OrderService }

func NewOrdersHandler(service OrderService) *OrdersHandler {
	return &OrdersHandler{service: service}
}

func (h *OrdersHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.list)                  // GET /orders?status=pending
		r.Put("/{id}/status", h.setStatus)  // PUT /orders/{id}/status
	})
}

// orderView augments an order with the transitions the screen may offer.
// Terminal orders get an empty list, so the control disappears.
type orderView struct {
	gateway.Order
	NextStatuses []gateway.Status `json:"nextStatuses"`
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	h.service.FetchOrders(r.Context())

	statusFilter := r.URL.Query().Get("status")

	items := make([]orderView, 0)
	for _, o := range h.service.Orders() {
		if !matchesFilter(statusFilter, string(o.OrderStatus)) {
			continue
		}
		items = append(items, orderView{
			Order:        o,
			NextStatuses: gateway.NextStatuses(o.OrderStatus),
		})
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"loading": h.service.Loading().Orders,
	})
}

func (h *OrdersHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderStatus string `json:"orderStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, ok := gateway.ParseStatus(req.OrderStatus)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown order status: "+req.OrderStatus)
		return
	}

	o, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusOK, orderView{Order: *o, NextStatuses: gateway.NextStatuses(o.OrderStatus)})
}
