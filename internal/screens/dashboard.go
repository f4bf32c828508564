package screens

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/bunaifromhills/admin-console/internal/gateway"
)

// DashboardService is the slice of the gateway the dashboard reads.
type DashboardService interface {
	FetchProducts(ctx context.Context) error
	FetchOrders(ctx context.Context) error
	Products() []gateway.Product
	Orders() []gateway.Order
	Loading() gateway.Loading
}

// DashboardHandler serves the summary screen.
type DashboardHandler struct{ service DashboardService }

func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.summary)
}

type dashboardStats struct {
	TotalProducts int             `json:"totalProducts"`
	TotalOrders   int             `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	PendingOrders int             `json:"pendingOrders"`
	RecentOrders  []gateway.Order `json:"recentOrders"`
	Loading       bool            `json:"loading"`
}

func (h *DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	// Fetch failures are surfaced through notifications; the screen renders
	// whatever snapshot is available.
	h.service.FetchProducts(r.Context())
	h.service.FetchOrders(r.Context())

	products := h.service.Products()
	orders := h.service.Orders()

	stats := dashboardStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		TotalRevenue:  decimal.Zero,
		RecentOrders:  recentOrders(orders, 5),
	}
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		if o.OrderStatus == gateway.StatusPending {
			stats.PendingOrders++
		}
	}
	loading := h.service.Loading()
	stats.Loading = loading.Products || loading.Orders

	respond(w, http.StatusOK, stats)
}

// recentOrders returns the n most recently created orders, newest first.
func recentOrders(orders []gateway.Order, n int) []gateway.Order {
	recent := make([]gateway.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
