package screens

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bunaifromhills/admin-console/internal/gateway"
)

// CustomerService is the slice of the gateway the customers screen uses.
type CustomerService interface {
	FetchCustomers(ctx context.Context) error
	Customers() []gateway.Customer
	Loading() gateway.Loading
	ReplyToCustomer(ctx context.Context, email, subject, message string) error
}

// CustomersHandler serves the customer inquiries screen.
type CustomersHandler struct{ service CustomerService }

func NewCustomersHandler(service CustomerService) *CustomersHandler {
	return &CustomersHandler{service: service}
}

func (h *CustomersHandler) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.list)              // GET  /customers?q=priya
		r.Post("/{id}/reply", h.reply)  // POST /customers/{id}/reply
	})
}

func (h *CustomersHandler) list(w http.ResponseWriter, r *http.Request) {
	h.service.FetchCustomers(r.Context())

	q := r.URL.Query().Get("q")

	items := make([]gateway.Customer, 0)
	for _, c := range h.service.Customers() {
		if matchesSearch(q, c.Name, c.Email, c.Message) {
			items = append(items, c)
		}
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"loading": h.service.Loading().Customers,
	})
}

func (h *CustomersHandler) reply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	id := chi.URLParam(r, "id")
	var inquiry *gateway.Customer
	for _, c := range h.service.Customers() {
		if c.ID == id {
			inquiry = &c
			break
		}
	}
	if inquiry == nil {
		respondError(w, http.StatusNotFound, "customer message not found")
		return
	}

	subject := req.Subject
	if strings.TrimSpace(subject) == "" {
		subject = gateway.ReplySubject(inquiry.Message)
	}
	if err := h.service.ReplyToCustomer(r.Context(), inquiry.Email, subject, req.Message); err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "reply sent"})
}
