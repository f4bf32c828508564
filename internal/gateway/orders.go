package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/bunaifromhills/admin-console/internal/notify"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// validTransitions defines the allowed status state machine. Completed and
// cancelled are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseStatus normalizes raw user input into a known status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return s, true
	}
	return "", false
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal successors of s, in progression order.
func NextStatuses(s Status) []Status {
	allowed := validTransitions[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// Orders returns a snapshot of the order collection in server order.
func (c *Client) Orders() []Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Order, len(c.orders))
	copy(out, c.orders)
	return out
}

// FetchOrders replaces the order collection with the server's set. Totals are
// cross-checked against line items; a mismatch is logged but the server value
// is kept.
func (c *Client) FetchOrders(ctx context.Context) error {
	return fetchCollection(ctx, c, colOrders, "/orders", "Failed to fetch orders", func(items []Order) {
		for _, o := range items {
			if sum := lineItemTotal(o.Items); !sum.Equal(o.TotalAmount) {
				c.log.Warn().
					Str("order", o.ID).
					Str("total", o.TotalAmount.String()).
					Str("line_items", sum.String()).
					Msg("order total does not match line items")
			}
		}
		c.orders = items
	})
}

// UpdateOrderStatus advances an order's status. Transitions the state machine
// forbids are rejected before any network call.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if current, ok := c.orderByID(id); ok && !current.OrderStatus.CanTransitionTo(status) {
		return nil, &TransitionError{From: current.OrderStatus, To: status}
	}

	ctx, done := c.beginOp(ctx)
	defer done()

	payload, err := json.Marshal(map[string]Status{"orderStatus": status})
	if err != nil {
		return nil, err
	}
	var updated Order
	if err := c.call(ctx, http.MethodPut, "/orders/"+url.PathEscape(id), bytes.NewReader(payload), "application/json", &updated); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Order update failed")
		}
		return nil, err
	}

	c.mu.Lock()
	for i := range c.orders {
		if c.orders[i].ID == id {
			c.orders[i] = updated
			break
		}
	}
	c.mu.Unlock()
	c.notifier.Notify("Order updated", notify.SeveritySuccess)
	return &updated, nil
}

func (c *Client) orderByID(id string) (Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func lineItemTotal(items []OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}
