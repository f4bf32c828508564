package gateway

import (
	"bytes"
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/bunaifromhills/admin-console/internal/notify"
)

// replySubjectLen is how much of the original inquiry makes it into a derived
// subject line.
const replySubjectLen = 50

// ReplySubject derives a subject line from the inquiry being answered, used
// when the operator does not supply one.
func ReplySubject(message string) string {
	runes := []rune(message)
	if len(runes) > replySubjectLen {
		return "Re: " + string(runes[:replySubjectLen]) + "..."
	}
	return "Re: " + message
}

// Customers returns a snapshot of the inquiry collection in server order.
func (c *Client) Customers() []Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Customer, len(c.customers))
	copy(out, c.customers)
	return out
}

// FetchCustomers replaces the inquiry collection with the server's set.
func (c *Client) FetchCustomers(ctx context.Context) error {
	return fetchCollection(ctx, c, colCustomers, "/contact", "Failed to fetch customers", func(items []Customer) {
		c.customers = items
	})
}

// ReplyToCustomer sends an outbound email through the storefront. The inquiry
// collection itself is not touched.
func (c *Client) ReplyToCustomer(ctx context.Context, email, subject, message string) error {
	ctx, done := c.beginOp(ctx)
	defer done()

	payload, err := json.Marshal(map[string]string{
		"email":   email,
		"subject": subject,
		"message": message,
	})
	if err != nil {
		return err
	}
	if err := c.call(ctx, http.MethodPost, "/contact/reply", bytes.NewReader(payload), "application/json", nil); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Reply failed")
		}
		return err
	}
	c.notifier.Notify("Reply sent", notify.SeveritySuccess)
	return nil
}
