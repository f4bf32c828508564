package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersFixture = `[
	{"_id":"o1","items":[{"title":"Scarf","quantity":2,"price":500}],
	 "customerInfo":{"name":"Priya","email":"priya@example.com"},
	 "totalAmount":1000,"orderStatus":"processing","paymentMethod":"upi",
	 "createdAt":"2026-08-01T10:00:00Z"},
	{"_id":"o2","items":[{"title":"Shawl","quantity":1,"price":1200}],
	 "customerInfo":{"name":"Arjun","email":"arjun@example.com"},
	 "totalAmount":1200,"orderStatus":"completed","paymentMethod":"card",
	 "createdAt":"2026-08-02T10:00:00Z"}
]`

func TestFetchOrdersReplacesCollection(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		w.Write([]byte(ordersFixture))
	}))

	require.NoError(t, c.FetchOrders(context.Background()))

	orders := c.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, StatusProcessing, orders[0].OrderStatus)
	assert.Equal(t, "Priya", orders[0].CustomerInfo.Name)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestUpdateOrderStatusLegalTransition(t *testing.T) {
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(ordersFixture))
			return
		}
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/orders/o1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "shipped", body["orderStatus"])

		var updated Order
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"o1","items":[{"title":"Scarf","quantity":2,"price":500}],
			"customerInfo":{"name":"Priya","email":"priya@example.com"},
			"totalAmount":1000,"orderStatus":"shipped","paymentMethod":"upi",
			"createdAt":"2026-08-01T10:00:00Z"}`), &updated))
		json.NewEncoder(w).Encode(updated)
	}))

	require.NoError(t, c.FetchOrders(context.Background()))

	updated, err := c.UpdateOrderStatus(context.Background(), "o1", StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.OrderStatus)

	orders := c.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, StatusShipped, orders[0].OrderStatus)
	assert.Equal(t, "Priya", orders[0].CustomerInfo.Name, "other fields unchanged")
	assert.Equal(t, "o2", orders[1].ID)

	notes := rec.all()
	require.Len(t, notes, 1)
	assert.Equal(t, "Order updated", notes[0].msg)
}

func TestUpdateOrderStatusRejectsIllegalTransition(t *testing.T) {
	var puts int32
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			atomic.AddInt32(&puts, 1)
		}
		w.Write([]byte(ordersFixture))
	}))

	require.NoError(t, c.FetchOrders(context.Background()))

	// o2 is completed: terminal.
	_, err := c.UpdateOrderStatus(context.Background(), "o2", StatusPending)
	require.Error(t, err)

	var transErr *TransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, StatusCompleted, transErr.From)
	assert.Equal(t, StatusPending, transErr.To)

	assert.Equal(t, int32(0), atomic.LoadInt32(&puts), "no network call for a rejected transition")
	assert.Empty(t, rec.all())
}

func TestStatusStateMachine(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCompleted, false},
		{StatusShipped, StatusCompleted, true},
		{StatusShipped, StatusCancelled, true},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("  Shipped ")
	require.True(t, ok)
	assert.Equal(t, StatusShipped, s)

	_, ok = ParseStatus("teleported")
	assert.False(t, ok)
}

func TestFetchOrdersWarnsOnTotalMismatch(t *testing.T) {
	srvBody := `[{"_id":"o3","items":[{"title":"Scarf","quantity":2,"price":500}],
		"customerInfo":{"name":"Priya","email":"p@example.com"},
		"totalAmount":999,"orderStatus":"pending","createdAt":"2026-08-01T10:00:00Z"}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(srvBody))
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	rec := &recorder{}
	c := New(srv.URL, &fakeSession{token: "t"}, rec, zerolog.New(&buf))
	t.Cleanup(c.Close)

	require.NoError(t, c.FetchOrders(context.Background()))

	// The server value is kept; the mismatch is only logged.
	orders := c.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "999", orders[0].TotalAmount.String())
	assert.Contains(t, buf.String(), "order total does not match line items")
	assert.Empty(t, rec.all())
}
