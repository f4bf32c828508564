package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/bunaifromhills/admin-console/internal/notify"
)

type collection int

const (
	colProducts collection = iota
	colOrders
	colCustomers
	colGallery
	colBlogs
)

// TokenSource supplies the current session credential. The token is read at
// call time for every request, and Clear is invoked when the upstream rejects
// it.
type TokenSource interface {
	Token() string
	Clear()
}

// Notifier receives the user-facing outcome of gateway operations.
type Notifier interface {
	Notify(message string, severity notify.Severity) string
}

type fetchHandle struct {
	id     uint64
	cancel context.CancelFunc
}

// Client is the admin data gateway: it owns the five domain collections,
// performs every read and mutation against the storefront API, injects the
// session credential, and keeps a stale in-flight fetch from overwriting
// newer data by cancelling the superseded request.
type Client struct {
	baseURL  string
	httpc    *http.Client
	breaker  *gobreaker.CircuitBreaker[*http.Response]
	session  TokenSource
	notifier Notifier
	log      zerolog.Logger

	mu        sync.Mutex
	products  []Product
	orders    []Order
	customers []Customer
	gallery   []GalleryItem
	blogs     []BlogPost
	pending   map[collection]int
	latest    map[collection]fetchHandle
	cancels   map[uint64]context.CancelFunc
	nextID    uint64
	closed    bool
}

// New creates a gateway client for the storefront API at baseURL.
func New(baseURL string, session TokenSource, notifier Notifier, log zerolog.Logger) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		httpc:    &http.Client{Timeout: 30 * time.Second},
		session:  session,
		notifier: notifier,
		log:      log,
		pending:  make(map[collection]int),
		latest:   make(map[collection]fetchHandle),
		cancels:  make(map[uint64]context.CancelFunc),
	}
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:     "storefront-api",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// A caller tearing its request down says nothing about upstream health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).
				Msg("circuit breaker state change")
		},
	})
	return c
}

// Close cancels every outstanding request for this gateway instance. No
// request completing afterwards updates any collection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, cancel := range c.cancels {
		cancel()
		delete(c.cancels, id)
	}
}

// Loading returns the per-collection loading flags.
func (c *Client) Loading() Loading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Loading{
		Products:  c.pending[colProducts] > 0,
		Orders:    c.pending[colOrders] > 0,
		Customers: c.pending[colCustomers] > 0,
		Gallery:   c.pending[colGallery] > 0,
		Blogs:     c.pending[colBlogs] > 0,
	}
}

// ── request lifetimes ─────────────────────────────────────────────────────────

// beginOp registers a cancellable child context so Close can sweep it. The
// returned finish func must be called when the operation resolves.
func (c *Client) beginOp(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if c.closed {
		cancel()
	}
	id := c.nextID
	c.nextID++
	c.cancels[id] = cancel
	c.mu.Unlock()
	return ctx, func() {
		c.mu.Lock()
		delete(c.cancels, id)
		c.mu.Unlock()
		cancel()
	}
}

// beginFetch additionally cancels the in-flight fetch for the same collection
// (the later-issued request wins) and raises the collection's loading flag.
func (c *Client) beginFetch(ctx context.Context, col collection) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if c.closed {
		cancel()
	}
	id := c.nextID
	c.nextID++
	c.cancels[id] = cancel
	if prev, ok := c.latest[col]; ok {
		prev.cancel()
	}
	c.latest[col] = fetchHandle{id: id, cancel: cancel}
	c.pending[col]++
	c.mu.Unlock()
	return ctx, func() {
		c.mu.Lock()
		delete(c.cancels, id)
		if h, ok := c.latest[col]; ok && h.id == id {
			delete(c.latest, col)
		}
		c.pending[col]--
		c.mu.Unlock()
		cancel()
	}
}

// fetchCollection runs one read request and, when still current, hands the
// decoded set to assign under the client lock for a full replace.
func fetchCollection[T any](ctx context.Context, c *Client, col collection, path, failMsg string, assign func([]T)) error {
	ctx, finish := c.beginFetch(ctx, col)
	defer finish()

	var items []T
	if err := c.call(ctx, http.MethodGet, path, nil, "", &items); err != nil {
		if !isCancellation(err) {
			c.fail(err, failMsg)
		}
		return err
	}

	c.mu.Lock()
	stale := ctx.Err() != nil
	if !stale {
		assign(items)
	}
	c.mu.Unlock()
	if stale {
		return ctx.Err()
	}
	return nil
}

// ── transport ─────────────────────────────────────────────────────────────────

// call performs one request against the storefront API. The bearer token is
// attached when the session holds one; a 401 reply expires the session and
// emits the session-expired notification exactly once, here and nowhere else.
func (c *Client) call(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.httpc.Do(req)
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := newAPIError(resp)
		c.session.Clear()
		c.notifier.Notify("Session expired. Please login again.", notify.SeverityError)
		return apiErr
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// fail logs a request failure and surfaces it to the operator, preferring the
// server-provided message. Authorization failures were already surfaced by
// call, so they only get logged.
func (c *Client) fail(err error, fallback string) {
	c.log.Error().Err(err).Msg(fallback)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Unauthorized() {
			return
		}
		if apiErr.Message != "" {
			c.notifier.Notify(apiErr.Message, notify.SeverityError)
			return
		}
	}
	c.notifier.Notify(fallback, notify.SeverityError)
}
