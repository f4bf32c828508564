package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunaifromhills/admin-console/internal/notify"
)

type fakeSession struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (s *fakeSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cleared++
}

func (s *fakeSession) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *fakeSession) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

type note struct {
	msg string
	sev notify.Severity
}

type recorder struct {
	mu    sync.Mutex
	notes []note
}

func (r *recorder) Notify(message string, severity notify.Severity) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{msg: message, sev: severity})
	return ""
}

func (r *recorder) all() []note {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]note, len(r.notes))
	copy(out, r.notes)
	return out
}

func newTestClient(t *testing.T, h http.Handler) (*Client, *fakeSession, *recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	sess := &fakeSession{token: "test-token"}
	rec := &recorder{}
	c := New(srv.URL, sess, rec, zerolog.Nop())
	t.Cleanup(c.Close)
	return c, sess, rec
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBearerTokenReadAtCallTime(t *testing.T) {
	var mu sync.Mutex
	var headers []string
	c, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Write([]byte(`[]`))
	}))

	require.NoError(t, c.FetchProducts(context.Background()))
	sess.set("rotated-token")
	require.NoError(t, c.FetchProducts(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"Bearer test-token", "Bearer rotated-token"}, headers)
}

func TestUnauthorizedClearsSessionExactlyOnce(t *testing.T) {
	c, sess, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))

	err := c.FetchProducts(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Unauthorized())

	assert.Equal(t, 1, sess.clearCount())
	notes := rec.all()
	require.Len(t, notes, 1)
	assert.Equal(t, "Session expired. Please login again.", notes[0].msg)
	assert.Equal(t, notify.SeverityError, notes[0].sev)

	// Collection untouched, loading flag back down.
	assert.Empty(t, c.Products())
	assert.False(t, c.Loading().Any())
}

func TestUnauthorizedOnMutationNotifiesOnce(t *testing.T) {
	c, sess, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	}))

	err := c.DeleteProduct(context.Background(), "p1")
	require.Error(t, err)

	assert.Equal(t, 1, sess.clearCount())
	require.Len(t, rec.all(), 1)
}

func TestCancelledFetchIsSilent(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Write([]byte(`[{"_id":"p1","title":"Scarf","price":500,"inStock":true}]`))
	}))
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.FetchProducts(ctx) }()

	<-started
	assert.True(t, c.Loading().Products)
	cancel()

	err := <-done
	require.Error(t, err)
	assert.True(t, isCancellation(err))

	assert.Empty(t, rec.all(), "cancellation must not notify")
	assert.Empty(t, c.Products())
	assert.False(t, c.Loading().Any())
}

func TestLaterFetchSupersedesEarlier(t *testing.T) {
	var calls int32
	firstArrived := make(chan struct{})
	release := make(chan struct{})
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(firstArrived)
			<-release
			w.Write([]byte(`[{"_id":"o-stale","items":[],"totalAmount":0,"orderStatus":"pending"}]`))
			return
		}
		w.Write([]byte(`[{"_id":"o-fresh","items":[],"totalAmount":0,"orderStatus":"pending"}]`))
	}))

	first := make(chan error, 1)
	go func() { first <- c.FetchOrders(context.Background()) }()
	<-firstArrived

	// Second fetch cancels the in-flight one; its result must win.
	require.NoError(t, c.FetchOrders(context.Background()))
	close(release)

	err := <-first
	require.Error(t, err)
	assert.True(t, isCancellation(err))

	orders := c.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "o-fresh", orders[0].ID)
	assert.False(t, c.Loading().Any())
	assert.Empty(t, rec.all(), "superseded fetch must not notify")
}

func TestCloseCancelsOutstandingRequests(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(func() { close(release) })

	done := make(chan error, 1)
	go func() { done <- c.FetchGallery(context.Background()) }()
	<-started

	c.Close()

	err := <-done
	require.Error(t, err)
	assert.True(t, isCancellation(err))
	assert.Empty(t, rec.all())
	assert.False(t, c.Loading().Any())
}

func TestOperationsAfterCloseFailImmediately(t *testing.T) {
	var calls int32
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`[]`))
	}))

	c.Close()
	err := c.FetchBlogs(context.Background())
	require.Error(t, err)
	assert.True(t, isCancellation(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestServerErrorPrefersUpstreamMessage(t *testing.T) {
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"catalogue offline"}`))
	}))

	err := c.FetchProducts(context.Background())
	require.Error(t, err)

	notes := rec.all()
	require.Len(t, notes, 1)
	assert.Equal(t, "catalogue offline", notes[0].msg)
	assert.Equal(t, notify.SeverityError, notes[0].sev)
}

func TestServerErrorFallsBackToGenericMessage(t *testing.T) {
	c, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := c.FetchGallery(context.Background())
	require.Error(t, err)

	notes := rec.all()
	require.Len(t, notes, 1)
	assert.Equal(t, "Failed to fetch gallery", notes[0].msg)
}

func TestLoadingFlagsPerCollection(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/blog" {
			close(started)
			<-release
		}
		w.Write([]byte(`[]`))
	}))

	done := make(chan error, 1)
	go func() { done <- c.FetchBlogs(context.Background()) }()
	<-started

	loading := c.Loading()
	assert.True(t, loading.Blogs)
	assert.True(t, loading.Any())
	assert.False(t, loading.Products)

	close(release)
	require.NoError(t, <-done)

	// Flag clears once the fetch resolves.
	require.Eventually(t, func() bool { return !c.Loading().Any() }, time.Second, 5*time.Millisecond)
}
