package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for display purposes.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// defaultTTL is how long a notification stays visible unless dismissed first.
const defaultTTL = 5 * time.Second

// Notification is a transient user-facing status message.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Duration  string    `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

// Hub is the process-wide queue of transient notifications. Entries keep
// insertion order and self-remove after their TTL elapses.
type Hub struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []Notification
	timers map[string]*time.Timer
	closed bool
}

// NewHub creates a notification hub with the standard expiry.
func NewHub() *Hub { return newHub(defaultTTL) }

func newHub(ttl time.Duration) *Hub {
	return &Hub{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// Notify enqueues a notification and returns its id for manual dismissal.
func (h *Hub) Notify(message string, severity Severity) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	if h.closed {
		return id
	}
	h.items = append(h.items, Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		Duration:  h.ttl.String(),
		CreatedAt: time.Now(),
	})
	h.timers[id] = time.AfterFunc(h.ttl, func() { h.Dismiss(id) })
	return id
}

// Dismiss removes a notification before its natural expiry. Unknown ids are
// ignored.
func (h *Hub) Dismiss(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(id)
}

// Active returns the currently visible notifications in insertion order.
func (h *Hub) Active() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, len(h.items))
	copy(out, h.items)
	return out
}

// Close stops all expiry timers and drops pending notifications.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, t := range h.timers {
		t.Stop()
		delete(h.timers, id)
	}
	h.items = nil
}

func (h *Hub) remove(id string) {
	if t, ok := h.timers[id]; ok {
		t.Stop()
		delete(h.timers, id)
	}
	for i, n := range h.items {
		if n.ID == id {
			h.items = append(h.items[:i], h.items[i+1:]...)
			return
		}
	}
}
