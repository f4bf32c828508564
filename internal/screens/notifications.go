package screens

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bunaifromhills/admin-console/internal/notify"
)

// NotificationService is the slice of the hub the notification endpoints need.
type NotificationService interface {
	Active() []notify.Notification
	Dismiss(id string)
}

// NotificationsHandler serves the transient notification queue.
type NotificationsHandler struct{ service NotificationService }

func NewNotificationsHandler(service NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: service}
}

func (h *NotificationsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.list)
		r.Delete("/{id}", h.dismiss)
	})
}

func (h *NotificationsHandler) list(w http.ResponseWriter, r *http.Request) {
	items := h.service.Active()
	if items == nil {
		items = []notify.Notification{}
	}
	respond(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *NotificationsHandler) dismiss(w http.ResponseWriter, r *http.Request) {
	h.service.Dismiss(chi.URLParam(r, "id"))
	respond(w, http.StatusOK, map[string]string{"status": "dismissed"})
}
