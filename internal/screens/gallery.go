package screens

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bunaifromhills/admin-console/internal/gateway"
)

// GalleryService is the slice of the gateway the gallery screen uses.
type GalleryService interface {
	FetchGallery(ctx context.Context) error
	Gallery() []gateway.GalleryItem
	Loading() gateway.Loading
	CreateGalleryItem(ctx context.Context, in gateway.GalleryItemInput) (*gateway.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error
}

// GalleryHandler serves the media gallery screen.
type GalleryHandler struct{ service GalleryService }

func NewGalleryHandler(service GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

func (h *GalleryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", h.list)    // GET  /gallery?q=loom&category=workshop
		r.Post("/", h.create) // POST /gallery (multipart)
		r.Delete("/{id}", h.remove)
	})
}

func (h *GalleryHandler) list(w http.ResponseWriter, r *http.Request) {
	h.service.FetchGallery(r.Context())

	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	items := make([]gateway.GalleryItem, 0)
	for _, g := range h.service.Gallery() {
		if matchesSearch(q, g.Title, g.Description) && matchesFilter(category, g.Category) {
			items = append(items, g)
		}
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"loading": h.service.Loading().Gallery,
	})
}

func (h *GalleryHandler) create(w http.ResponseWriter, r *http.Request) {
	var in gateway.GalleryItemInput
	if err := parseForm(r); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Title = formValue(r, "title")
	in.Description = formValue(r, "description")
	in.Category = formValue(r, "category")

	image, err := formUpload(r, "image")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Image = image

	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if in.Image == nil {
		respondError(w, http.StatusBadRequest, "image is required")
		return
	}

	g, err := h.service.CreateGalleryItem(r.Context(), in)
	if err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusCreated, g)
}

func (h *GalleryHandler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGalleryItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}
