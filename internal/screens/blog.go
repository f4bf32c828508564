package screens

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bunaifromhills/admin-console/internal/gateway"
)

// BlogService is the slice of the gateway the blog screen uses.
type BlogService interface {
	FetchBlogs(ctx context.Context) error
	Blogs() []gateway.BlogPost
	Loading() gateway.Loading
	CreateBlog(ctx context.Context, in gateway.BlogInput) (*gateway.BlogPost, error)
	UpdateBlog(ctx context.Context, id string, in gateway.BlogInput) (*gateway.BlogPost, error)
	DeleteBlog(ctx context.Context, id string) error
}

// BlogHandler serves the blog screen.
type BlogHandler struct{ service BlogService }

func NewBlogHandler(service BlogService) *BlogHandler { return &BlogHandler{service: service} }

func (h *BlogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/blog", func(r chi.Router) {
		r.Get("/", h.list)       // GET  /blog?q=wool&category=craft
		r.Post("/", h.create)    // POST /blog (multipart)
		r.Put("/{id}", h.update) // PUT  /blog/{id} (multipart)
		r.Delete("/{id}", h.remove)
	})
}

func (h *BlogHandler) list(w http.ResponseWriter, r *http.Request) {
	h.service.FetchBlogs(r.Context())

	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	items := make([]gateway.BlogPost, 0)
	for _, b := range h.service.Blogs() {
		if matchesSearch(q, b.Title, b.Excerpt, b.Author) && matchesFilter(category, b.Category) {
			items = append(items, b)
		}
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"loading": h.service.Loading().Blogs,
	})
}

func (h *BlogHandler) create(w http.ResponseWriter, r *http.Request) {
	in, err := blogInput(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if in.Content == nil || strings.TrimSpace(*in.Content) == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	b, err := h.service.CreateBlog(r.Context(), in)
	if err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *BlogHandler) update(w http.ResponseWriter, r *http.Request) {
	in, err := blogInput(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.service.UpdateBlog(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *BlogHandler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBlog(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func blogInput(r *http.Request) (gateway.BlogInput, error) {
	var in gateway.BlogInput
	if err := parseForm(r); err != nil {
		return in, err
	}
	in.Title = formValue(r, "title")
	in.Excerpt = formValue(r, "excerpt")
	in.Content = formValue(r, "content")
	in.Author = formValue(r, "author")
	in.Category = formValue(r, "category")
	in.ReadTime = formValue(r, "readTime")
	in.Tags = formTags(r, "tags")

	published, err := formBool(r, "published")
	if err != nil {
		return in, err
	}
	in.Published = published

	image, err := formUpload(r, "image")
	if err != nil {
		return in, err
	}
	in.Image = image
	return in, nil
}
