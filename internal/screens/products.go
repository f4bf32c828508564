package screens

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bunaifromhills/admin-console/internal/gateway"
)

// ProductService is the slice of the gateway the products screen uses.
type ProductService interface {
	FetchProducts(ctx context.Context) error
	Products() []gateway.Product
	Loading() gateway.Loading
	CreateProduct(ctx context.Context, in gateway.ProductInput) (*gateway.Product, error)
	UpdateProduct(ctx context.Context, id string, in gateway.ProductInput) (*gateway.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductsHandler serves the products screen.
type ProductsHandler struct{ service ProductService }

func NewProductsHandler(service ProductService) *ProductsHandler {
	return &ProductsHandler{service: service}
}

func (h *ProductsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.list)       // GET    /products?q=scarf&category=woolens
		r.Post("/", h.create)    // POST   /products (multipart)
		r.Put("/{id}", h.update) // PUT    /products/{id} (multipart)
		r.Delete("/{id}", h.remove)
	})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	h.service.FetchProducts(r.Context())

	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	items := make([]gateway.Product, 0)
	for _, p := range h.service.Products() {
		if matchesSearch(q, p.Title, p.Description) && matchesFilter(category, p.Category) {
			items = append(items, p)
		}
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"loading": h.service.Loading().Products,
	})
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	in, err := productInput(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if in.Price == nil {
		respondError(w, http.StatusBadRequest, "price is required")
		return
	}
	if in.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	p, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	in, err := productInput(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Price != nil && in.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *ProductsHandler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, httpStatus(err), err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func productInput(r *http.Request) (gateway.ProductInput, error) {
	var in gateway.ProductInput
	if err := parseForm(r); err != nil {
		return in, err
	}
	in.Title = formValue(r, "title")
	in.Description = formValue(r, "description")
	in.Category = formValue(r, "category")

	price, err := formDecimal(r, "price")
	if err != nil {
		return in, err
	}
	in.Price = price

	inStock, err := formBool(r, "inStock")
	if err != nil {
		return in, err
	}
	in.InStock = inStock

	image, err := formUpload(r, "image")
	if err != nil {
		return in, err
	}
	in.Image = image
	return in, nil
}
