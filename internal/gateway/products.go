package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/bunaifromhills/admin-console/internal/notify"
)

// ProductInput carries the fields of a product create/update submission.
// Nil fields are omitted from the multipart form entirely.
type ProductInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	InStock     *bool
	Image       *Upload
}

func (in ProductInput) form() (io.Reader, string, error) {
	f := newForm()
	f.optString("title", in.Title)
	f.optString("description", in.Description)
	f.optDecimal("price", in.Price)
	f.optString("category", in.Category)
	f.optBool("inStock", in.InStock)
	f.file("image", in.Image)
	return f.close()
}

// Products returns a snapshot of the product collection in server order.
func (c *Client) Products() []Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// FetchProducts replaces the product collection with the server's set. On
// failure the collection is left untouched.
func (c *Client) FetchProducts(ctx context.Context) error {
	return fetchCollection(ctx, c, colProducts, "/products", "Failed to fetch products", func(items []Product) {
		c.products = items
	})
}

// CreateProduct submits a new product and appends it to the collection.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	ctx, done := c.beginOp(ctx)
	defer done()

	body, contentType, err := in.form()
	if err != nil {
		return nil, err
	}
	var created Product
	if err := c.call(ctx, http.MethodPost, "/products", body, contentType, &created); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Create product failed")
		}
		return nil, err
	}

	c.mu.Lock()
	c.products = append(c.products, created)
	c.mu.Unlock()
	c.notifier.Notify("Product created", notify.SeveritySuccess)
	return &created, nil
}

// UpdateProduct submits changed fields for a product and replaces the
// matching entry in place.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	ctx, done := c.beginOp(ctx)
	defer done()

	body, contentType, err := in.form()
	if err != nil {
		return nil, err
	}
	var updated Product
	if err := c.call(ctx, http.MethodPut, "/products/"+url.PathEscape(id), body, contentType, &updated); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Update product failed")
		}
		return nil, err
	}

	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i] = updated
			break
		}
	}
	c.mu.Unlock()
	c.notifier.Notify("Product updated", notify.SeveritySuccess)
	return &updated, nil
}

// DeleteProduct removes a product. Deleting an id the collection does not
// hold still issues the call and is not an error locally.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	ctx, done := c.beginOp(ctx)
	defer done()

	if err := c.call(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, "", nil); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Delete product failed")
		}
		return err
	}

	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.notifier.Notify("Product deleted", notify.SeveritySuccess)
	return nil
}
