package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/bunaifromhills/admin-console/internal/notify"
)

// GalleryItemInput carries the fields of a gallery create submission. Nil
// fields are omitted from the multipart form entirely.
type GalleryItemInput struct {
	Title       *string
	Description *string
	Category    *string
	Image       *Upload
}

func (in GalleryItemInput) form() (io.Reader, string, error) {
	f := newForm()
	f.optString("title", in.Title)
	f.optString("description", in.Description)
	f.optString("category", in.Category)
	f.file("image", in.Image)
	return f.close()
}

// Gallery returns a snapshot of the gallery collection in server order.
func (c *Client) Gallery() []GalleryItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]GalleryItem, len(c.gallery))
	copy(out, c.gallery)
	return out
}

// FetchGallery replaces the gallery collection with the server's set.
func (c *Client) FetchGallery(ctx context.Context) error {
	return fetchCollection(ctx, c, colGallery, "/gallery", "Failed to fetch gallery", func(items []GalleryItem) {
		c.gallery = items
	})
}

// CreateGalleryItem submits a new gallery item and prepends it, newest first.
func (c *Client) CreateGalleryItem(ctx context.Context, in GalleryItemInput) (*GalleryItem, error) {
	ctx, done := c.beginOp(ctx)
	defer done()

	body, contentType, err := in.form()
	if err != nil {
		return nil, err
	}
	var created GalleryItem
	if err := c.call(ctx, http.MethodPost, "/gallery", body, contentType, &created); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Create gallery failed")
		}
		return nil, err
	}

	c.mu.Lock()
	c.gallery = append([]GalleryItem{created}, c.gallery...)
	c.mu.Unlock()
	c.notifier.Notify("Gallery item added", notify.SeveritySuccess)
	return &created, nil
}

// DeleteGalleryItem removes a gallery item.
func (c *Client) DeleteGalleryItem(ctx context.Context, id string) error {
	ctx, done := c.beginOp(ctx)
	defer done()

	if err := c.call(ctx, http.MethodDelete, "/gallery/"+url.PathEscape(id), nil, "", nil); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Delete gallery failed")
		}
		return err
	}

	c.mu.Lock()
	for i := range c.gallery {
		if c.gallery[i].ID == id {
			c.gallery = append(c.gallery[:i], c.gallery[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.notifier.Notify("Gallery item deleted", notify.SeveritySuccess)
	return nil
}
