package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/bunaifromhills/admin-console/internal/notify"
)

// BlogInput carries the fields of a blog create/update submission. Nil fields
// are omitted from the multipart form entirely; Tags go as a JSON-encoded
// string when present.
type BlogInput struct {
	Title     *string
	Excerpt   *string
	Content   *string
	Author    *string
	Category  *string
	ReadTime  *string
	Tags      []string
	Published *bool
	Image     *Upload
}

func (in BlogInput) form() (io.Reader, string, error) {
	f := newForm()
	f.optString("title", in.Title)
	f.optString("excerpt", in.Excerpt)
	f.optString("content", in.Content)
	f.optString("author", in.Author)
	f.optString("category", in.Category)
	f.optString("readTime", in.ReadTime)
	f.jsonSlice("tags", in.Tags)
	f.optBool("published", in.Published)
	f.file("image", in.Image)
	return f.close()
}

// Blogs returns a snapshot of the blog collection in server order.
func (c *Client) Blogs() []BlogPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]BlogPost, len(c.blogs))
	copy(out, c.blogs)
	return out
}

// FetchBlogs replaces the blog collection with the server's set.
func (c *Client) FetchBlogs(ctx context.Context) error {
	return fetchCollection(ctx, c, colBlogs, "/blog", "Failed to fetch blogs", func(items []BlogPost) {
		c.blogs = items
	})
}

// CreateBlog submits a new post and prepends it, newest first.
func (c *Client) CreateBlog(ctx context.Context, in BlogInput) (*BlogPost, error) {
	ctx, done := c.beginOp(ctx)
	defer done()

	body, contentType, err := in.form()
	if err != nil {
		return nil, err
	}
	var created BlogPost
	if err := c.call(ctx, http.MethodPost, "/blog", body, contentType, &created); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Create blog failed")
		}
		return nil, err
	}

	c.mu.Lock()
	c.blogs = append([]BlogPost{created}, c.blogs...)
	c.mu.Unlock()
	c.notifier.Notify("Blog post created", notify.SeveritySuccess)
	return &created, nil
}

// UpdateBlog submits changed fields for a post and replaces the matching
// entry in place.
func (c *Client) UpdateBlog(ctx context.Context, id string, in BlogInput) (*BlogPost, error) {
	ctx, done := c.beginOp(ctx)
	defer done()

	body, contentType, err := in.form()
	if err != nil {
		return nil, err
	}
	var updated BlogPost
	if err := c.call(ctx, http.MethodPut, "/blog/"+url.PathEscape(id), body, contentType, &updated); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Update blog failed")
		}
		return nil, err
	}

	c.mu.Lock()
	for i := range c.blogs {
		if c.blogs[i].ID == id {
			c.blogs[i] = updated
			break
		}
	}
	c.mu.Unlock()
	c.notifier.Notify("Blog post updated", notify.SeveritySuccess)
	return &updated, nil
}

// DeleteBlog removes a post.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	ctx, done := c.beginOp(ctx)
	defer done()

	if err := c.call(ctx, http.MethodDelete, "/blog/"+url.PathEscape(id), nil, "", nil); err != nil {
		if !isCancellation(err) {
			c.fail(err, "Delete blog failed")
		}
		return err
	}

	c.mu.Lock()
	for i := range c.blogs {
		if c.blogs[i].ID == id {
			c.blogs = append(c.blogs[:i], c.blogs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.notifier.Notify("Blog post deleted", notify.SeveritySuccess)
	return nil
}
