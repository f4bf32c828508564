package gateway

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an item in the storefront catalogue.
type Product struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	InStock     bool            `json:"inStock"`
	Image       string          `json:"image,omitempty"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CustomerInfo is the contact snapshot captured at checkout.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// Order is placed by the storefront; the console only reads orders and
// advances their status.
type Order struct {
	ID            string          `json:"_id"`
	Items         []OrderItem     `json:"items"`
	CustomerInfo  CustomerInfo    `json:"customerInfo"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	OrderStatus   Status          `json:"orderStatus"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Customer is an inbound contact-form inquiry.
type Customer struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// GalleryItem is a photo in the media gallery.
type GalleryItem struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BlogPost is a journal entry on the storefront.
type BlogPost struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Content   string    `json:"content,omitempty"`
	Author    string    `json:"author,omitempty"`
	Category  string    `json:"category,omitempty"`
	ReadTime  string    `json:"readTime,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Published bool      `json:"published"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Loading holds one flag per collection, true while a fetch for that
// collection is outstanding.
type Loading struct {
	Products  bool `json:"products"`
	Orders    bool `json:"orders"`
	Customers bool `json:"customers"`
	Gallery   bool `json:"gallery"`
	Blogs     bool `json:"blogs"`
}

// Any reports whether any collection is currently loading.
func (l Loading) Any() bool {
	return l.Products || l.Orders || l.Customers || l.Gallery || l.Blogs
}
