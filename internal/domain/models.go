package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for display and filtering
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// Product is a catalog entry. Prices are integer PKR units.
type Product struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Price       int64
	CategoryID  *uuid.UUID
	ImageURL    string
	Images      []string
	Sizes       []string
	Stock       int
	Featured    bool
	CreatedAt   time.Time
	Category    *Category
}

// ImageKey returns the stable key used to assign blob-store images to
// the product: the slug, falling back to the id for unslugged rows.
func (p Product) ImageKey() string {
	if p.Slug != "" {
		return p.Slug
	}
	return p.ID.String()
}

// Order is an immutable snapshot of a checkout submission. Later cart
// mutations never affect a placed order.
type Order struct {
	ID              uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	City            string
	PaymentMethod   string
	Items           []OrderItem
	TotalAmount     int64
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is one cart line captured at submission time
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	ImageURL  string    `json:"image_url"`
}

// Subscriber is a newsletter signup. Email is unique.
type Subscriber struct {
	ID           uuid.UUID
	Email        string
	SubscribedAt time.Time
}

// ContactMessage is a contact-form submission
type ContactMessage struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// StoreImage is one image row in the blob store
type StoreImage struct {
	ID        int64
	Name      string
	Category  string
	Data      []byte
	CreatedAt time.Time
}
