package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Category groups listings under a name and a unique URL-safe slug.
// Corresponds to the 'categories' table.
type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" gorm:"uniqueIndex" db:"slug"`
}

// NewCategory builds a category, deriving the URL slug from the name when one
// is not given.
func NewCategory(name, slugValue string) Category {
	if slugValue == "" {
		slugValue = slug.Make(name)
	}
	return Category{
		ID:   uuid.New(),
		Name: name,
		Slug: slugValue,
	}
}

func (Category) TableName() string {
	return "categories"
}

// Listing is an item up for auction.
// BidCurrent starts at the seller-set price and only ever moves up while the
// listing is active. IsActive goes true -> false exactly once; there is no
// reopen path.
type Listing struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	BidCurrent  float64    `json:"bid_current" db:"bid_current"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	SellerID    *uuid.UUID `json:"seller_id" db:"seller_id"`
	CategoryID  *uuid.UUID `json:"category_id" db:"category_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}
