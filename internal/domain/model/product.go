package model

import (
	"time"
)

type ProductCategory string

const (
	CategoryMen         ProductCategory = "Men"
	CategoryWomen       ProductCategory = "Women"
	CategoryKids        ProductCategory = "Kids"
	CategoryAccessories ProductCategory = "Accessories"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids, CategoryAccessories:
		return true
	}
	return false
}

type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Category    ProductCategory `json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
	PriceCents  int64           `json:"price_cents"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
