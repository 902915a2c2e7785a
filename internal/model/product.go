package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the closed set of catalogue sections.
type Category string

const (
	CategoryClothing    Category = "CLOTHING"
	CategoryAccessories Category = "ACCESSORIES"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryClothing, CategoryAccessories}

// ParseCategory validates a raw category value. Matching is case-insensitive.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", InvalidInput("Unknown category: " + raw)
}

// Product represents an item in the catalogue.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Images      []string        `json:"images" db:"images"`
	Category    Category        `json:"category" db:"category"`
	Stock       int             `json:"stock" db:"stock"`
	Sizes       []string        `json:"sizes" db:"sizes"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// HasSize reports whether size is one of the product's variants.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// ProductInput is the admin payload for creating a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
	Sizes       []string
}

// ImageUpload is one image attached to a product creation request.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}
