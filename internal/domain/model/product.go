package model

import "time"

// Product is a catalog item.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OnSale      bool      `json:"on_sale"`
	CategoryID  int64     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	DefaultProductsPerPage = 16
	MaxProductsPerPage     = 100
)

// ProductFilter selects a page of catalog items. Zero CategoryID means all categories.
type ProductFilter struct {
	CategoryID int64
	Page       int
	PerPage    int
}

// Normalize clamps paging to sane bounds.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = DefaultProductsPerPage
	}
	if f.PerPage > MaxProductsPerPage {
		f.PerPage = MaxProductsPerPage
	}
	return f
}

// Offset returns the number of rows to skip.
func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}
