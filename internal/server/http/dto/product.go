package dto

// ProductQuery selects a catalog page.
type ProductQuery struct {
	Category int64 `form:"category"`
	Page     int   `form:"page"`
	PerPage  int   `form:"per_page"`
}
