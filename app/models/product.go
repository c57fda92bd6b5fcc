package models

import "time"

// Product is one sellable listing. Each product belongs to exactly one
// farmer; collections are partitioned per farmer in the kv layer.
//
// InStock is derived from StockQuantity on every create/update and never
// set independently.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Unit          string    `json:"unit"`
	Category      string    `json:"category"`
	FarmerID      int64     `json:"farmerId"`
	FarmerName    string    `json:"farmerName"`
	Location      string    `json:"location"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	InStock       bool      `json:"inStock"`
	StockQuantity int       `json:"stockQuantity"`
	DateAdded     time.Time `json:"dateAdded"`
}

// CreateProductData carries the farmer-supplied fields of a new product.
type CreateProductData struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"gte=0"`
	Unit          string  `json:"unit" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	StockQuantity int     `json:"stockQuantity" validate:"gte=0"`
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Unit          *string  `json:"unit,omitempty"`
	Category      *string  `json:"category,omitempty"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	StockQuantity *int     `json:"stockQuantity,omitempty" validate:"omitempty,gte=0"`
}
