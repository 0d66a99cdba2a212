package model

import "time"

// Product represents a catalog entry. Rating and NumReviews are derived from
// the reviews and recomputed whenever a review is added.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	Rating      float64   `json:"rating"`
	NumReviews  int       `json:"num_reviews"`
	Reviews     []Review  `json:"reviews,omitempty"`
	SellerID    string    `json:"seller_id"`
	SellerName  string    `json:"seller_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Review is a single customer review. Name is a snapshot of the reviewer's
// name at submission time; a user may review a given product at most once.
type Review struct {
	ID        int64     `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest is the body for creating a catalog entry
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Images      []string `json:"images" binding:"required,min=1"`
}

// UpdateProductRequest carries a partial product update
type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty" binding:"omitempty,gte=0"`
	Category    *string   `json:"category,omitempty"`
	Stock       *int      `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Images      *[]string `json:"images,omitempty" binding:"omitempty,min=1"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

// AddReviewRequest is the body of POST /products/:id/reviews
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// ProductFilters contains the optional listing filters
type ProductFilters struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
	Search   *string
	Sort     string
	Order    string
	Page     int
	Limit    int
}

// Pagination is the listing metadata returned alongside the page of products
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasNext       bool `json:"hasNext"`
	HasPrev       bool `json:"hasPrev"`
}

// ProductPage is one page of listing results
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
