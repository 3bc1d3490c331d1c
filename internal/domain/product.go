package domain

// Rating is the aggregate review score the catalog service attaches to a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a single catalog item. Products are created and updated only by the
// external catalog service; this core treats them as immutable snapshots.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
}

// ProductInput is the payload for creating a new product through the catalog service.
type ProductInput struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// CategoryAll is the filter value that selects every category.
const CategoryAll = "all"
