package domain

// CartEntry pairs a denormalized product snapshot with a quantity. A cart holds
// at most one entry per product id; quantity is always at least 1.
type CartEntry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
