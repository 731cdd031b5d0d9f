package domain

import "time"

// CartItem is a single cart line: a product snapshot plus a quantity.
// Quantity is always >= 1; a line whose quantity would drop to zero is
// removed from the cart instead.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart holds a user's line items in insertion order. The aggregates are
// derived from Items on demand and are never stored independently.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for the given user.
func NewCart(userID string) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     []CartItem{},
		UpdatedAt: time.Now().UTC(),
	}
}

// TotalCents returns the cart total in cents: sum of price x quantity over
// all lines.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Product.PriceCents * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the line holding the given product ID,
// or -1 when no such line exists. There is at most one line per product.
func (c *Cart) FindItemIndex(productID int) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
