package domain

import "time"

// Wishlist holds a user's saved products. Set semantics by product ID:
// adding a product that is already present is a no-op.
type Wishlist struct {
	UserID    string    `json:"user_id"`
	Items     []Product `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWishlist creates an empty wishlist for the given user.
func NewWishlist(userID string) *Wishlist {
	return &Wishlist{
		UserID:    userID,
		Items:     []Product{},
		UpdatedAt: time.Now().UTC(),
	}
}

// ItemCount returns the number of saved products.
func (w *Wishlist) ItemCount() int {
	return len(w.Items)
}

// Contains reports whether the given product ID is saved.
func (w *Wishlist) Contains(productID int) bool {
	return w.indexOf(productID) >= 0
}

func (w *Wishlist) indexOf(productID int) int {
	for i := range w.Items {
		if w.Items[i].ID == productID {
			return i
		}
	}
	return -1
}
