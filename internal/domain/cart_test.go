package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartAggregates(t *testing.T) {
	cart := NewCart("user-1")
	assert.Equal(t, int64(0), cart.TotalCents())
	assert.Equal(t, 0, cart.ItemCount())

	cart.Items = []CartItem{
		{Product: Product{ID: 1, PriceCents: 7900}, Quantity: 2},
		{Product: Product{ID: 2, PriceCents: 14900}, Quantity: 1},
	}

	assert.Equal(t, int64(2*7900+14900), cart.TotalCents())
	assert.Equal(t, 3, cart.ItemCount())
}

func TestCartFindItemIndex(t *testing.T) {
	cart := NewCart("user-1")
	cart.Items = []CartItem{
		{Product: Product{ID: 5}, Quantity: 1},
		{Product: Product{ID: 9}, Quantity: 1},
	}

	assert.Equal(t, 0, cart.FindItemIndex(5))
	assert.Equal(t, 1, cart.FindItemIndex(9))
	assert.Equal(t, -1, cart.FindItemIndex(42))
}

func TestWishlistContains(t *testing.T) {
	wishlist := NewWishlist("user-1")
	assert.False(t, wishlist.Contains(1))

	wishlist.Items = []Product{{ID: 1}, {ID: 3}}
	assert.True(t, wishlist.Contains(1))
	assert.True(t, wishlist.Contains(3))
	assert.False(t, wishlist.Contains(2))
	assert.Equal(t, 2, wishlist.ItemCount())
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{99, "$0.99"},
		{100, "$1.00"},
		{1999, "$19.99"},
		{54900, "$549.00"},
		{-250, "-$2.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCents(tt.cents))
	}
}
