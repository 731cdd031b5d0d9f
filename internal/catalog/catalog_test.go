package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LoadsEmbeddedFixture(t *testing.T) {
	cat, err := New()
	require.NoError(t, err)
	assert.Equal(t, 14, cat.Len())
}

func TestNewFromJSON_RejectsBadFixtures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty catalog", `{"products": []}`},
		{"duplicate id", `{"products": [
			{"id": 1, "name": "A", "price_cents": 100, "category": "X", "in_stock": true, "rating": 4, "reviews": 1},
			{"id": 1, "name": "B", "price_cents": 200, "category": "X", "in_stock": true, "rating": 4, "reviews": 1}
		]}`},
		{"negative price", `{"products": [
			{"id": 1, "name": "A", "price_cents": -1, "category": "X", "in_stock": true, "rating": 4, "reviews": 1}
		]}`},
		{"rating out of range", `{"products": [
			{"id": 1, "name": "A", "price_cents": 100, "category": "X", "in_stock": true, "rating": 5.5, "reviews": 1}
		]}`},
		{"not json", `{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromJSON([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestCatalog_Get(t *testing.T) {
	cat, err := New()
	require.NoError(t, err)

	product, ok := cat.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Aurora Table Lamp", product.Name)

	_, ok = cat.Get(999)
	assert.False(t, ok)
}

func TestCatalog_ProductsReturnsCopy(t *testing.T) {
	cat, err := New()
	require.NoError(t, err)

	products := cat.Products()
	products[0].Name = "mutated"

	fresh := cat.Products()
	assert.Equal(t, "Aurora Table Lamp", fresh[0].Name)
}

func TestCatalog_Categories(t *testing.T) {
	cat, err := New()
	require.NoError(t, err)

	categories := cat.Categories()
	require.Len(t, categories, 5)

	// Sorted by name, with per-category counts.
	names := make([]string, len(categories))
	total := 0
	for i, c := range categories {
		names[i] = c.Name
		total += c.Count
	}
	assert.Equal(t, []string{"Decor", "Furniture", "Kitchen", "Lighting", "Textiles"}, names)
	assert.Equal(t, cat.Len(), total)
}
