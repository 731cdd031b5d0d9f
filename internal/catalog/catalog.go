// Package catalog holds the read-only product catalog and the query pipeline
// that derives visible product pages from it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/velora/storefront/internal/domain"
)

//go:embed products.json
var productsJSON []byte

type fixture struct {
	Products []domain.Product `json:"products"`
}

// Catalog is the immutable in-memory product list. It is built once at
// startup and only ever read afterwards, so it is safe for concurrent use.
type Catalog struct {
	products []domain.Product
	byID     map[int]domain.Product
}

// New loads the embedded product fixture.
func New() (*Catalog, error) {
	return NewFromJSON(productsJSON)
}

// NewFromJSON builds a catalog from raw fixture JSON.
func NewFromJSON(data []byte) (*Catalog, error) {
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse product fixture: %w", err)
	}
	if len(f.Products) == 0 {
		return nil, fmt.Errorf("product fixture is empty")
	}

	byID := make(map[int]domain.Product, len(f.Products))
	for _, p := range f.Products {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("product fixture: duplicate id %d", p.ID)
		}
		if p.PriceCents < 0 {
			return nil, fmt.Errorf("product %d: negative price", p.ID)
		}
		if p.Rating < 0 || p.Rating > 5 {
			return nil, fmt.Errorf("product %d: rating %v out of range", p.ID, p.Rating)
		}
		if p.Reviews < 0 {
			return nil, fmt.Errorf("product %d: negative review count", p.ID)
		}
		byID[p.ID] = p
	}

	return &Catalog{products: f.Products, byID: byID}, nil
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the full product list in fixture order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id int) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// CategorySummary is a category label with its product count.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories returns the distinct categories with product counts, sorted by
// name.
func (c *Catalog) Categories() []CategorySummary {
	counts := make(map[string]int)
	for _, p := range c.products {
		counts[p.Category]++
	}

	out := make([]CategorySummary, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategorySummary{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
