package catalog

import (
	"sort"
	"strings"

	"github.com/velora/storefront/internal/domain"
)

// StockFilter is the tri-state availability predicate.
type StockFilter string

const (
	StockAll StockFilter = "all"
	StockIn  StockFilter = "in-stock"
	StockOut StockFilter = "out-of-stock"
)

// SortKey selects the field products are ordered by.
type SortKey string

const (
	SortName     SortKey = "name"
	SortPrice    SortKey = "price"
	SortRating   SortKey = "rating"
	SortReviews  SortKey = "reviews"
	SortCategory SortKey = "category"
)

// SortDirection flips the comparator.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// QueryParams are the inputs to the query pipeline.
type QueryParams struct {
	Search   string
	Category string
	Stock    StockFilter
	SortBy   SortKey
	SortDir  SortDirection
	Page     int
	PerPage  int
}

// QueryResult is one visible page of products plus the match totals.
type QueryResult struct {
	Items      []domain.Product `json:"items"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
	HasNext    bool             `json:"has_next"`
	HasPrev    bool             `json:"has_prev"`
}

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Query runs the filter/sort/paginate pipeline over the given product list.
// It is a pure function: the input slice is never mutated, and identical
// inputs produce identical, identically ordered output. Filters compose with
// AND; the sort is stable, so equal keys keep their pre-sort relative order.
func Query(products []domain.Product, p QueryParams) QueryResult {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}

	matched := make([]domain.Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(p.Search))
	for _, prod := range products {
		if search != "" && !matchesSearch(prod, search) {
			continue
		}
		if p.Category != "" && p.Category != "all" && prod.Category != p.Category {
			continue
		}
		if !matchesStock(prod, p.Stock) {
			continue
		}
		matched = append(matched, prod)
	}

	sortProducts(matched, p.SortBy, p.SortDir)

	totalCount := len(matched)
	totalPages := totalCount / p.PerPage
	if totalCount%p.PerPage > 0 {
		totalPages++
	}

	start := (p.Page - 1) * p.PerPage
	if start > totalCount {
		start = totalCount
	}
	end := start + p.PerPage
	if end > totalCount {
		end = totalCount
	}

	return QueryResult{
		Items:      matched[start:end],
		TotalCount: totalCount,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1 && totalPages > 0,
	}
}

// matchesSearch reports whether the lowercased query is a substring of the
// product's name, description, or category (OR across the three fields).
func matchesSearch(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

func matchesStock(p domain.Product, f StockFilter) bool {
	switch f {
	case StockIn:
		return p.InStock
	case StockOut:
		return !p.InStock
	default: // StockAll or unset
		return true
	}
}

// sortProducts orders the slice in place with a stable sort. Name and
// category compare case-insensitively; price, rating, and reviews compare
// numerically.
func sortProducts(items []domain.Product, key SortKey, dir SortDirection) {
	var less func(a, b domain.Product) bool

	switch key {
	case SortPrice:
		less = func(a, b domain.Product) bool { return a.PriceCents < b.PriceCents }
	case SortRating:
		less = func(a, b domain.Product) bool { return a.Rating < b.Rating }
	case SortReviews:
		less = func(a, b domain.Product) bool { return a.Reviews < b.Reviews }
	case SortCategory:
		less = func(a, b domain.Product) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	default: // SortName or unset
		less = func(a, b domain.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if dir == SortDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// suggestLimit caps type-ahead suggestion results.
const suggestLimit = 10

// Suggest returns up to limit products matching the query for
// search-as-you-type. Name matches rank ahead of description/category
// matches; within each group, fixture order is preserved. An empty query
// yields no suggestions.
func Suggest(products []domain.Product, query string, limit int) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Product{}
	}
	if limit <= 0 || limit > suggestLimit {
		limit = suggestLimit
	}

	out := make([]domain.Product, 0, limit)
	seen := make(map[int]struct{}, limit)

	for _, p := range products {
		if len(out) == limit {
			return out
		}
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
			seen[p.ID] = struct{}{}
		}
	}

	for _, p := range products {
		if len(out) == limit {
			break
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		if strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}

	return out
}
