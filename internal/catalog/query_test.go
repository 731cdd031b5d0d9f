package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront/internal/domain"
)

func fixtureProducts(t *testing.T) []domain.Product {
	t.Helper()
	cat, err := New()
	require.NoError(t, err)
	return cat.Products()
}

func ids(items []domain.Product) []int {
	out := make([]int, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestQuery_NoFiltersReturnsEverything(t *testing.T) {
	products := fixtureProducts(t)

	result := Query(products, QueryParams{})
	assert.Equal(t, 14, result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, defaultPerPage, result.PerPage)
	assert.Len(t, result.Items, 14)
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	products := fixtureProducts(t)
	before := ids(products)

	Query(products, QueryParams{SortBy: SortPrice, SortDir: SortDesc})

	assert.Equal(t, before, ids(products))
}

func TestQuery_IsDeterministic(t *testing.T) {
	products := fixtureProducts(t)
	params := QueryParams{Search: "la", SortBy: SortRating, SortDir: SortDesc}

	first := Query(products, params)
	second := Query(products, params)

	assert.Equal(t, ids(first.Items), ids(second.Items))
}

func TestQuery_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	products := fixtureProducts(t)

	// "cha" hits "Fjord Lounge Chair" by name and "Cinder Espresso Cups"
	// through its charcoal description.
	result := Query(products, QueryParams{Search: "CHA"})
	assert.ElementsMatch(t, []int{4, 12}, ids(result.Items))
}

func TestQuery_SearchMatchesCategory(t *testing.T) {
	products := fixtureProducts(t)

	result := Query(products, QueryParams{Search: "textil"})
	assert.ElementsMatch(t, []int{7, 8}, ids(result.Items))
}

func TestQuery_CategoryFilter(t *testing.T) {
	products := fixtureProducts(t)

	result := Query(products, QueryParams{Category: "Lighting"})
	assert.ElementsMatch(t, []int{1, 2, 3}, ids(result.Items))

	// "all" and empty mean no category constraint.
	assert.Equal(t, 14, Query(products, QueryParams{Category: "all"}).TotalCount)
	assert.Equal(t, 14, Query(products, QueryParams{Category: ""}).TotalCount)

	// Unknown categories match nothing rather than erroring.
	assert.Equal(t, 0, Query(products, QueryParams{Category: "Garden"}).TotalCount)
}

func TestQuery_StockFilter(t *testing.T) {
	products := fixtureProducts(t)

	out := Query(products, QueryParams{Stock: StockOut})
	assert.ElementsMatch(t, []int{3, 6, 10}, ids(out.Items))

	in := Query(products, QueryParams{Stock: StockIn})
	assert.Equal(t, 11, in.TotalCount)

	all := Query(products, QueryParams{Stock: StockAll})
	assert.Equal(t, 14, all.TotalCount)
}

func TestQuery_FiltersComposeWithAND(t *testing.T) {
	products := fixtureProducts(t)

	result := Query(products, QueryParams{
		Search:   "lamp",
		Category: "Lighting",
		Stock:    StockIn,
	})
	assert.ElementsMatch(t, []int{1, 2}, ids(result.Items))
}

func TestQuery_SortByPriceDesc(t *testing.T) {
	products := fixtureProducts(t)

	result := Query(products, QueryParams{SortBy: SortPrice, SortDir: SortDesc})
	prices := make([]int64, len(result.Items))
	for i, p := range result.Items {
		prices[i] = p.PriceCents
	}
	for i := 1; i < len(prices); i++ {
		assert.GreaterOrEqual(t, prices[i-1], prices[i])
	}
	assert.Equal(t, 14, result.Items[0].ID)
}

func TestQuery_SortByNameIsCaseInsensitive(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "zinc tray", InStock: true},
		{ID: 2, Name: "Alder stool", InStock: true},
		{ID: 3, Name: "birch lamp", InStock: true},
	}

	result := Query(products, QueryParams{SortBy: SortName, SortDir: SortAsc})
	assert.Equal(t, []int{2, 3, 1}, ids(result.Items))
}

func TestQuery_SortIsStableOnTies(t *testing.T) {
	products := fixtureProducts(t)

	// Within one category, equal sort keys keep fixture order.
	result := Query(products, QueryParams{SortBy: SortCategory, SortDir: SortAsc, Category: "Furniture"})
	assert.Equal(t, []int{4, 5, 6, 14}, ids(result.Items))
}

func TestQuery_Pagination(t *testing.T) {
	products := fixtureProducts(t)

	// 14 products, 4 per page -> 4 pages, last one short.
	page1 := Query(products, QueryParams{PerPage: 4})
	assert.Equal(t, 4, page1.TotalPages)
	assert.Len(t, page1.Items, 4)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)

	page4 := Query(products, QueryParams{PerPage: 4, Page: 4})
	assert.Len(t, page4.Items, 2)
	assert.False(t, page4.HasNext)
	assert.True(t, page4.HasPrev)
}

func TestQuery_PageBeyondEndIsEmpty(t *testing.T) {
	products := fixtureProducts(t)

	result := Query(products, QueryParams{PerPage: 4, Page: 99})
	assert.Empty(t, result.Items)
	assert.Equal(t, 14, result.TotalCount)
	assert.False(t, result.HasNext)
}

func TestQuery_NormalizesPageAndPerPage(t *testing.T) {
	products := fixtureProducts(t)

	result := Query(products, QueryParams{Page: -5, PerPage: -1})
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, defaultPerPage, result.PerPage)

	capped := Query(products, QueryParams{PerPage: 500})
	assert.Equal(t, maxPerPage, capped.PerPage)
}

func TestSuggest(t *testing.T) {
	products := fixtureProducts(t)

	// Name matches rank ahead of description/category matches.
	suggestions := Suggest(products, "lamp", 0)
	require.Len(t, suggestions, 2)
	assert.Equal(t, 1, suggestions[0].ID)
	assert.Equal(t, 2, suggestions[1].ID)

	assert.Empty(t, Suggest(products, "", 0))
	assert.Empty(t, Suggest(products, "   ", 0))
	assert.Empty(t, Suggest(products, "zzzz", 0))
}

func TestSuggest_RespectsLimit(t *testing.T) {
	products := fixtureProducts(t)

	suggestions := Suggest(products, "a", 3)
	assert.Len(t, suggestions, 3)
}
