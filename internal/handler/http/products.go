package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velora/storefront/internal/catalog"
	apperrors "github.com/velora/storefront/pkg/errors"
	"github.com/velora/storefront/pkg/httputil"
	"github.com/velora/storefront/pkg/pagination"
)

// ProductHandler serves the read-only catalog endpoints.
type ProductHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(cat *catalog.Catalog, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: cat, logger: logger}
}

// List handles GET /api/v1/products. All filter, sort, and pagination
// parameters are optional; an omitted page lands on page 1, so clients reset
// to the first page by simply dropping the parameter when a filter changes.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := pagination.FromRequest(r)

	params := catalog.QueryParams{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Stock:    catalog.StockFilter(q.Get("stock")),
		SortBy:   catalog.SortKey(q.Get("sort")),
		SortDir:  catalog.SortDirection(q.Get("dir")),
		Page:     page.Page,
		PerPage:  page.PerPage,
	}

	result := catalog.Query(h.catalog.Products(), params)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Suggest handles GET /api/v1/products/suggest.
func (h *ProductHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions := catalog.Suggest(h.catalog.Products(), r.URL.Query().Get("q"), 0)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: suggestions})
}

// Get handles GET /api/v1/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be an integer"), h.logger)
		return
	}

	product, ok := h.catalog.Get(id)
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("product", idParam), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Categories handles GET /api/v1/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.catalog.Categories()})
}

