package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/velora/storefront/internal/domain"
	"github.com/velora/storefront/internal/service"
	apperrors "github.com/velora/storefront/pkg/errors"
	"github.com/velora/storefront/pkg/httputil"
	"github.com/velora/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: svc, logger: logger}
}

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gte=1"`
}

// UpdateQuantityRequest is the JSON request body for updating a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartView is the cart response shape with derived aggregates precomputed.
type cartView struct {
	UserID        string            `json:"user_id"`
	Items         []domain.CartItem `json:"items"`
	ItemCount     int               `json:"item_count"`
	SubtotalCents int64             `json:"subtotal_cents"`
	Subtotal      string            `json:"subtotal"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Notice        string            `json:"notice,omitempty"`
}

func newCartView(cart *domain.Cart, notice string) cartView {
	subtotal := cart.TotalCents()
	return cartView{
		UserID:        cart.UserID,
		Items:         cart.Items,
		ItemCount:     cart.ItemCount(),
		SubtotalCents: subtotal,
		Subtotal:      domain.FormatCents(subtotal),
		UpdatedAt:     cart.UpdatedAt,
		Notice:        notice,
	}
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	cart, err := h.service.Get(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart, "")})
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.AddItem(r.Context(), userID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(result.Cart, result.Notice)})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productId}. A quantity of
// zero removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	productID, err := productIDParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart, "")})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	productID, err := productIDParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart, "")})
}

// Clear handles DELETE /api/v1/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	if err := h.service.Clear(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}

func productIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		return 0, apperrors.InvalidInput("productId must be an integer")
	}
	return id, nil
}
