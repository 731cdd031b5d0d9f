package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/velora/storefront/internal/domain"
	"github.com/velora/storefront/internal/service"
	"github.com/velora/storefront/pkg/httputil"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

type wishlistView struct {
	UserID    string           `json:"user_id"`
	Items     []domain.Product `json:"items"`
	ItemCount int              `json:"item_count"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func newWishlistView(wishlist *domain.Wishlist) wishlistView {
	return wishlistView{
		UserID:    wishlist.UserID,
		Items:     wishlist.Items,
		ItemCount: wishlist.ItemCount(),
		UpdatedAt: wishlist.UpdatedAt,
	}
}

// Get handles GET /api/v1/wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	wishlist, err := h.service.Get(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistView(wishlist)})
}

// Add handles PUT /api/v1/wishlist/{productId}. Adding a product that is
// already saved is a no-op.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	productID, err := productIDParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	wishlist, err := h.service.Add(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistView(wishlist)})
}

// Remove handles DELETE /api/v1/wishlist/{productId}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	productID, err := productIDParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	wishlist, err := h.service.Remove(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistView(wishlist)})
}

// Contains handles GET /api/v1/wishlist/{productId}.
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	productID, err := productIDParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	saved, err := h.service.Contains(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"product_id": productID,
		"saved":      saved,
	}})
}

// Clear handles DELETE /api/v1/wishlist.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	if err := h.service.Clear(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}
