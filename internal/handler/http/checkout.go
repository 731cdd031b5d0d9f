package http

import (
	"log/slog"
	"net/http"

	"github.com/velora/storefront/internal/domain"
	"github.com/velora/storefront/internal/service"
	"github.com/velora/storefront/pkg/httputil"
	"github.com/velora/storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout endpoint.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// PlaceOrderRequest is the JSON request body for checkout. The delivery fee
// is never part of the request; it is priced server-side from the method.
type PlaceOrderRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Phone          string `json:"phone" validate:"required,min=5,max=30"`
	Email          string `json:"email" validate:"omitempty,email"`
	Address        string `json:"address" validate:"max=500"`
	Notes          string `json:"notes" validate:"max=1000"`
	DeliveryMethod string `json:"delivery_method" validate:"required,oneof=standard express pickup"`
	PaymentMethod  string `json:"payment_method" validate:"required,oneof=whatsapp cod card"`
}

type placeOrderView struct {
	Order       *domain.Order `json:"order"`
	Total       string        `json:"total"`
	WhatsAppURL string        `json:"whatsapp_url,omitempty"`
}

// PlaceOrder handles POST /api/v1/checkout.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req PlaceOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.PlaceOrderInput{
		Customer: domain.CustomerInfo{
			Name:    req.Name,
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
			Notes:   req.Notes,
		},
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
	}

	result, err := h.service.PlaceOrder(r.Context(), userID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: placeOrderView{
		Order:       result.Order,
		Total:       domain.FormatCents(result.Order.TotalCents),
		WhatsAppURL: result.WhatsAppURL,
	}})
}
