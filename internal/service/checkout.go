package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/velora/storefront/internal/domain"
	"github.com/velora/storefront/internal/event"
	apperrors "github.com/velora/storefront/pkg/errors"
)

// CheckoutService turns the current cart into an order and hands it off to
// one of the payment channels. Orders are not persisted; the order lives in
// the response and in the order.placed event.
type CheckoutService struct {
	carts          *CartService
	producer       *event.Producer
	logger         *slog.Logger
	whatsAppNumber string
	paymentDelay   time.Duration
}

// NewCheckoutService creates a new checkout service. whatsAppNumber is the
// store's number in international digits-only form; paymentDelay is the
// simulated processing time for cod and card orders.
func NewCheckoutService(carts *CartService, producer *event.Producer, logger *slog.Logger, whatsAppNumber string, paymentDelay time.Duration) *CheckoutService {
	return &CheckoutService{
		carts:          carts,
		producer:       producer,
		logger:         logger,
		whatsAppNumber: whatsAppNumber,
		paymentDelay:   paymentDelay,
	}
}

// PlaceOrderInput is the checkout request. Delivery fees are looked up
// server-side from the method; any client-submitted totals are ignored.
type PlaceOrderInput struct {
	Customer       domain.CustomerInfo
	DeliveryMethod domain.DeliveryMethod
	PaymentMethod  domain.PaymentMethod
}

// PlaceOrderResult carries the placed order. WhatsAppURL is set only for the
// whatsapp payment method; the caller opens it to finish the handoff.
type PlaceOrderResult struct {
	Order       *domain.Order
	WhatsAppURL string
}

// PlaceOrder validates the checkout request, prices the order from the
// server-side delivery table, runs the payment handoff, clears the cart, and
// publishes order.placed.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if strings.TrimSpace(input.Customer.Name) == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if strings.TrimSpace(input.Customer.Phone) == "" {
		return nil, apperrors.InvalidInput("phone is required")
	}

	delivery, ok := domain.DeliveryOptions[input.DeliveryMethod]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown delivery method %q", input.DeliveryMethod))
	}

	switch input.PaymentMethod {
	case domain.PaymentWhatsApp, domain.PaymentCOD, domain.PaymentCard:
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	subtotal := cart.TotalCents()
	order := &domain.Order{
		ID:               uuid.New().String(),
		Customer:         input.Customer,
		Items:            append([]domain.CartItem{}, cart.Items...),
		DeliveryMethod:   input.DeliveryMethod,
		PaymentMethod:    input.PaymentMethod,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: delivery.FeeCents,
		TotalCents:       subtotal + delivery.FeeCents,
		CreatedAt:        time.Now().UTC(),
	}

	result := &PlaceOrderResult{Order: order}

	switch input.PaymentMethod {
	case domain.PaymentWhatsApp:
		result.WhatsAppURL = s.whatsAppURL(order)
	default:
		// cod and card are simulated gateways: wait out the configured
		// processing time, then succeed.
		if err := s.simulateProcessing(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.producer.PublishOrderPlaced(ctx, userID, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.String("payment_method", string(order.PaymentMethod)),
		slog.String("delivery_method", string(order.DeliveryMethod)),
		slog.Int64("total_cents", order.TotalCents),
	)

	return result, nil
}

func (s *CheckoutService) simulateProcessing(ctx context.Context) error {
	if s.paymentDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.paymentDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *CheckoutService) whatsAppURL(order *domain.Order) string {
	query := url.Values{"text": {BuildOrderMessage(order)}}
	return fmt.Sprintf("https://wa.me/%s?%s", s.whatsAppNumber, query.Encode())
}

// BuildOrderMessage renders the plain-text order summary sent over WhatsApp.
func BuildOrderMessage(order *domain.Order) string {
	var b strings.Builder

	b.WriteString("New Order\n\n")
	b.WriteString("Customer:\n")
	fmt.Fprintf(&b, "Name: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", order.Customer.Phone)
	if order.Customer.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", order.Customer.Email)
	}
	if order.Customer.Address != "" {
		fmt.Fprintf(&b, "\nDelivery address:\n%s\n", order.Customer.Address)
	}

	b.WriteString("\nItems:\n")
	for _, item := range order.Items {
		lineTotal := item.Product.PriceCents * int64(item.Quantity)
		fmt.Fprintf(&b, "- %s x%d - %s\n", item.Product.Name, item.Quantity, domain.FormatCents(lineTotal))
	}

	delivery := domain.DeliveryOptions[order.DeliveryMethod]
	fmt.Fprintf(&b, "\nDelivery: %s (+%s)\n", delivery.Name, domain.FormatCents(order.DeliveryFeeCents))
	fmt.Fprintf(&b, "Total: %s\n", domain.FormatCents(order.TotalCents))

	if order.Customer.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", order.Customer.Notes)
	}

	b.WriteString("\nPlease confirm this order and send payment instructions. Thank you!")

	return b.String()
}
