// Package event publishes storefront domain events. Publishing is
// best-effort: callers log failures and never fail the user operation.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/velora/storefront/internal/domain"
	pkgkafka "github.com/velora/storefront/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicCartCleared     = "storefront.cart.cleared"
	TopicWishlistUpdated = "storefront.wishlist.updated"
	TopicOrderPlaced     = "storefront.order.placed"
	TopicUserRegistered  = "storefront.user.registered"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeOrder    = "order"
	AggregateTypeUser     = "user"
)

// Source identifier for events originating from this service.
const Source = "storefront"

// CartLineData is the line payload within cart and order events.
type CartLineData struct {
	ProductID  int    `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID     string         `json:"user_id"`
	Items      []CartLineData `json:"items"`
	ItemCount  int            `json:"item_count"`
	TotalCents int64          `json:"total_cents"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID string `json:"user_id"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	UserID     string `json:"user_id"`
	ProductIDs []int  `json:"product_ids"`
	ItemCount  int    `json:"item_count"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID          string         `json:"order_id"`
	UserID           string         `json:"user_id"`
	Items            []CartLineData `json:"items"`
	DeliveryMethod   string         `json:"delivery_method"`
	PaymentMethod    string         `json:"payment_method"`
	SubtotalCents    int64          `json:"subtotal_cents"`
	DeliveryFeeCents int64          `json:"delivery_fee_cents"`
	TotalCents       int64          `json:"total_cents"`
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer. A nil kafka producer disables
// publishing entirely; every Publish call becomes a no-op. This is how the
// service runs when no brokers are configured.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

func cartLines(items []domain.CartItem) []CartLineData {
	lines := make([]CartLineData, len(items))
	for i, item := range items {
		lines[i] = CartLineData{
			ProductID:  item.Product.ID,
			Name:       item.Product.Name,
			PriceCents: item.Product.PriceCents,
			Quantity:   item.Quantity,
		}
	}
	return lines
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		UserID:     cart.UserID,
		Items:      cartLines(cart.Items),
		ItemCount:  cart.ItemCount(),
		TotalCents: cart.TotalCents(),
	}

	return p.publish(ctx, TopicCartUpdated, cart.UserID, AggregateTypeCart, data)
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string) error {
	return p.publish(ctx, TopicCartCleared, userID, AggregateTypeCart, CartClearedData{UserID: userID})
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, wishlist *domain.Wishlist) error {
	ids := make([]int, len(wishlist.Items))
	for i, item := range wishlist.Items {
		ids[i] = item.ID
	}

	data := WishlistUpdatedData{
		UserID:     wishlist.UserID,
		ProductIDs: ids,
		ItemCount:  wishlist.ItemCount(),
	}

	return p.publish(ctx, TopicWishlistUpdated, wishlist.UserID, AggregateTypeWishlist, data)
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, userID string, order *domain.Order) error {
	data := OrderPlacedData{
		OrderID:          order.ID,
		UserID:           userID,
		Items:            cartLines(order.Items),
		DeliveryMethod:   string(order.DeliveryMethod),
		PaymentMethod:    string(order.PaymentMethod),
		SubtotalCents:    order.SubtotalCents,
		DeliveryFeeCents: order.DeliveryFeeCents,
		TotalCents:       order.TotalCents,
	}

	return p.publish(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, data)
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}

	return p.publish(ctx, TopicUserRegistered, user.ID, AggregateTypeUser, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	if p.kafka == nil {
		return nil
	}

	evt, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
