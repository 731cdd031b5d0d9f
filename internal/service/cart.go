package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/velora/storefront/internal/catalog"
	"github.com/velora/storefront/internal/domain"
	"github.com/velora/storefront/internal/event"
	"github.com/velora/storefront/internal/repository"
	apperrors "github.com/velora/storefront/pkg/errors"
)

// MaxQuantityPerLine caps the quantity of a single cart line.
const MaxQuantityPerLine = 100

// CartService implements the cart store: all mutations recompute the derived
// aggregates and synchronously persist the full snapshot before returning.
type CartService struct {
	repo     repository.CartRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
	}
}

// AddItemResult reports the outcome of an AddItem call. When the product is
// out of stock, Added is false and Notice carries the user-visible message;
// the cart is returned unchanged.
type AddItemResult struct {
	Cart   *domain.Cart
	Added  bool
	Notice string
}

// Get returns the user's cart. A missing or corrupt snapshot rehydrates to an
// empty cart; it is never a user-facing error.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	return s.loadOrEmpty(ctx, userID)
}

// AddItem adds one unit of the given product to the user's cart. An existing
// line for the product increments its quantity; otherwise a new line with
// quantity 1 is appended, preserving insertion order. Adding an out-of-stock
// product is a user-noticed no-op, not an error.
func (s *CartService) AddItem(ctx context.Context, userID string, productID int) (*AddItemResult, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	product, ok := s.catalog.Get(productID)
	if !ok {
		return nil, apperrors.NotFound("product", fmt.Sprint(productID))
	}

	cart, err := s.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !product.InStock {
		s.logger.InfoContext(ctx, "rejected out-of-stock add to cart",
			slog.String("user_id", userID),
			slog.Int("product_id", productID),
		)
		return &AddItemResult{
			Cart:   cart,
			Notice: fmt.Sprintf("%s is currently out of stock", product.Name),
		}, nil
	}

	if idx := cart.FindItemIndex(productID); idx >= 0 {
		if cart.Items[idx].Quantity >= MaxQuantityPerLine {
			return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
		}
		cart.Items[idx].Quantity++
	} else {
		cart.Items = append(cart.Items, domain.CartItem{Product: product, Quantity: 1})
	}

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return &AddItemResult{Cart: cart, Added: true}, nil
}

// UpdateQuantity sets the quantity of the line holding productID. A quantity
// of zero or less removes the line, exactly like RemoveItem. Updating an
// absent line is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, err := s.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items[idx].Quantity = quantity

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem deletes the line holding productID. Removing an absent line is a
// no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
	)

	return cart, nil
}

// Clear empties the user's cart and deletes its snapshot.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))
	return nil
}

// persist saves the snapshot and publishes cart.updated. Event failures are
// logged, never returned.
func (s *CartService) persist(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// loadOrEmpty rehydrates the user's cart snapshot. Missing snapshots yield an
// empty cart; corrupt snapshots are discarded with a log line and also yield
// an empty cart, so a format change never breaks the store.
func (s *CartService) loadOrEmpty(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return domain.NewCart(userID), nil
		case errors.Is(err, apperrors.ErrSnapshotCorrupt):
			s.logger.WarnContext(ctx, "discarding corrupt cart snapshot",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return domain.NewCart(userID), nil
		default:
			return nil, fmt.Errorf("get cart: %w", err)
		}
	}
	return cart, nil
}
