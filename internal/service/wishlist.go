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

// WishlistService implements the wishlist store. The wishlist is a set keyed
// by product ID, independent of the cart: out-of-stock products may be saved,
// and clearing one store never touches the other.
type WishlistService struct {
	repo     repository.WishlistRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
	}
}

// Get returns the user's wishlist. A missing or corrupt snapshot rehydrates
// to an empty wishlist.
func (s *WishlistService) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	return s.loadOrEmpty(ctx, userID)
}

// Add saves the given product to the user's wishlist. Adding a product that
// is already saved is a no-op; insertion order is preserved.
func (s *WishlistService) Add(ctx context.Context, userID string, productID int) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	product, ok := s.catalog.Get(productID)
	if !ok {
		return nil, apperrors.NotFound("product", fmt.Sprint(productID))
	}

	wishlist, err := s.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}

	if wishlist.Contains(productID) {
		return wishlist, nil
	}

	wishlist.Items = append(wishlist.Items, product)

	if err := s.persist(ctx, wishlist); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product saved to wishlist",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
		slog.Int("item_count", wishlist.ItemCount()),
	)

	return wishlist, nil
}

// Remove deletes the given product from the user's wishlist. Removing an
// absent product is a no-op, not an error.
func (s *WishlistService) Remove(ctx context.Context, userID string, productID int) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	wishlist, err := s.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range wishlist.Items {
		if wishlist.Items[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return wishlist, nil
	}

	wishlist.Items = append(wishlist.Items[:idx], wishlist.Items[idx+1:]...)

	if err := s.persist(ctx, wishlist); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product removed from wishlist",
		slog.String("user_id", userID),
		slog.Int("product_id", productID),
	)

	return wishlist, nil
}

// Contains reports whether the given product is saved in the user's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID string, productID int) (bool, error) {
	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return wishlist.Contains(productID), nil
}

// Clear empties the user's wishlist and deletes its snapshot.
func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistUpdated(ctx, domain.NewWishlist(userID)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist cleared", slog.String("user_id", userID))
	return nil
}

func (s *WishlistService) persist(ctx context.Context, wishlist *domain.Wishlist) error {
	wishlist.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, wishlist); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistUpdated(ctx, wishlist); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("user_id", wishlist.UserID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (s *WishlistService) loadOrEmpty(ctx context.Context, userID string) (*domain.Wishlist, error) {
	wishlist, err := s.repo.Get(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return domain.NewWishlist(userID), nil
		case errors.Is(err, apperrors.ErrSnapshotCorrupt):
			s.logger.WarnContext(ctx, "discarding corrupt wishlist snapshot",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return domain.NewWishlist(userID), nil
		default:
			return nil, fmt.Errorf("get wishlist: %w", err)
		}
	}
	return wishlist, nil
}
