package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/velora/storefront/internal/domain"
	apperrors "github.com/velora/storefront/pkg/errors"
)

const userKeyPrefix = "user:"

// UserRepository stores mock-auth account records under user:<email>.
// Accounts never expire.
type UserRepository struct {
	client *redis.Client
}

// NewUserRepository creates a Redis-backed user repository.
func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

func userKey(email string) string {
	return userKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// GetByEmail retrieves an account record by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	key := userKey(email)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, fmt.Errorf("redis get user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, apperrors.SnapshotCorrupt(key, err)
	}

	return &user, nil
}

// Save overwrites the account record for the user's email.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	if err := r.client.Set(ctx, userKey(user.Email), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set user: %w", err)
	}

	return nil
}

// Delete removes the account record for the given email.
func (r *UserRepository) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, userKey(email)).Err(); err != nil {
		return fmt.Errorf("redis del user: %w", err)
	}
	return nil
}
