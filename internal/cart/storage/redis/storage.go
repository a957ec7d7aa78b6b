// Package redis is a Storage backend that keeps the serialized cart as a
// JSON blob under a single namespaced Redis key.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jcmexdev/storefront-cart/internal/cart/domain"
)

// Storage persists the whole cart under one key. There is no TTL: the cart
// lives until the shopper clears it.
type Storage struct {
	client *goredis.Client
	key    string
}

// New builds a Storage for one cart. cartID scopes the key so multiple
// shoppers can share a Redis instance.
func New(client *goredis.Client, cartID string) *Storage {
	return &Storage{
		client: client,
		key:    fmt.Sprintf("storefront:cart:%s", cartID),
	}
}

func (s *Storage) Save(ctx context.Context, items []domain.LineItem) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("redis: marshal cart: %w", err)
	}
	return s.client.Set(ctx, s.key, blob, 0).Err()
}

func (s *Storage) Load(ctx context.Context) ([]domain.LineItem, error) {
	blob, err := s.client.Get(ctx, s.key).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: read cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("redis: corrupt cart blob under %s: %w", s.key, err)
	}
	return items, nil
}
