package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ashirarif0999-sketch/blueember/internal/domain"
	"github.com/ashirarif0999-sketch/blueember/internal/logger"
)

// CartStore persists the cart and wishlist blobs. Same fail-open contract
// as OrderStore.
type CartStore struct {
	store BlobStore
}

func NewCartStore(store BlobStore) *CartStore {
	return &CartStore{store: store}
}

func (s *CartStore) LoadCart(ctx context.Context) []domain.CartItem {
	var items []domain.CartItem
	s.load(ctx, CartKey, &items)
	if items == nil {
		items = []domain.CartItem{}
	}
	return items
}

func (s *CartStore) SaveCart(ctx context.Context, items []domain.CartItem) error {
	return s.save(ctx, CartKey, items)
}

func (s *CartStore) LoadWishlist(ctx context.Context) []domain.WishlistItem {
	var items []domain.WishlistItem
	s.load(ctx, WishlistKey, &items)
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return items
}

func (s *CartStore) SaveWishlist(ctx context.Context, items []domain.WishlistItem) error {
	return s.save(ctx, WishlistKey, items)
}

func (s *CartStore) load(ctx context.Context, key string, v any) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("blob read failed", "key", key, "err", err)
		}
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logger.Warn("blob corrupt, treating as empty", "key", key, "err", err)
	}
}

func (s *CartStore) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, raw)
}
