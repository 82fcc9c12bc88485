package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ashirarif0999-sketch/blueember/internal/domain"
	"github.com/ashirarif0999-sketch/blueember/internal/logger"
)

// OrderStore loads and saves the full order list as one JSON blob. Reads
// fail open: an absent key or a corrupt payload yields an empty list.
type OrderStore struct {
	store BlobStore
}

func NewOrderStore(store BlobStore) *OrderStore {
	return &OrderStore{store: store}
}

func (s *OrderStore) Load(ctx context.Context) []domain.Order {
	raw, err := s.store.Get(ctx, OrdersKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("order blob read failed", "err", err)
		}
		return []domain.Order{}
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		logger.Warn("order blob corrupt, treating as empty", "err", err)
		return []domain.Order{}
	}
	return orders
}

func (s *OrderStore) Save(ctx context.Context, orders []domain.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, OrdersKey, raw)
}
