package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no blob exists under a key.
var ErrNotFound = errors.New("not found")

// Persistence keys. The whole order list lives under one key; every save is
// a full overwrite (last-writer-wins across processes).
const (
	OrdersKey   = "blue_ember_orders"
	CartKey     = "blue_ember_cart"
	WishlistKey = "blue_ember_wishlist"
)

// BlobStore is the key-value storage adapter: one JSON blob per key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
}
