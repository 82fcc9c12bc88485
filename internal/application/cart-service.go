package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/ashirarif0999-sketch/blueember/internal/domain"
	"github.com/ashirarif0999-sketch/blueember/internal/logger"
	"github.com/ashirarif0999-sketch/blueember/internal/notify"
	"github.com/ashirarif0999-sketch/blueember/internal/repository"
)

// CartService manages the shopping cart and wishlist blobs. Lines merge by
// product id; quantities at or below zero drop the line.
type CartService struct {
	mu       sync.Mutex
	store    *repository.CartStore
	notifier notify.Sink
}

func NewCartService(store *repository.CartStore, notifier notify.Sink) *CartService {
	if notifier == nil {
		notifier = notify.NewFanout()
	}
	return &CartService{store: store, notifier: notifier}
}

// AddItem merges an item into the cart. A zero quantity counts as one.
func (s *CartService) AddItem(ctx context.Context, item domain.CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.LoadCart(ctx)
	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.store.SaveCart(ctx, items); err != nil {
		logger.Warn("cart save failed", "err", err)
	}
	s.notifier.Notify(fmt.Sprintf("%s added to cart", item.Name), notify.SeveritySuccess)
}

// UpdateQuantity applies a delta to a line's quantity. A resulting quantity
// at or below zero removes the line. Returns false for unknown ids.
func (s *CartService) UpdateQuantity(ctx context.Context, id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.LoadCart(ctx)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Quantity += delta
		if items[i].Quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
		}
		if err := s.store.SaveCart(ctx, items); err != nil {
			logger.Warn("cart save failed", "err", err)
		}
		return true
	}
	return false
}

// RemoveItem drops a line from the cart. Returns false for unknown ids.
func (s *CartService) RemoveItem(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.LoadCart(ctx)
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := s.store.SaveCart(ctx, items); err != nil {
				logger.Warn("cart save failed", "err", err)
			}
			return true
		}
	}
	return false
}

func (s *CartService) Items(ctx context.Context) []domain.CartItem {
	return s.store.LoadCart(ctx)
}

// Totals returns the total item count and the subtotal.
func (s *CartService) Totals(ctx context.Context) (int, float64) {
	count := 0
	subtotal := 0.0
	for _, it := range s.store.LoadCart(ctx) {
		count += it.Quantity
		subtotal += it.Price * float64(it.Quantity)
	}
	return count, subtotal
}

func (s *CartService) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveCart(ctx, []domain.CartItem{}); err != nil {
		logger.Warn("cart save failed", "err", err)
	}
}

// ToggleWishlist adds the item when absent and removes it when present.
// Returns true when the item ended up on the list.
func (s *CartService) ToggleWishlist(ctx context.Context, item domain.WishlistItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.LoadWishlist(ctx)
	for i := range items {
		if items[i].ID == item.ID {
			items = append(items[:i], items[i+1:]...)
			if err := s.store.SaveWishlist(ctx, items); err != nil {
				logger.Warn("wishlist save failed", "err", err)
			}
			return false
		}
	}

	items = append(items, item)
	if err := s.store.SaveWishlist(ctx, items); err != nil {
		logger.Warn("wishlist save failed", "err", err)
	}
	s.notifier.Notify(fmt.Sprintf("%s added to wishlist", item.Name), notify.SeveritySuccess)
	return true
}

func (s *CartService) Wishlist(ctx context.Context) []domain.WishlistItem {
	return s.store.LoadWishlist(ctx)
}

// RemoveFromWishlist drops an item. Returns false for unknown ids.
func (s *CartService) RemoveFromWishlist(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.LoadWishlist(ctx)
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := s.store.SaveWishlist(ctx, items); err != nil {
				logger.Warn("wishlist save failed", "err", err)
			}
			return true
		}
	}
	return false
}
