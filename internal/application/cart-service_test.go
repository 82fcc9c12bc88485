package application

import (
	"context"
	"testing"

	"github.com/ashirarif0999-sketch/blueember/internal/domain"
	"github.com/ashirarif0999-sketch/blueember/internal/notify"
	"github.com/ashirarif0999-sketch/blueember/internal/repository"
)

func newTestCart(t *testing.T) *CartService {
	t.Helper()
	store := repository.NewCartStore(repository.NewMemoryStore())
	return NewCartService(store, notify.NewRecorder())
}

func TestCart_AddMergesByID(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t)

	c.AddItem(ctx, domain.CartItem{ID: "p1", Name: "Laptop", Price: 999})
	c.AddItem(ctx, domain.CartItem{ID: "p1", Name: "Laptop", Price: 999})
	c.AddItem(ctx, domain.CartItem{ID: "p2", Name: "Mouse", Price: 25, Quantity: 3})

	items := c.Items(ctx)
	if len(items) != 2 {
		t.Fatalf("got %d lines, want 2", len(items))
	}
	if items[0].ID != "p1" || items[0].Quantity != 2 {
		t.Fatalf("p1 not merged: %+v", items[0])
	}
	if items[1].Quantity != 3 {
		t.Fatalf("explicit quantity lost: %+v", items[1])
	}

	count, subtotal := c.Totals(ctx)
	if count != 5 {
		t.Fatalf("count: got %d, want 5", count)
	}
	if subtotal != 999*2+25*3 {
		t.Fatalf("subtotal: got %v", subtotal)
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t)

	c.AddItem(ctx, domain.CartItem{ID: "p1", Name: "Laptop", Price: 999, Quantity: 2})

	if !c.UpdateQuantity(ctx, "p1", 1) {
		t.Fatal("update on known id returned false")
	}
	if items := c.Items(ctx); items[0].Quantity != 3 {
		t.Fatalf("quantity: got %d, want 3", items[0].Quantity)
	}

	// dropping to zero removes the line
	if !c.UpdateQuantity(ctx, "p1", -3) {
		t.Fatal("update returned false")
	}
	if items := c.Items(ctx); len(items) != 0 {
		t.Fatalf("line not removed: %+v", items)
	}

	if c.UpdateQuantity(ctx, "nope", 1) {
		t.Fatal("update on unknown id returned true")
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t)

	c.AddItem(ctx, domain.CartItem{ID: "p1", Name: "Laptop", Price: 999})
	c.AddItem(ctx, domain.CartItem{ID: "p2", Name: "Mouse", Price: 25})

	if !c.RemoveItem(ctx, "p1") {
		t.Fatal("remove on known id returned false")
	}
	if c.RemoveItem(ctx, "p1") {
		t.Fatal("remove on absent id returned true")
	}

	c.ClearCart(ctx)
	if items := c.Items(ctx); len(items) != 0 {
		t.Fatalf("cart not cleared: %+v", items)
	}
}

func TestWishlist_Toggle(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t)

	item := domain.WishlistItem{ID: "p1", Name: "Laptop", Price: 999}

	if added := c.ToggleWishlist(ctx, item); !added {
		t.Fatal("first toggle should add")
	}
	if got := c.Wishlist(ctx); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("wishlist: %+v", got)
	}

	if added := c.ToggleWishlist(ctx, item); added {
		t.Fatal("second toggle should remove")
	}
	if got := c.Wishlist(ctx); len(got) != 0 {
		t.Fatalf("wishlist not emptied: %+v", got)
	}

	if c.RemoveFromWishlist(ctx, "p1") {
		t.Fatal("remove on absent id returned true")
	}
}
