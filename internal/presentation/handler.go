package presentation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ashirarif0999-sketch/blueember/internal/application"
	"github.com/ashirarif0999-sketch/blueember/internal/chatbot"
	"github.com/ashirarif0999-sketch/blueember/internal/domain"
	"github.com/ashirarif0999-sketch/blueember/internal/presentation/helpers"
)

type Handler struct {
	engine   *application.OrderEngine
	cart     *application.CartService
	checkout *application.CheckoutService
	bot      *chatbot.Responder
}

func NewHandler(engine *application.OrderEngine, cart *application.CartService, checkout *application.CheckoutService, bot *chatbot.Responder) *Handler {
	return &Handler{engine: engine, cart: cart, checkout: checkout, bot: bot}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/{id}", h.GetOrder)
	r.Post("/orders/{id}/cancel", h.CancelOrder)

	r.Get("/notifications", h.ListNotifications)
	r.Get("/notifications/unread", h.UnreadCount)
	r.Post("/notifications/read-all", h.MarkAllRead)

	r.Get("/cart", h.GetCart)
	r.Post("/cart/items", h.AddCartItem)
	r.Patch("/cart/items/{id}", h.UpdateCartItem)
	r.Delete("/cart/items/{id}", h.RemoveCartItem)

	r.Get("/wishlist", h.GetWishlist)
	r.Post("/wishlist/toggle", h.ToggleWishlist)
	r.Delete("/wishlist/{id}", h.RemoveWishlistItem)

	r.Post("/checkout", h.Checkout)
	r.Post("/api/chat", h.Chat)
	r.Post("/debug/fast-forward", h.FastForward)
}

type createOrderRequest struct {
	ID       string          `json:"id"`
	Items    []domain.Item   `json:"items"`
	Total    float64         `json:"total"`
	Shipping jsonRawOptional `json:"shipping"`
	Payment  jsonRawOptional `json:"payment"`
}

// jsonRawOptional keeps arbitrary metadata opaque while surviving
// DisallowUnknownFields decoding.
type jsonRawOptional []byte

func (j *jsonRawOptional) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	order := h.engine.CreateOrder(r.Context(), req.Items, req.Total, application.OrderMeta{
		ID:       strings.TrimSpace(req.ID),
		Shipping: []byte(req.Shipping),
		Payment:  []byte(req.Payment),
	})

	helpers.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.engine.Orders(r.Context()))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, ok := h.engine.Order(r.Context(), id)
	if !ok {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	switch h.engine.CancelOrder(r.Context(), id) {
	case application.CancelOK:
		order, _ := h.engine.Order(r.Context(), id)
		helpers.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "order": order})
	case application.CancelNotFound:
		helpers.HttpError(w, http.StatusNotFound, "order not found")
	case application.CancelTooLate:
		helpers.HttpError(w, http.StatusConflict, "cancellation window has passed")
	default:
		helpers.HttpError(w, http.StatusConflict, "order cannot be cancelled in its current status")
	}
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifs := h.engine.AllNotifications(r.Context())
	if notifs == nil {
		notifs = []domain.Notification{}
	}
	helpers.WriteJSON(w, http.StatusOK, notifs)
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]int{"unread": h.engine.UnreadCount(r.Context())})
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.engine.MarkAllAsRead(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	items := h.cart.Items(r.Context())
	count, subtotal := h.cart.Totals(r.Context())
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"items":    items,
		"count":    count,
		"subtotal": subtotal,
	})
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var item domain.CartItem
	if err := helpers.DecodeJSON(r.Body, &item); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
		helpers.HttpError(w, http.StatusBadRequest, "id and name are required")
		return
	}

	h.cart.AddItem(r.Context(), item)
	helpers.WriteJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if !h.cart.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Delta) {
		helpers.HttpError(w, http.StatusNotFound, "item not in cart")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	if !h.cart.RemoveItem(r.Context(), chi.URLParam(r, "id")) {
		helpers.HttpError(w, http.StatusNotFound, "item not in cart")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.cart.Wishlist(r.Context()))
}

func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var item domain.WishlistItem
	if err := helpers.DecodeJSON(r.Body, &item); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(item.ID) == "" {
		helpers.HttpError(w, http.StatusBadRequest, "id is required")
		return
	}

	added := h.cart.ToggleWishlist(r.Context(), item)
	helpers.WriteJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	if !h.cart.RemoveFromWishlist(r.Context(), chi.URLParam(r, "id")) {
		helpers.HttpError(w, http.StatusNotFound, "item not in wishlist")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req application.CheckoutRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		if errors.Is(err, application.ErrEmptyCart) {
			helpers.HttpError(w, http.StatusConflict, "cart is empty")
			return
		}
		var verr validatorv10.ValidationErrors
		if errors.As(err, &verr) {
			helpers.HttpError(w, http.StatusBadRequest, verr.Error())
			return
		}
		helpers.HttpError(w, http.StatusInternalServerError, "checkout failed")
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		helpers.HttpError(w, http.StatusBadRequest, "message is required")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]string{
		"reply": h.bot.Reply(r.Context(), req.Message),
	})
}

func (h *Handler) FastForward(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hours int `json:"hours"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Hours <= 0 {
		helpers.HttpError(w, http.StatusBadRequest, "hours must be positive")
		return
	}

	h.engine.FastForward(r.Context(), req.Hours)
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
