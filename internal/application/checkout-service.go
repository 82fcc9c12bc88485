package application

import (
	"context"
	"encoding/json"
	"errors"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ashirarif0999-sketch/blueember/internal/domain"
)

// ErrEmptyCart is returned when checkout runs against an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Flat shipping fee, waived above the free-shipping threshold.
const (
	ShippingFee           = 4.99
	FreeShippingThreshold = 50.0
)

type ShippingDetails struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type CheckoutRequest struct {
	Shipping      ShippingDetails `json:"shipping"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=card paypal cod"`
}

// CheckoutService turns the current cart into an order: validates shipping
// and payment details, computes the total, hands the order to the engine and
// clears the cart. Payment itself is mocked pass-through metadata.
type CheckoutService struct {
	cart     *CartService
	engine   *OrderEngine
	validate *validatorv10.Validate
}

func NewCheckoutService(cart *CartService, engine *OrderEngine) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		engine:   engine,
		validate: validatorv10.New(),
	}
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, req CheckoutRequest) (domain.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Order{}, err
	}

	cartItems := s.cart.Items(ctx)
	if len(cartItems) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	items := make([]domain.Item, 0, len(cartItems))
	subtotal := 0.0
	for _, ci := range cartItems {
		items = append(items, domain.Item{
			ID:       ci.ID,
			Name:     ci.Name,
			Price:    ci.Price,
			Quantity: ci.Quantity,
			Image:    ci.Image,
		})
		subtotal += ci.Price * float64(ci.Quantity)
	}

	total := subtotal
	if subtotal < FreeShippingThreshold {
		total += ShippingFee
	}

	shipping, err := json.Marshal(req.Shipping)
	if err != nil {
		return domain.Order{}, err
	}
	payment, err := json.Marshal(map[string]string{"method": req.PaymentMethod})
	if err != nil {
		return domain.Order{}, err
	}

	order := s.engine.CreateOrder(ctx, items, total, OrderMeta{
		Shipping: shipping,
		Payment:  payment,
	})

	s.cart.ClearCart(ctx)
	return order, nil
}
