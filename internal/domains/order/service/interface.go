package service

import (
	"context"

	cart "storefront-backend/internal/domains/cart/model"
	identity "storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/domains/order/model"
	pricing "storefront-backend/internal/domains/pricing/model"
)

// CartClearer empties the cart that was checked out
type CartClearer interface {
	Clear(ctx context.Context) []cart.CartLine
}

// ConfirmationEnqueuer schedules the order confirmation
type ConfirmationEnqueuer interface {
	EnqueueOrderConfirmation(ctx context.Context, payload model.OrderConfirmationPayload) error
}

// CheckoutInput is the cart state being purchased
type CheckoutInput struct {
	Customer *identity.Identity
	Lines    []cart.CartLine
	Pricing  pricing.PricingSnapshot
	Request  model.CheckoutRequest
}

type OrderService interface {
	// Checkout places an order and then clears the cart
	Checkout(ctx context.Context, in CheckoutInput, cart CartClearer) (*model.Order, error)

	// ListForCustomer returns the orders of one customer
	ListForCustomer(ctx context.Context, customer *identity.Identity) ([]model.Order, error)

	// ListAll returns every order; sellers and administrators only
	ListAll(ctx context.Context, viewer *identity.Identity) ([]model.Order, error)
}
