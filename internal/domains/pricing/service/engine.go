package service

import (
	"strings"
	"sync"

	cart "storefront-backend/internal/domains/cart/model"
	identity "storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/domains/pricing/model"
)

// CartSource exposes cart lines together with their revision
type CartSource interface {
	Snapshot() ([]cart.CartLine, uint64)
}

// IdentitySource exposes the current identity (nil for guest)
type IdentitySource interface {
	Current() *identity.Identity
}

// PriceCalculator turns cart lines into a pricing snapshot
type PriceCalculator interface {
	Calculate(lines []cart.CartLine, eligible, active bool) model.PricingSnapshot
}

type memoKey struct {
	revision uint64
	active   bool
	email    string
}

// Engine prices the cart of one device. The snapshot is memoized on the
// cart revision, the toggle value and the identity's email.
type Engine struct {
	cart        CartSource
	toggle      *Toggle
	identity    IdentitySource
	eligibility *Eligibility
	calculator  PriceCalculator

	mu       sync.Mutex
	key      memoKey
	snapshot model.PricingSnapshot
	memoized bool
}

func NewEngine(cart CartSource, toggle *Toggle, identity IdentitySource, eligibility *Eligibility) *Engine {
	return &Engine{
		cart:        cart,
		toggle:      toggle,
		identity:    identity,
		eligibility: eligibility,
		calculator:  Calculator{},
	}
}

// Snapshot returns the pricing of the current cart
func (e *Engine) Snapshot() model.PricingSnapshot {
	_, s := e.Quote()
	return s
}

// Quote returns the cart lines and the snapshot computed from those lines
func (e *Engine) Quote() ([]cart.CartLine, model.PricingSnapshot) {
	lines, revision := e.cart.Snapshot()
	active := e.toggle.Active()
	current := e.identity.Current()

	key := memoKey{revision: revision, active: active}
	if current != nil {
		key.email = strings.ToLower(current.Email)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.memoized && e.key == key {
		return lines, e.snapshot
	}

	eligible := e.eligibility.MatchesEmail(key.email)
	e.snapshot = e.calculator.Calculate(lines, eligible, active)
	e.key = key
	e.memoized = true
	return lines, e.snapshot
}
