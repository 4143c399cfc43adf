package model

import (
	"fmt"

	catalog "storefront-backend/internal/domains/catalog/model"
)

// CartLine is one product entry in a cart.
// Invariant: 1 <= Quantity <= min(Product.StockQuantity, GlobalMax), except
// that a freshly added line always starts at 1.
type CartLine struct {
	Product  catalog.Product `json:"producto"`
	Quantity int             `json:"cantidad"`
}

// ScopeKind distinguishes guest and signed-in carts
type ScopeKind int

const (
	ScopeGuest ScopeKind = iota
	ScopeUser
)

// Scope is the identity context that selects which persisted cart is active.
// The zero value is the guest scope.
type Scope struct {
	kind   ScopeKind
	userID int64
}

func GuestScope() Scope {
	return Scope{kind: ScopeGuest}
}

func UserScope(userID int64) Scope {
	return Scope{kind: ScopeUser, userID: userID}
}

func (s Scope) IsGuest() bool {
	return s.kind == ScopeGuest
}

// UserID returns the owning user id; ok is false for the guest scope
func (s Scope) UserID() (id int64, ok bool) {
	if s.IsGuest() {
		return 0, false
	}
	return s.userID, true
}

// Key is the storage key of the scope's persisted cart.
// Guest carts are never persisted, so their key is empty.
func (s Scope) Key() string {
	if s.IsGuest() {
		return ""
	}
	return fmt.Sprintf(CartKeyFormat, s.userID)
}

func (s Scope) String() string {
	if s.IsGuest() {
		return "guest"
	}
	return fmt.Sprintf("user(%d)", s.userID)
}

// Transition describes what the store must do when the scope changes
type Transition struct {
	From Scope
	To   Scope

	// DeleteKey is the persisted cart removed before switching (logout)
	DeleteKey string

	// LoadKey is the persisted cart to load into memory; empty means start empty
	LoadKey string

	// Reset discards the in-memory cart. False only for guest -> guest.
	Reset bool
}

// PlanTransition is the scope state machine:
//
//	guest   -> guest    nothing
//	guest   -> user(n)  drop the in-memory guest cart, load user(n)
//	user(n) -> guest    delete user(n)'s saved cart, start empty
//	user(n) -> user(n)  reload user(n)
//	user(a) -> user(b)  load user(b), user(a)'s saved cart is left alone
func PlanTransition(from, to Scope) Transition {
	t := Transition{From: from, To: to}

	switch {
	case from.IsGuest() && to.IsGuest():
		return t
	case !from.IsGuest() && to.IsGuest():
		t.DeleteKey = from.Key()
		t.Reset = true
	default:
		t.LoadKey = to.Key()
		t.Reset = true
	}
	return t
}
