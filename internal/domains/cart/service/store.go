package service

import (
	"context"
	"sync"

	"storefront-backend/internal/domains/cart/model"
	catalog "storefront-backend/internal/domains/catalog/model"
	identity "storefront-backend/internal/domains/identity/model"
	identityService "storefront-backend/internal/domains/identity/service"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/storage"
)

// ProductLookup resolves live catalog entries used to sanitize loaded carts
type ProductLookup interface {
	Lookup(productID int64) (catalog.Product, bool)
}

// IdentitySource is the part of the identity observer the store binds to
type IdentitySource interface {
	Current() *identity.Identity
	Subscribe(l identityService.Listener) (unsubscribe func())
}

// Store owns the cart of one device. It follows the signed-in identity,
// persists user carts through the adapter and keeps guest carts in memory.
// All operations are serialized; a scope change completes before any
// operation issued after it.
type Store struct {
	mu       sync.Mutex
	adapter  *storage.Adapter
	catalog  ProductLookup
	scope    model.Scope
	lines    []model.CartLine
	revision uint64
}

// NewStore creates an empty guest cart. catalog may be nil, in which case
// loaded lines are sanitized against their own product snapshot.
func NewStore(adapter *storage.Adapter, catalog ProductLookup) *Store {
	return &Store{
		adapter: adapter,
		catalog: catalog,
		scope:   model.GuestScope(),
		lines:   []model.CartLine{},
	}
}

// Bind applies the source's current identity and follows its changes until
// the returned function is called
func (s *Store) Bind(ctx context.Context, source IdentitySource) (unbind func()) {
	unsubscribe := source.Subscribe(func(ctx context.Context, _, next *identity.Identity) {
		s.ApplyIdentity(ctx, next)
	})
	s.ApplyIdentity(ctx, source.Current())
	return unsubscribe
}

// ApplyIdentity switches to the scope of id (nil is guest)
func (s *Store) ApplyIdentity(ctx context.Context, id *identity.Identity) model.Transition {
	if id == nil {
		return s.SwitchScope(ctx, model.GuestScope())
	}
	return s.SwitchScope(ctx, model.UserScope(id.ID))
}

// SwitchScope runs the scope state machine and returns the plan it executed
func (s *Store) SwitchScope(ctx context.Context, to model.Scope) model.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.PlanTransition(s.scope, to)
	if t.DeleteKey != "" {
		s.adapter.Delete(ctx, t.DeleteKey)
	}
	if t.Reset {
		s.lines = s.load(ctx, t.LoadKey)
		s.revision++
	}
	s.scope = to

	logger.DebugFields("cart scope switched", map[string]interface{}{
		"from":  t.From.String(),
		"to":    t.To.String(),
		"lines": len(s.lines),
	})
	return t
}

// AddItem adds one unit of product. An existing line grows by one up to
// min(stock, 999) and takes the product's current stock; a new line starts
// at quantity 1.
func (s *Store) AddItem(ctx context.Context, product catalog.Product) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID <= 0 {
		return model.CloneLines(s.lines)
	}

	i := model.FindLine(s.lines, product.ID)
	if i < 0 {
		s.lines = append(s.lines, model.CartLine{Product: product, Quantity: 1})
		s.commit(ctx)
		return model.CloneLines(s.lines)
	}

	current := s.lines[i]
	updated := current
	updated.Product.StockQuantity = product.StockQuantity
	updated.Quantity = model.ClampQuantity(current.Quantity+1, updated.Product)
	if updated.Quantity == current.Quantity && updated.Product.StockQuantity == current.Product.StockQuantity {
		return model.CloneLines(s.lines)
	}
	s.lines[i] = updated
	s.commit(ctx)
	return model.CloneLines(s.lines)
}

// DecreaseItem removes one unit; the line is dropped when it reaches zero
func (s *Store) DecreaseItem(ctx context.Context, productID int64) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.FindLine(s.lines, productID)
	if i < 0 {
		return model.CloneLines(s.lines)
	}
	if s.lines[i].Quantity > 1 {
		s.lines[i].Quantity--
	} else {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
	s.commit(ctx)
	return model.CloneLines(s.lines)
}

func (s *Store) RemoveItem(ctx context.Context, productID int64) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.FindLine(s.lines, productID)
	if i < 0 {
		return model.CloneLines(s.lines)
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.commit(ctx)
	return model.CloneLines(s.lines)
}

// Clear empties the cart. Calling it on an empty cart leaves the same state.
func (s *Store) Clear(ctx context.Context) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []model.CartLine{}
	s.commit(ctx)
	return []model.CartLine{}
}

func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneLines(s.lines)
}

// Count is the total number of units in the cart
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CountUnits(s.lines)
}

func (s *Store) Scope() model.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Snapshot returns the lines together with the revision they belong to.
// The revision changes on every mutation and scope switch.
func (s *Store) Snapshot() ([]model.CartLine, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneLines(s.lines), s.revision
}

// commit bumps the revision and writes the cart of a user scope.
// A failed write keeps the in-memory state.
func (s *Store) commit(ctx context.Context) {
	s.revision++
	if s.scope.IsGuest() {
		return
	}

	raw, err := model.EncodeLines(s.lines)
	if err != nil {
		logger.Error("encode cart", err)
		return
	}
	s.adapter.Write(ctx, s.scope.Key(), raw)
}

// load reads and sanitizes the cart stored under key; an empty key, a
// missing value or an unreadable value all give an empty cart
func (s *Store) load(ctx context.Context, key string) []model.CartLine {
	if key == "" {
		return []model.CartLine{}
	}

	raw, ok := s.adapter.Read(ctx, key)
	if !ok || model.IsBlank(raw) {
		return []model.CartLine{}
	}

	decoded, err := model.DecodeLines(raw)
	if err != nil {
		logger.Warn("discarding unreadable cart", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return []model.CartLine{}
	}

	var lookup model.ProductLookupFunc
	if s.catalog != nil {
		lookup = s.catalog.Lookup
	}
	lines := model.SanitizeLines(decoded, lookup)

	if corrected := countCorrections(decoded, lines); corrected > 0 {
		logger.DebugFields("cart sanitized on load", map[string]interface{}{
			"key":       key,
			"corrected": corrected,
		})
	}
	return lines
}

func countCorrections(before, after []model.CartLine) int {
	corrected := len(before) - len(after)
	for _, l := range after {
		for _, b := range before {
			if b.Product.ID == l.Product.ID {
				if b.Quantity != l.Quantity {
					corrected++
				}
				break
			}
		}
	}
	return corrected
}
