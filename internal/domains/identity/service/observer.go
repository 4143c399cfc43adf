package service

import (
	"context"
	"sync"

	"storefront-backend/internal/domains/identity/model"
	"storefront-backend/pkg/logger"
)

// Listener is notified after the current identity changed. prev and next are
// copies; nil means guest.
type Listener func(ctx context.Context, prev, next *model.Identity)

type subscription struct {
	id       int
	listener Listener
}

// Observer holds the signed-in identity of one device and notifies
// subscribers when it changes (login, logout, account switch).
type Observer struct {
	mu        sync.Mutex
	current   *model.Identity
	listeners []subscription
	nextID    int

	// notifyMu keeps notifications in the order the changes happened
	notifyMu sync.Mutex
}

func NewObserver(initial *model.Identity) *Observer {
	return &Observer{current: initial.Clone()}
}

// Current returns a copy of the signed-in identity, or nil for a guest
func (o *Observer) Current() *model.Identity {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current.Clone()
}

// Subscribe registers l and returns a function that removes it
func (o *Observer) Subscribe(l Listener) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.listeners = append(o.listeners, subscription{id: id, listener: l})

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, s := range o.listeners {
				if s.id == id {
					o.listeners = append(o.listeners[:i:i], o.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Set replaces the current identity. Listeners run synchronously, outside
// the observer's lock, and only when the account actually changed; profile
// fields of the same account are updated silently.
// It reports whether listeners were notified.
func (o *Observer) Set(ctx context.Context, next *model.Identity) bool {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	prev := o.current
	o.current = next.Clone()
	if model.SameUser(prev, next) {
		o.mu.Unlock()
		return false
	}
	listeners := make([]Listener, len(o.listeners))
	for i, s := range o.listeners {
		listeners[i] = s.listener
	}
	o.mu.Unlock()

	logger.DebugFields("identity changed", map[string]interface{}{
		"from": describe(prev),
		"to":   describe(next),
	})

	for _, l := range listeners {
		l(ctx, prev.Clone(), next.Clone())
	}
	return true
}

func (o *Observer) Login(ctx context.Context, identity *model.Identity) bool {
	return o.Set(ctx, identity)
}

func (o *Observer) Logout(ctx context.Context) bool {
	return o.Set(ctx, nil)
}

func describe(i *model.Identity) interface{} {
	if i == nil {
		return "guest"
	}
	return i.ID
}
