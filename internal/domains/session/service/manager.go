package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	cartService "storefront-backend/internal/domains/cart/service"
	identityService "storefront-backend/internal/domains/identity/service"
	pricingService "storefront-backend/internal/domains/pricing/service"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/storage"
)

const (
	DefaultIdleTTL     = 30 * time.Minute
	DefaultMaxSessions = 10000
	namespaceFormat    = "device:%s:"
)

// Session is the cart engine of one device (browser). Its components share a
// storage namespace, so the device behaves like a browser's local storage.
type Session struct {
	ID       string
	Identity *identityService.Observer
	Cart     *cartService.Store
	Toggle   *pricingService.Toggle
	Pricing  *pricingService.Engine

	// mu serializes the requests of the device
	mu       sync.Mutex
	lastSeen time.Time
	unbind   func()
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager creates sessions on first use and evicts idle ones from memory.
// Persisted carts and toggles outlive eviction.
type Manager struct {
	adapter     *storage.Adapter
	catalog     cartService.ProductLookup
	eligibility *pricingService.Eligibility
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(adapter *storage.Adapter, catalog cartService.ProductLookup, eligibility *pricingService.Eligibility, idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Manager{
		adapter:     adapter,
		catalog:     catalog,
		eligibility: eligibility,
		idleTTL:     idleTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// SetMaxSessions bounds how many sessions are held in memory. A value of
// zero or less keeps the current limit.
func (m *Manager) SetMaxSessions(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxSessions = n
}

// Get returns the session of id, creating it when needed, and marks it used.
// When the manager is full the least recently used session is evicted.
func (m *Manager) Get(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.lastSeen = m.now()
		return s
	}

	if len(m.sessions) >= m.maxSessions {
		m.evictOldest()
	}

	s := m.newSession(ctx, id)
	m.sessions[id] = s
	logger.DebugFields("session created", map[string]interface{}{"session_id": id})
	return s
}

func (m *Manager) newSession(ctx context.Context, id string) *Session {
	device := m.adapter.Namespace(deviceNamespace(id))

	observer := identityService.NewObserver(nil)
	store := cartService.NewStore(device, m.catalog)
	toggle := pricingService.NewToggle(ctx, device)

	return &Session{
		ID:       id,
		Identity: observer,
		Cart:     store,
		Toggle:   toggle,
		Pricing:  pricingService.NewEngine(store, toggle, observer, m.eligibility),
		lastSeen: m.now(),
		unbind:   store.Bind(ctx, observer),
	}
}

// Sweep evicts sessions idle for longer than the idle TTL and returns how
// many were removed
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idleTTL)
	evicted := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) && m.evict(id, s) {
			evicted++
		}
	}
	if evicted > 0 {
		logger.Info("idle sessions evicted", map[string]interface{}{
			"evicted":   evicted,
			"remaining": len(m.sessions),
		})
	}
	return evicted
}

// evictOldest removes the least recently used session. Callers hold m.mu.
func (m *Manager) evictOldest() {
	var (
		oldestID string
		oldest   *Session
	)
	for id, s := range m.sessions {
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, s
		}
	}
	if oldest != nil && m.evict(oldestID, oldest) {
		logger.DebugFields("session evicted at capacity", map[string]interface{}{
			"session_id": oldestID,
			"limit":      m.maxSessions,
		})
	}
}

// evict removes s unless a request currently holds it. Callers hold m.mu.
func (m *Manager) evict(id string, s *Session) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()

	s.unbind()
	delete(m.sessions, id)
	return true
}

// Run sweeps every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.idleTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func deviceNamespace(sessionID string) string {
	return fmt.Sprintf(namespaceFormat, sessionID)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
