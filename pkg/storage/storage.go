package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-backend/pkg/logger"
)

// ErrNotFound is returned by a Backend when the key has no value
var ErrNotFound = errors.New("storage: key not found")

// Backend is the contract for a string key/value store.
// Implementations: in-memory, Redis, PostgreSQL.
type Backend interface {
	// Get returns the stored value, or ErrNotFound on a miss
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes the keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection
	Ping(ctx context.Context) error
}

// DefaultTimeout bounds every backend call made through an Adapter
const DefaultTimeout = 2 * time.Second

// Adapter is the persistence adapter used by the cart engine.
// It never returns errors to callers: failures are logged as warnings and
// reported through the boolean results.
type Adapter struct {
	backend Backend
	prefix  string
	timeout time.Duration
}

// NewAdapter wraps backend. A zero timeout means DefaultTimeout.
func NewAdapter(backend Backend, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Adapter{backend: backend, timeout: timeout}
}

// Namespace returns an adapter sharing the same backend whose keys are
// prefixed with prefix. Used to give every device its own key space.
func (a *Adapter) Namespace(prefix string) *Adapter {
	return &Adapter{
		backend: a.backend,
		prefix:  a.prefix + prefix,
		timeout: a.timeout,
	}
}

// Read returns the raw value under key. ok is false when the key is absent
// or the backend failed.
func (a *Adapter) Read(ctx context.Context, key string) (value string, ok bool) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	value, err := a.backend.Get(ctx, a.prefix+key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("storage read failed", map[string]interface{}{
				"key":   a.prefix + key,
				"error": err.Error(),
			})
		}
		return "", false
	}
	return value, true
}

// Get is Read for callers that must tell a miss from a failure. A miss
// returns ErrNotFound; backend failures are returned wrapped.
func (a *Adapter) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	value, err := a.backend.Get(ctx, a.prefix+key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage get %s: %w", a.prefix+key, err)
	}
	return value, nil
}

// Write stores value under key and reports whether the write succeeded
func (a *Adapter) Write(ctx context.Context, key, value string) bool {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.backend.Set(ctx, a.prefix+key, value); err != nil {
		logger.Warn("storage write skipped", map[string]interface{}{
			"key":   a.prefix + key,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// Delete removes key and reports whether the deletion succeeded
func (a *Adapter) Delete(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.backend.Delete(ctx, a.prefix+key); err != nil {
		logger.Warn("storage delete failed", map[string]interface{}{
			"key":   a.prefix + key,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// Ping checks the underlying backend
func (a *Adapter) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.backend.Ping(ctx)
}
