package service

import (
	"context"
	"strconv"
	"sync"

	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/storage"

	"github.com/spf13/cast"
)

// ToggleKey is where the discount switch is persisted. It is shared by every
// identity on the device.
const ToggleKey = "discountActive"

// Toggle is the user-controlled discount switch of one device
type Toggle struct {
	mu      sync.Mutex
	adapter *storage.Adapter
	active  bool
}

// NewToggle loads the persisted value; a missing or unreadable value is off
func NewToggle(ctx context.Context, adapter *storage.Adapter) *Toggle {
	t := &Toggle{adapter: adapter}

	raw, ok := adapter.Read(ctx, ToggleKey)
	if !ok {
		return t
	}
	active, err := cast.ToBoolE(raw)
	if err != nil {
		logger.DebugFields("ignoring unreadable discount toggle", map[string]interface{}{
			"value": raw,
		})
		return t
	}
	t.active = active
	return t
}

func (t *Toggle) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// SetActive updates the switch and persists it. The in-memory value changes
// even when the write fails.
func (t *Toggle) SetActive(ctx context.Context, active bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = active
	t.adapter.Write(ctx, ToggleKey, strconv.FormatBool(active))
	return t.active
}
