// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and hot-reload propagation.

package control

import (
	"sync"
	"time"
)

// ConfigStore is a dynamic key/value map with atomic snapshot and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// SetConfig merges new values and dispatches reload listeners.
// Listeners run synchronously after the lock is released, so they may read the store.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// DurationValue interprets a config value as a duration. Integers are
// milliseconds, strings use time.ParseDuration.
func DurationValue(v any) (time.Duration, bool) {
	switch d := v.(type) {
	case time.Duration:
		return d, d > 0
	case int:
		return time.Duration(d) * time.Millisecond, d > 0
	case int64:
		return time.Duration(d) * time.Millisecond, d > 0
	case float64:
		return time.Duration(d * float64(time.Millisecond)), d > 0
	case string:
		parsed, err := time.ParseDuration(d)
		return parsed, err == nil && parsed > 0
	}
	return 0, false
}
