// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug probes for recorder inspection.

package control

import (
	"sync"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
)

var _ api.Debug = (*DebugProbes)(nil)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// RegisterStoreProbes exposes store geometry and counters.
func RegisterStoreProbes(dp *DebugProbes, store api.LogStore) {
	dp.RegisterProbe("atomlog.cursor", func() any { return store.Len() })
	dp.RegisterProbe("atomlog.capacity", func() any { return atomlog.MaxRecords })
	dp.RegisterProbe("atomlog.slot_size", func() any { return atomlog.SlotSize })
	dp.RegisterProbe("atomlog.stats", func() any { return store.Stats() })
}
