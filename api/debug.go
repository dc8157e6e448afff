// Package api
// Author: momentics
//
// Live debug introspection support.

package api

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState emits a snapshot of probe values for diagnostics.
	DumpState() map[string]any

	// RegisterProbe dynamically registers new debug probes.
	RegisterProbe(name string, fn func() any)
}
