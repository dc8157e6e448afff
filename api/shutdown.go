// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown unifies component stop logic.
type GracefulShutdown interface {
	// Shutdown stops internal services, flushes pending records
	// and releases resources.
	Shutdown() error
}
