// Package control
// Author: momentics <momentics@gmail.com>
//
// Hot-reload, runtime metrics, configuration control, and debug introspection layer
// for the atomlog recorder.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads and merged updates with reload listeners
//   - Runtime metric values published by the drainer
//   - Store probes and platform probes for state export
//
// None of these primitives are used on the recording path; they allocate and lock.
package control
