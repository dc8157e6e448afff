// File: capture/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package capture feeds an atomlog store from ordinary code paths and dumps
// it from failing ones.
//
// Core and Tee mirror zap output into the store, Writer turns any
// line-oriented io.Writer user (the standard log package, subprocess output)
// into a producer, and Guard/DumpFD write the store to a raw descriptor when
// the process is going down.
package capture
