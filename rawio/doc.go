// File: rawio/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package rawio writes to raw OS file descriptors through golang.org/x/sys,
// bypassing os.File. Used where the record store is dumped from a panic or
// crash path and by fd sinks. Writes do not allocate.
package rawio
