// File: atomlog/default.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide store. Statically allocated, zero-initialized, never torn down.

package atomlog

var defaultStore Store

// Default returns the process-wide store shared by every caller of the
// package-level Push and Pop.
func Default() *Store {
	return &defaultStore
}

// Push appends a record to the process-wide store.
func Push(data []byte) error {
	return defaultStore.Push(data)
}

// PushString appends a string record to the process-wide store.
func PushString(data string) error {
	return defaultStore.PushString(data)
}

// Pop drains the process-wide store into out.
func Pop(out *Records) {
	defaultStore.Pop(out)
}
