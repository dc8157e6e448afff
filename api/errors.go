// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for atomlog.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
// The store hot path only ever returns these pre-allocated values.
var (
	ErrRecordTooLarge  = errors.New("record exceeds slot capacity")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrSinkFailed      = errors.New("sink write failed")
	ErrBacklogOverflow = errors.New("drain backlog overflow")
	ErrNotSupported    = errors.New("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeRecordTooLarge
	ErrCodeSinkFailed
	ErrCodeNotSupported
	ErrCodeInternal
)

// Error represents a structured error with code and context.
// Used outside the recording path, where allocation is allowed.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
