// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-zmq library.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrSocketClosed    = errors.New("socket is closed")
	ErrContextClosed   = errors.New("context is closed")
	ErrReactorStopped  = errors.New("reactor is stopped")
	ErrEmptyMessage    = errors.New("message has no frames")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotSupported    = errors.New("operation not supported")
)

// ErrorCode classifies error conditions surfaced by the wrapper.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeClosed
	ErrCodeTerminated
	ErrCodeState
	ErrCodeAuth
	ErrCodeEngine
	ErrCodeTimeout
	ErrCodeInvalidArgument
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeClosed:
		return "closed"
	case ErrCodeTerminated:
		return "terminated"
	case ErrCodeState:
		return "state"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeEngine:
		return "engine"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	default:
		return "unknown"
	}
}

// Error is a structured error with the failing operation and a code.
// The wrapped cause is usually the engine's verbatim error.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

// Unwrap exposes the cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// NewError creates a structured error wrapping cause.
func NewError(code ErrorCode, op string, cause error) *Error {
	return &Error{Code: code, Op: op, Err: cause}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeEngine for plain
// engine errors and ErrCodeOK for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeEngine
}
