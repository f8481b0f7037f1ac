// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-async.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the runtime.
var (
	// ErrTimedOut reports that a Timeout future fired before its inner
	// computation resolved.
	ErrTimedOut = errors.New("operation timed out")

	// ErrTaskAbandoned reports that the producing side was dropped before
	// completing. The waiting side decides whether this is fatal.
	ErrTaskAbandoned = errors.New("task abandoned before completion")

	// ErrAlreadySent reports a second send into a oneshot channel.
	ErrAlreadySent = errors.New("value already sent")

	// ErrConsumed reports a receive after the value was already taken.
	ErrConsumed = errors.New("result already consumed")

	// ErrQueueSaturated reports a dropped timer registration.
	ErrQueueSaturated = errors.New("timer queue saturated")

	// ErrBackendClosed reports submission to a closed reactor backend.
	ErrBackendClosed = errors.New("backend is closed")

	// ErrConnClosed reports an operation on a closed connection.
	ErrConnClosed = errors.New("connection is closed")

	// ErrStillPending reports a TryRecv before completion.
	ErrStillPending = errors.New("result still pending")
)

// ErrorCode represents specific I/O failure conditions.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidInput
	ErrCodeConnRefused
	ErrCodeConnReset
	ErrCodeWouldBlock
	ErrCodeUnreachable
	ErrCodeClosed
	ErrCodeInternal
)

// Error is a structured I/O error carried through reactor completions:
// a kind plus a message, never thrown.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("io error %d: %s", e.Code, e.Message)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError converts any error into a structured Error, preserving an
// existing *Error unchanged.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	code := ErrCodeInternal
	if errors.Is(err, ErrConnClosed) {
		code = ErrCodeClosed
	}
	return &Error{Code: code, Message: err.Error()}
}
