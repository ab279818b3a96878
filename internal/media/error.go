package media

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorDevice      ErrorKind = "device"
	ErrorNetwork     ErrorKind = "network"
	ErrorDecode      ErrorKind = "decode"
	ErrorUnsupported ErrorKind = "unsupported"
	ErrorUnknown     ErrorKind = "unknown"
)

// Error is the domain error surfaced to callers. Retryable implies
// Recoverable; NewError enforces the implication.
type Error struct {
	Kind        ErrorKind `json:"kind"`
	Message     string    `json:"message"`
	Recoverable bool      `json:"recoverable"`
	Retryable   bool      `json:"retryable"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind ErrorKind, message string, recoverable, retryable bool) *Error {
	if retryable {
		recoverable = true
	}
	return &Error{
		Kind:        kind,
		Message:     message,
		Recoverable: recoverable,
		Retryable:   retryable,
	}
}

// Capability not supported on this device. Never retryable.
func NewDeviceError(message string) *Error {
	return NewError(ErrorDevice, message, false, false)
}

// Transient fetch failure.
func NewNetworkError(message string) *Error {
	return NewError(ErrorNetwork, message, true, true)
}

// Malformed or unsupported media payload. Retryable only when a
// lower-quality fallback could plausibly succeed.
func NewDecodeError(message string, retryable bool) *Error {
	return NewError(ErrorDecode, message, true, retryable)
}

// Invalid configuration shape, caught before any engine is touched.
func NewUnsupportedError(message string) *Error {
	return NewError(ErrorUnsupported, message, false, false)
}

// Catch-all for unexpected engine failures. Retryable by default.
func NewUnknownError(message string) *Error {
	return NewError(ErrorUnknown, message, true, true)
}

// AsError returns err as a *Error, wrapping foreign errors as unknown.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var me *Error
	if errors.As(err, &me) {
		return me
	}
	return NewUnknownError(err.Error())
}
