// Package domainerr defines the typed error kinds the API surface maps to HTTP
// status codes (spec §7). Every component below the surface returns one of
// these instead of a bare error so the mapping stays 1:1 and centralized.
package domainerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is one of the error kinds from §7.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindServiceUnavailable
	KindGatewayTimeout
	KindTransient
)

// Error wraps a Kind with a human-readable message and an optional cause.
// StatusOverride, when nonzero, takes precedence over the Kind's default
// status — used by the Relay to propagate an upstream workload's exact
// non-2xx status code (spec §7 "propagate the status code with the body as
// the error payload") rather than collapsing it to one of the seven kinds.
type Error struct {
	Kind           Kind
	Message        string
	Cause          error
	StatusOverride int
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	if e.StatusOverride != 0 {
		return e.StatusOverride
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindGatewayTimeout:
		return http.StatusGatewayTimeout
	case KindTransient:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func ServiceUnavailable(format string, args ...any) *Error {
	return &Error{Kind: KindServiceUnavailable, Message: fmt.Sprintf(format, args...)}
}

func GatewayTimeout(format string, args ...any) *Error {
	return &Error{Kind: KindGatewayTimeout, Message: fmt.Sprintf(format, args...)}
}

func Transient(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindTransient, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Upstream wraps a non-2xx response from a workload endpoint, preserving its
// original status code verbatim (spec §7: the /chat surface "forwards
// non-2xx bodies from the workload as the error payload with the original
// status code").
func Upstream(status int, format string, args ...any) *Error {
	return &Error{Kind: KindTransient, Message: fmt.Sprintf(format, args...), StatusOverride: status}
}

// As unwraps err into a *Error, if any wraps one.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
