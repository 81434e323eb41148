// Package errors provides the error taxonomy for relay endpoints and the
// helpers used to classify them.
//
// # Error Types
//
// Sentinel errors name the condition that was detected:
//   - ErrSenderNotRegistered: send called by an endpoint that never registered
//   - ErrReceiverNotRegistered: send to an unknown name, or receive by an
//     unregistered endpoint
//   - ErrCancelled: a blocking send or receive was interrupted
//   - ErrUnnamedEndpoint: the caller's context carries no endpoint name
//
// Typed errors carry the context of the failed operation:
//   - EndpointError: registration and name resolution failures
//   - DeliveryError: a single hand-off or blocking receive that did not complete
//   - BroadcastError: a broadcast fan-out that stopped part way
//
// # Usage
//
//	err := errors.NewEndpointError("send", errors.ErrReceiverNotRegistered).
//	    WithEndpoint("worker-3")
//
//	if errors.Is(err, errors.ErrReceiverNotRegistered) { ... }
//
//	var bErr *errors.BroadcastError
//	if errors.As(err, &bErr) {
//	    retryLater(bErr.Failed)
//	}
//
// "No message" from a polling receive is not an error and has no sentinel.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrSenderNotRegistered indicates that the sending endpoint never registered.
	ErrSenderNotRegistered = New("sender not registered")
	// ErrReceiverNotRegistered indicates that the target (or receiving) endpoint
	// is not registered.
	ErrReceiverNotRegistered = New("receiver not registered")
	// ErrCancelled indicates that a blocking send or receive was interrupted
	// before it completed.
	ErrCancelled = New("operation cancelled")
	// ErrUnnamedEndpoint indicates that the caller has no endpoint name bound.
	ErrUnnamedEndpoint = New("endpoint name not set")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

// RelayError is implemented by every typed error in this package.
type RelayError interface {
	error
	Unwrap() error
	Is(target error) bool
	Severity() Severity

	// IsRetryable returns true if repeating the operation may succeed.
	IsRetryable() bool

	// IsUserFacing returns true if the message is safe to show to end users.
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsRetryable() bool  { return e.retryable }
func (e *baseError) IsUserFacing() bool { return e.userFacing }

// formatWithContext renders "<kind> [k=v, ...]: message: cause".
func formatWithContext(kind string, parts []string, message string, cause error) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if message == "" {
		if cause != nil {
			return fmt.Sprintf("%s: %v", prefix, cause)
		}
		return prefix
	}
	if cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, message, cause)
	}
	return fmt.Sprintf("%s: %s", prefix, message)
}

// -----------------------------------------------------------------------------
// EndpointError
// -----------------------------------------------------------------------------

// EndpointError reports a registration or name resolution failure.
//
// Example:
//
//	err := errors.NewEndpointError("send", errors.ErrSenderNotRegistered).WithEndpoint("a")
//	fmt.Println(err) // "endpoint error [op=send, endpoint=a]: sender not registered"
type EndpointError struct {
	baseError
	Op       string
	Endpoint string
}

// NewEndpointError creates an EndpointError for the given operation.
func NewEndpointError(op string, cause error) *EndpointError {
	return &EndpointError{
		baseError: baseError{
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Op: op,
	}
}

// WithEndpoint records the endpoint name the operation was about.
func (e *EndpointError) WithEndpoint(name string) *EndpointError {
	e.Endpoint = name
	return e
}

// WithMessage attaches a free-form message.
func (e *EndpointError) WithMessage(msg string) *EndpointError {
	e.message = msg
	return e
}

func (e *EndpointError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, "op="+e.Op)
	}
	if e.Endpoint != "" {
		parts = append(parts, "endpoint="+e.Endpoint)
	}
	return formatWithContext("endpoint error", parts, e.message, e.cause)
}

// Is matches any *EndpointError, then falls back to the cause chain.
func (e *EndpointError) Is(target error) bool {
	if _, ok := target.(*EndpointError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// DeliveryError
// -----------------------------------------------------------------------------

// DeliveryError reports a hand-off send or blocking receive that did not
// complete. The cause always matches ErrCancelled and the context error.
type DeliveryError struct {
	baseError
	Op       string
	Target   string
	Sequence uint64
}

// NewDeliveryError creates a DeliveryError for the given operation.
func NewDeliveryError(op string, cause error) *DeliveryError {
	return &DeliveryError{
		baseError: baseError{
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  true,
			userFacing: true,
		},
		Op: op,
	}
}

// Cancelled builds a DeliveryError for an interrupted operation. The
// resulting error matches both ErrCancelled and ctxErr.
func Cancelled(op string, ctxErr error) *DeliveryError {
	if ctxErr == nil {
		ctxErr = context.Canceled
	}
	return NewDeliveryError(op, fmt.Errorf("%w: %w", ErrCancelled, ctxErr))
}

// WithTarget records the endpoint the delivery was addressed to.
func (e *DeliveryError) WithTarget(name string) *DeliveryError {
	e.Target = name
	return e
}

// WithSequence records the envelope sequence number.
func (e *DeliveryError) WithSequence(seq uint64) *DeliveryError {
	e.Sequence = seq
	return e
}

func (e *DeliveryError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, "op="+e.Op)
	}
	if e.Target != "" {
		parts = append(parts, "target="+e.Target)
	}
	if e.Sequence != 0 {
		parts = append(parts, fmt.Sprintf("seq=%d", e.Sequence))
	}
	return formatWithContext("delivery error", parts, e.message, e.cause)
}

// Is matches any *DeliveryError, then falls back to the cause chain.
func (e *DeliveryError) Is(target error) bool {
	if _, ok := target.(*DeliveryError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// BroadcastError
// -----------------------------------------------------------------------------

// BroadcastError reports a broadcast that did not reach every target.
// Deliveries listed in Delivered completed and are not rolled back.
type BroadcastError struct {
	Sequence  uint64
	Delivered []string
	Failed    []string
	Errs      []error
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast error [seq=%d]: delivered to %d, failed for %d (%s): %v",
		e.Sequence, len(e.Delivered), len(e.Failed), strings.Join(e.Failed, ", "), errors.Join(e.Errs...))
}

// Unwrap exposes every per-target error to errors.Is and errors.As.
func (e *BroadcastError) Unwrap() []error { return e.Errs }

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsCancelled reports whether err stems from an interrupted send or receive.
func IsCancelled(err error) bool {
	return err != nil && Is(err, ErrCancelled)
}

// IsRetryable returns true if the error represents a transient condition.
// Cancelled deliveries are retryable; registration errors are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var relayErr RelayError
	if As(err, &relayErr) {
		return relayErr.IsRetryable()
	}
	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var relayErr RelayError
	if As(err, &relayErr) {
		return relayErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement RelayError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var relayErr RelayError
	if As(err, &relayErr) {
		return relayErr.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
