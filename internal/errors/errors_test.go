package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// EndpointError Tests
// -----------------------------------------------------------------------------

func TestNewEndpointError(t *testing.T) {
	err := NewEndpointError("send", ErrSenderNotRegistered)

	if err.Op != "send" {
		t.Errorf("Op = %q, want %q", err.Op, "send")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestEndpointError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *EndpointError
		want string
	}{
		{
			name: "op and endpoint",
			err:  NewEndpointError("send", ErrReceiverNotRegistered).WithEndpoint("b"),
			want: "endpoint error [op=send, endpoint=b]: receiver not registered",
		},
		{
			name: "with message",
			err:  NewEndpointError("register", ErrUnnamedEndpoint).WithMessage("context has no name"),
			want: "endpoint error [op=register]: context has no name: endpoint name not set",
		},
		{
			name: "no cause",
			err:  NewEndpointError("", nil),
			want: "endpoint error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEndpointError_Is(t *testing.T) {
	err := NewEndpointError("receive", ErrReceiverNotRegistered).WithEndpoint("c")

	if !errors.Is(err, ErrReceiverNotRegistered) {
		t.Error("errors.Is(err, ErrReceiverNotRegistered) = false, want true")
	}
	if errors.Is(err, ErrSenderNotRegistered) {
		t.Error("errors.Is(err, ErrSenderNotRegistered) = true, want false")
	}
	if !errors.Is(err, &EndpointError{}) {
		t.Error("errors.Is(err, &EndpointError{}) = false, want true")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	var target *EndpointError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As did not find *EndpointError")
	}
	if target.Endpoint != "c" {
		t.Errorf("Endpoint = %q, want %q", target.Endpoint, "c")
	}
}

// -----------------------------------------------------------------------------
// DeliveryError Tests
// -----------------------------------------------------------------------------

func TestCancelled(t *testing.T) {
	t.Run("matches sentinel and context error", func(t *testing.T) {
		err := Cancelled("send", context.DeadlineExceeded).WithTarget("b").WithSequence(7)

		if !errors.Is(err, ErrCancelled) {
			t.Error("errors.Is(err, ErrCancelled) = false, want true")
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Error("errors.Is(err, context.DeadlineExceeded) = false, want true")
		}
		if errors.Is(err, context.Canceled) {
			t.Error("errors.Is(err, context.Canceled) = true, want false")
		}
		if !err.IsRetryable() {
			t.Error("IsRetryable() = false, want true")
		}
	})

	t.Run("nil context error defaults to Canceled", func(t *testing.T) {
		err := Cancelled("receive", nil)
		if !errors.Is(err, context.Canceled) {
			t.Error("errors.Is(err, context.Canceled) = false, want true")
		}
	})
}

func TestDeliveryError_Error(t *testing.T) {
	err := Cancelled("send", context.Canceled).WithTarget("b").WithSequence(3)
	want := "delivery error [op=send, target=b, seq=3]: operation cancelled: context canceled"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// -----------------------------------------------------------------------------
// BroadcastError Tests
// -----------------------------------------------------------------------------

func TestBroadcastError(t *testing.T) {
	err := &BroadcastError{
		Sequence:  9,
		Delivered: []string{"b"},
		Failed:    []string{"c", "d"},
		Errs:      []error{Cancelled("send", context.Canceled).WithTarget("c")},
	}

	if !errors.Is(err, ErrCancelled) {
		t.Error("errors.Is(err, ErrCancelled) = false, want true")
	}

	var dErr *DeliveryError
	if !errors.As(err, &dErr) {
		t.Fatal("errors.As did not find *DeliveryError")
	}
	if dErr.Target != "c" {
		t.Errorf("Target = %q, want %q", dErr.Target, "c")
	}

	msg := err.Error()
	for _, want := range []string{"seq=9", "delivered to 1", "failed for 2", "c, d"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsCancelled(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain context error", context.Canceled, false},
		{"cancelled delivery", Cancelled("receive", context.Canceled), true},
		{"wrapped", Wrap(Cancelled("send", context.Canceled), "broadcast"), true},
		{"endpoint error", NewEndpointError("send", ErrSenderNotRegistered), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCancelled(tt.err); got != tt.want {
				t.Errorf("IsCancelled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"standard error", New("boom"), false},
		{"endpoint error", NewEndpointError("send", ErrReceiverNotRegistered), false},
		{"delivery error", Cancelled("send", context.Canceled), true},
		{"broadcast error", &BroadcastError{Errs: []error{Cancelled("send", nil)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true, want false")
	}
	if IsUserFacing(New("internal")) {
		t.Error("IsUserFacing(plain) = true, want false")
	}
	if !IsUserFacing(NewEndpointError("send", ErrSenderNotRegistered)) {
		t.Error("IsUserFacing(endpoint error) = false, want true")
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityDebug)
	}
	if got := GetSeverity(New("x")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
	if got := GetSeverity(Cancelled("send", nil)); got != SeverityWarning {
		t.Errorf("GetSeverity(delivery) = %v, want %v", got, SeverityWarning)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrCancelled, "endpoint %s", "a")
	if err.Error() != "endpoint a: operation cancelled" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !errors.Is(err, ErrCancelled) {
		t.Error("Wrapf() lost the cause")
	}
}
