// Package testutil provides helpers for tests that coordinate goroutines.
package testutil

import (
	"testing"
	"time"
)

// DefaultTimeout bounds every wait in this package. Operations under test
// complete in microseconds; hitting it means a goroutine is stuck.
const DefaultTimeout = 2 * time.Second

// WaitFor polls cond until it returns true, failing the test if it does not
// within DefaultTimeout.
func WaitFor(t testing.TB, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(DefaultTimeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// Receive returns the next value from ch, failing the test if none arrives
// within DefaultTimeout.
func Receive[T any](t testing.TB, what string, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(DefaultTimeout):
		t.Fatalf("timed out waiting for %s", what)
		var zero T
		return zero
	}
}

// Blocked fails the test if ch yields a value within d. Use it to check that
// an operation is still parked.
func Blocked[T any](t testing.TB, what string, ch <-chan T, d time.Duration) {
	t.Helper()

	select {
	case v := <-ch:
		t.Fatalf("%s returned early with %v", what, v)
	case <-time.After(d):
	}
}
