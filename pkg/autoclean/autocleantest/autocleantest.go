// Package autocleantest wires autoclean resets into the testing lifecycle.
package autocleantest

import (
	"testing"

	"github.com/idudko/go-autoclean/pkg/autoclean"
)

// ResetOnCleanup registers a reset of target that runs when tb and its subtests
// complete. A failed reset is reported through tb.Errorf.
func ResetOnCleanup(tb testing.TB, target any, opts ...autoclean.Option) {
	tb.Helper()
	tb.Cleanup(func() {
		if err := autoclean.Reset(target, opts...); err != nil {
			tb.Errorf("reset %T: %v", target, err)
		}
	})
}

// ResetAsOnCleanup is ResetOnCleanup with T as the declared type.
func ResetAsOnCleanup[T any](tb testing.TB, target any, opts ...autoclean.Option) {
	tb.Helper()
	tb.Cleanup(func() {
		if err := autoclean.ResetAs[T](target, opts...); err != nil {
			tb.Errorf("reset %T as %T: %v", target, *new(T), err)
		}
	})
}

// MustReset resets target and stops the test on failure.
func MustReset(tb testing.TB, target any, opts ...autoclean.Option) {
	tb.Helper()
	if err := autoclean.Reset(target, opts...); err != nil {
		tb.Fatalf("reset %T: %v", target, err)
	}
}
