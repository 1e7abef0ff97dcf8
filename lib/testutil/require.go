// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"
	"time"
)

// RequireReceive returns the next value from ch. The test fails if ch
// is closed first or nothing arrives within timeout; waiting names the
// event being awaited in the failure message.
//
//	record := testutil.RequireReceive(t, records, 5*time.Second, "log record")
func RequireReceive[T any](t testing.TB, ch <-chan T, timeout time.Duration, waiting string) T {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case value, open := <-ch:
		if !open {
			t.Fatalf("%s: channel closed", waiting)
		}
		return value
	case <-timer.C:
		t.Fatalf("%s: nothing received within %v", waiting, timeout)
	}
	var zero T
	return zero
}
