// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeStandsStill(t *testing.T) {
	fake := Fake(epoch)
	if !fake.Now().Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), epoch)
	}
	if !fake.Now().Equal(fake.Now()) {
		t.Error("fake clock moved without Advance")
	}
}

func TestFakeAdvance(t *testing.T) {
	fake := Fake(epoch)
	fake.Advance(1500 * time.Millisecond)
	if got, want := fake.Now(), epoch.Add(1500*time.Millisecond); !got.Equal(want) {
		t.Errorf("after Advance: %v, want %v", got, want)
	}
	if got := fake.Now().UnixMilli(); got != epoch.UnixMilli()+1500 {
		t.Errorf("UnixMilli = %d", got)
	}
}

func TestFakeAdvanceNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Advance(-1) should panic")
		}
	}()
	Fake(epoch).Advance(-1)
}

func TestFakeSet(t *testing.T) {
	fake := Fake(epoch)
	later := epoch.Add(72 * time.Hour)
	fake.Set(later)
	if !fake.Now().Equal(later) {
		t.Errorf("after Set: %v, want %v", fake.Now(), later)
	}
}

func TestRealAdvances(t *testing.T) {
	real := Real()
	before := real.Now()
	if real.Now().Before(before) {
		t.Error("real clock went backwards")
	}
}
