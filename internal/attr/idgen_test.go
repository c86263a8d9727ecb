// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package attr

import (
	"testing"
	"time"
)

func TestPublicRandomIDLength(t *testing.T) {
	if s := RandomID(); len(s) != IDLen {
		t.Errorf("expected length %d got %d", IDLen, len(s))
	}
}

func TestRandomIDMonotonic(t *testing.T) {
	now := time.Now()
	prev := randomID(now)
	for i := 0; i < 100; i++ {
		next := randomID(now)
		if next <= prev {
			t.Fatalf("IDs are not increasing: %q followed by %q", prev, next)
		}
		prev = next
	}
}
