// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"mellium.im/xmpp/stanza"

	"mellium.im/oadr"
)

func stanzas(n int) []*oadr.Stanza {
	s := make([]*oadr.Stanza, n)
	for i := range s {
		s[i] = &oadr.Stanza{ID: strconv.Itoa(i), Type: stanza.ResultIQ}
	}
	return s
}

func ids(t *testing.T, c *oadr.Collector) []string {
	t.Helper()
	var out []string
	for c.Len() > 0 {
		s, err := c.Take(time.Second)
		if err != nil {
			t.Fatalf("error taking stanza: %v", err)
		}
		out = append(out, s.ID)
	}
	return out
}

func TestCollectorFIFO(t *testing.T) {
	c := oadr.NewCollector(nil)
	if c.Cap() != oadr.DefaultCapacity {
		t.Errorf("wrong default capacity: want=%d, got=%d", oadr.DefaultCapacity, c.Cap())
	}
	for _, s := range stanzas(5) {
		if !c.Enqueue(s) {
			t.Fatalf("failed to enqueue %s", s.ID)
		}
	}
	if got := strings.Join(ids(t, c), " "); got != "0 1 2 3 4" {
		t.Errorf("wrong order: want=0 1 2 3 4, got=%s", got)
	}
}

var dropTestCases = [...]struct {
	policy  oadr.DropPolicy
	in      int
	added   []bool
	remains string
}{
	0: {
		policy:  oadr.DropNewest,
		in:      4,
		added:   []bool{true, true, true, false},
		remains: "0 1 2",
	},
	1: {
		policy:  oadr.DropOldest,
		in:      4,
		added:   []bool{true, true, true, true},
		remains: "1 2 3",
	},
	2: {
		policy:  oadr.DropOldest,
		in:      5,
		added:   []bool{true, true, true, true, true},
		remains: "2 3 4",
	},
	3: {
		policy:  oadr.DropNewest,
		in:      2,
		added:   []bool{true, true},
		remains: "0 1",
	},
}

func TestCollectorDrop(t *testing.T) {
	for i, tc := range dropTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			c := oadr.NewCollector(nil, oadr.Capacity(3), oadr.Drop(tc.policy))
			for j, s := range stanzas(tc.in) {
				if added := c.Enqueue(s); added != tc.added[j] {
					t.Errorf("wrong result enqueuing %d: want=%t, got=%t", j, tc.added[j], added)
				}
				if c.Len() > c.Cap() {
					t.Fatalf("collector exceeded capacity: %d > %d", c.Len(), c.Cap())
				}
			}
			if got := strings.Join(ids(t, c), " "); got != tc.remains {
				t.Errorf("wrong stanzas remaining: want=%s, got=%s", tc.remains, got)
			}
		})
	}
}

func TestCapacityIgnoresInvalid(t *testing.T) {
	c := oadr.NewCollector(nil, oadr.Capacity(0), oadr.Capacity(-1))
	if c.Cap() != oadr.DefaultCapacity {
		t.Errorf("wrong capacity: want=%d, got=%d", oadr.DefaultCapacity, c.Cap())
	}
}

func TestCollectorFilter(t *testing.T) {
	f := oadr.ReplyTo("1")
	c := oadr.NewCollector(f)
	if !c.Filter().Match(&oadr.Stanza{ID: "1", Type: stanza.ResultIQ}) {
		t.Errorf("collector filter does not match reply")
	}
	if !oadr.NewCollector(nil).Filter().Match(&oadr.Stanza{}) {
		t.Errorf("nil filter should match every stanza")
	}
}

func TestTakeTimeout(t *testing.T) {
	c := oadr.NewCollector(nil)
	start := time.Now()
	_, err := c.Take(10 * time.Millisecond)
	if !errors.Is(err, oadr.ErrTimeout) {
		t.Errorf("wrong error: want=%v, got=%v", oadr.ErrTimeout, err)
	}
	if d := time.Since(start); d < 10*time.Millisecond {
		t.Errorf("take returned before the timeout elapsed: %v", d)
	}
}

func TestTakeCanceled(t *testing.T) {
	c := oadr.NewCollector(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.TakeContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("wrong error: want=%v, got=%v", context.Canceled, err)
	}
}

func TestTakeReady(t *testing.T) {
	c := oadr.NewCollector(nil)
	c.Enqueue(&oadr.Stanza{ID: "1"})

	// A stanza that is already queued is returned even if the context is done.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := c.TakeContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "1" {
		t.Errorf("wrong stanza: want=1, got=%s", s.ID)
	}
}

func TestTakeWaits(t *testing.T) {
	c := oadr.NewCollector(nil)
	go func() {
		time.Sleep(5 * time.Millisecond)
		c.Enqueue(&oadr.Stanza{ID: "late"})
	}()
	s, err := c.Take(5 * time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "late" {
		t.Errorf("wrong stanza: want=late, got=%s", s.ID)
	}
}

func TestCollectorClose(t *testing.T) {
	c := oadr.NewCollector(nil)
	c.Enqueue(&oadr.Stanza{ID: "1"})
	c.Close()
	c.Close()

	if c.Enqueue(&oadr.Stanza{ID: "2"}) {
		t.Errorf("enqueue succeeded on a closed collector")
	}
	s, err := c.Take(time.Second)
	if err != nil {
		t.Fatalf("queued stanza lost after close: %v", err)
	}
	if s.ID != "1" {
		t.Errorf("wrong stanza: want=1, got=%s", s.ID)
	}
	if _, err = c.Take(time.Second); !errors.Is(err, oadr.ErrClosed) {
		t.Errorf("wrong error: want=%v, got=%v", oadr.ErrClosed, err)
	}
}

func TestCloseWakesTake(t *testing.T) {
	c := oadr.NewCollector(nil)
	errs := make(chan error, 1)
	go func() {
		_, err := c.Take(5 * time.Second)
		errs <- err
	}()
	time.Sleep(5 * time.Millisecond)
	c.Close()
	if err := <-errs; !errors.Is(err, oadr.ErrClosed) {
		t.Errorf("wrong error: want=%v, got=%v", oadr.ErrClosed, err)
	}
}

func TestEnqueueConcurrent(t *testing.T) {
	const n = 64
	c := oadr.NewCollector(nil, oadr.Capacity(8), oadr.Drop(oadr.DropOldest))
	var wg sync.WaitGroup
	for _, s := range stanzas(n) {
		wg.Add(1)
		go func(s *oadr.Stanza) {
			defer wg.Done()
			c.Enqueue(s)
		}(s)
	}
	wg.Wait()
	if c.Len() != c.Cap() {
		t.Errorf("wrong length: want=%d, got=%d", c.Cap(), c.Len())
	}
}

func TestParseDropPolicy(t *testing.T) {
	for i, tc := range [...]struct {
		in     string
		policy oadr.DropPolicy
		err    bool
	}{
		0: {in: "", policy: oadr.DropNewest},
		1: {in: "newest", policy: oadr.DropNewest},
		2: {in: "oldest", policy: oadr.DropOldest},
		3: {in: "random", err: true},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			p, err := oadr.ParseDropPolicy(tc.in)
			if (err != nil) != tc.err {
				t.Fatalf("unexpected error value: %v", err)
			}
			if p != tc.policy {
				t.Errorf("wrong policy: want=%v, got=%v", tc.policy, p)
			}
			if !tc.err && tc.in != "" && p.String() != tc.in {
				t.Errorf("wrong name: want=%s, got=%s", tc.in, p)
			}
		})
	}
}
