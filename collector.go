// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCapacity is the number of stanzas a collector holds when no capacity
// is configured.
const DefaultCapacity = 16

// DropPolicy decides which stanza is discarded when a stanza is enqueued on a
// full collector.
type DropPolicy int

// Drop policies.
const (
	// DropNewest discards the stanza being enqueued.
	DropNewest DropPolicy = iota

	// DropOldest discards the stanza at the front of the queue to make room for
	// the stanza being enqueued.
	DropOldest
)

// String returns the name of the policy as used in configuration files.
func (p DropPolicy) String() string {
	switch p {
	case DropNewest:
		return "newest"
	case DropOldest:
		return "oldest"
	}
	return "unknown"
}

// ParseDropPolicy returns the policy with the provided name.
func ParseDropPolicy(s string) (DropPolicy, error) {
	switch s {
	case "", "newest":
		return DropNewest, nil
	case "oldest":
		return DropOldest, nil
	}
	return DropNewest, errors.New("oadr: unknown drop policy " + s)
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// Capacity sets the maximum number of stanzas held by the collector.
// Values less than one are ignored.
func Capacity(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// Drop sets the collector's drop policy.
// The default is DropNewest.
func Drop(p DropPolicy) CollectorOption {
	return func(c *Collector) {
		c.policy = p
	}
}

// Collector is a bounded FIFO queue of stanzas selected by a filter.
//
// Stanzas are added by the delivery goroutine with Enqueue, which never blocks,
// and removed by the caller that owns the collector with Take.
type Collector struct {
	filter   Filter
	capacity int
	policy   DropPolicy

	queue     chan *Stanza
	mu        sync.Mutex
	closed    chan struct{}
	closeOnce sync.Once

	logger  *zap.Logger
	metrics *metrics
}

// NewCollector returns an empty collector for stanzas that match f.
// A nil filter matches every stanza.
func NewCollector(f Filter, opts ...CollectorOption) *Collector {
	return newCollector(f, zap.NewNop(), nil, opts)
}

func newCollector(f Filter, logger *zap.Logger, m *metrics, opts []CollectorOption) *Collector {
	if f == nil {
		f = All()
	}
	c := &Collector{
		filter:   f,
		capacity: DefaultCapacity,
		closed:   make(chan struct{}),
		logger:   logger,
		metrics:  m,
	}
	for _, o := range opts {
		o(c)
	}
	c.queue = make(chan *Stanza, c.capacity)
	return c
}

// Filter returns the filter that selects stanzas for the collector.
func (c *Collector) Filter() Filter {
	return c.filter
}

// Cap returns the maximum number of stanzas held by the collector.
func (c *Collector) Cap() int {
	return c.capacity
}

// Len returns the number of stanzas waiting in the collector.
func (c *Collector) Len() int {
	return len(c.queue)
}

// Enqueue adds s to the back of the queue without blocking.
// It reports whether s was added: if the queue is full s is either dropped or
// replaces the oldest stanza, depending on the drop policy.
// Stanzas enqueued after the collector is closed are dropped.
func (c *Collector) Enqueue(s *Stanza) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case c.queue <- s:
		c.metrics.enqueue()
		return true
	default:
	}

	dropped := s
	if c.policy == DropOldest {
		// Only the owner removes stanzas concurrently so there is room once the
		// oldest stanza is removed.
		select {
		case dropped = <-c.queue:
		default:
			dropped = nil
		}
		c.queue <- s
		c.metrics.enqueue()
		if dropped == nil {
			return true
		}
	}
	c.metrics.drop(c.policy)
	c.logger.Warn("collector full, dropping stanza",
		zap.String("id", dropped.ID),
		zap.String("type", string(dropped.Type)),
		zap.Stringer("policy", c.policy),
		zap.Int("capacity", c.capacity),
	)
	return c.policy == DropOldest
}

// Take removes and returns the stanza at the front of the queue, waiting up to
// timeout for one to arrive.
// If the timeout elapses first ErrTimeout is returned.
func (c *Collector) Take(timeout time.Duration) (*Stanza, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.TakeContext(ctx)
}

// TakeContext is like Take except that it waits until the context is done.
// If the context's deadline is exceeded ErrTimeout is returned, if it is
// canceled the context's error is returned.
// Once the collector is closed and empty ErrClosed is returned.
func (c *Collector) TakeContext(ctx context.Context) (*Stanza, error) {
	select {
	case s := <-c.queue:
		return s, nil
	default:
	}

	select {
	case s := <-c.queue:
		return s, nil
	case <-c.closed:
		select {
		case s := <-c.queue:
			return s, nil
		default:
		}
		return nil, ErrClosed
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}

// Close stops the collector from accepting new stanzas and wakes any callers
// blocked in Take.
// Stanzas that were already queued can still be taken.
// Calling Close more than once has no effect.
func (c *Collector) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		close(c.closed)
	})
}
