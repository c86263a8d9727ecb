// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Kinds of dispatch errors reported in the dispatch_errors_total metric.
const (
	errKindRead     = "read"
	errKindMismatch = "mismatch"
	errKindDecode   = "malformed"
	errKindReply    = "reply"
)

// metrics holds the collectors shared by a dispatcher and its collectors.
// A nil *metrics records nothing.
type metrics struct {
	enqueued       prometheus.Counter
	dropped        *prometheus.CounterVec
	dispatchErrors *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		enqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "oadr",
			Subsystem: "collector",
			Name:      "enqueued_total",
			Help:      "Number of stanzas enqueued on collectors.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oadr",
			Subsystem: "collector",
			Name:      "dropped_total",
			Help:      "Number of stanzas dropped by full collectors, by drop policy.",
		}, []string{"policy"}),
		dispatchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oadr",
			Subsystem: "dispatch",
			Name:      "errors_total",
			Help:      "Number of inbound stanzas that could not be read or decoded, by kind.",
		}, []string{"kind"}),
	}
	var err error
	if m.enqueued, err = register(reg, m.enqueued); err != nil {
		return nil, err
	}
	if m.dropped, err = register(reg, m.dropped); err != nil {
		return nil, err
	}
	if m.dispatchErrors, err = register(reg, m.dispatchErrors); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c on reg, returning the existing collector if an
// identical one was already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return c, err
}

func (m *metrics) enqueue() {
	if m == nil {
		return
	}
	m.enqueued.Inc()
}

func (m *metrics) drop(policy DropPolicy) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(policy.String()).Inc()
}

func (m *metrics) dispatchError(kind string) {
	if m == nil {
		return
	}
	m.dispatchErrors.WithLabelValues(kind).Inc()
}
