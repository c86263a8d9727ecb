// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"mellium.im/oadr/profile"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used to report dropped and undecodable stanzas.
// The default discards all logs.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithMetrics registers the dispatcher's counters on reg.
// Dispatchers that share a registerer share counters.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(d *Dispatcher) {
		m, err := newMetrics(reg)
		if err != nil {
			d.logger.Warn("registering dispatcher metrics", zap.Error(err))
			return
		}
		d.metrics = m
	}
}

// WithTracer sets the tracer used to create spans for requests.
// The default uses the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

// WithCodec makes the dispatcher decode inbound envelopes in the codec's
// profile before delivering them.
// Envelopes that fail to decode are still delivered and report the decoding
// error from Unwrap.
func WithCodec(c *profile.Codec) Option {
	return func(d *Dispatcher) {
		d.codec = c
	}
}

// WithTimeout sets the timeout applied by Request when the context has no
// deadline.
// The default is DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithCollectorOptions sets options applied to every collector registered on
// the dispatcher before the options passed to Register.
func WithCollectorOptions(opts ...CollectorOption) Option {
	return func(d *Dispatcher) {
		d.collectorOpts = append(d.collectorOpts, opts...)
	}
}
