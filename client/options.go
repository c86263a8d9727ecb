// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package client

import (
	"crypto/tls"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"mellium.im/oadr/profile"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	metrics   prometheus.Registerer
	tracer    trace.Tracer
	registry  *profile.Registry
	tlsConfig *tls.Config
}

func getOpts(o ...Option) (res options) {
	for _, f := range o {
		f(&res)
	}

	// Log nowhere by default.
	if res.logger == nil {
		res.logger = zap.NewNop()
	}
	return
}

// Logger sets the logger used by the client and its dispatcher.
func Logger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Metrics registers the client's dispatcher and registry counters on reg.
func Metrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.metrics = reg
	}
}

// Tracer sets the tracer used to create spans for requests.
func Tracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// Registry sets the registry that the configured profile is resolved in.
// The default is a registry created by config.Registry.
func Registry(reg *profile.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// TLS fully configures the client's TLS connection including the certificate
// chains used, cipher suites, etc.
// The default only sets the server name and the configured
// InsecureSkipVerify.
func TLS(config *tls.Config) Option {
	return func(o *options) {
		o.tlsConfig = config
	}
}
