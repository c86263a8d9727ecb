// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package profile maps OpenADR schema profiles to codecs.
//
// A profile is identified by an ordered, colon separated list of schema
// package identifiers such as "openadr.model.v20b:openadr.model.v20b.ei".
// Each package contributes one XML namespace, the preferred prefix for that
// namespace, and the root elements that are bound to Go types.
// Resolving a profile builds a Codec that can encode bound values into
// namespaced fragments and decode fragments back into typed values.
//
// Building a codec is comparatively expensive, so a Registry caches them by
// profile identifier.
// Codecs are safe for concurrent use.
package profile // import "mellium.im/oadr/profile"

import (
	"encoding/xml"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Type binds a root element in a package's namespace to a Go type.
// New must return a pointer to a fresh value of the type.
type Type struct {
	Local string
	New   func() interface{}
}

// Package describes a single schema package.
type Package struct {
	// ID is the identifier used to reference the package in a profile ID.
	ID string

	// Space is the XML namespace of the package.
	Space string

	// Prefix is the preferred namespace prefix for Space.
	// If it is empty the registry's PrefixMapper is consulted.
	Prefix string

	// Types are the root elements declared by the package.
	// Packages that only contribute nested types may have none.
	Types []Type
}

// SplitID splits a profile identifier into its package identifiers.
func SplitID(id string) []string {
	return strings.Split(id, ":")
}

// JoinID joins package identifiers into a profile identifier.
func JoinID(pkgs ...string) string {
	return strings.Join(pkgs, ":")
}

// Option configures a Registry.
type Option func(*Registry)

// WithPrefixes sets the prefix mapping used for namespaces whose package does
// not declare a prefix.
// The default is DefaultPrefixes.
func WithPrefixes(m PrefixMapper) Option {
	return func(r *Registry) {
		r.prefixes = m
	}
}

// WithLogger sets the logger used to report codec construction.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithMetrics registers a counter of codec builds on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Registry) {
		builds := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oadr",
			Subsystem: "profile",
			Name:      "builds_total",
			Help:      "Number of codecs built, by profile identifier.",
		}, []string{"profile"})
		if err := reg.Register(builds); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				builds = are.ExistingCollector.(*prometheus.CounterVec)
			} else {
				r.logger.Warn("registering profile metrics", zap.Error(err))
				return
			}
		}
		r.builds = builds
	}
}

// Registry resolves profile identifiers to codecs.
// The zero value is not usable, use NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	packages map[string]Package
	codecs   sync.Map

	prefixes PrefixMapper
	logger   *zap.Logger
	builds   *prometheus.CounterVec
}

// NewRegistry returns a registry that knows about pkgs.
func NewRegistry(pkgs []Package, opts ...Option) (*Registry, error) {
	r := &Registry{
		packages: make(map[string]Package),
		prefixes: DefaultPrefixes,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	if err := r.Register(pkgs...); err != nil {
		return nil, err
	}
	return r, nil
}

// Register makes pkgs available to profiles resolved after the call.
// Codecs that were already cached are not rebuilt.
func (r *Registry) Register(pkgs ...Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pkg := range pkgs {
		if pkg.ID == "" {
			return fmt.Errorf("profile: package for namespace %q has no identifier", pkg.Space)
		}
		if _, ok := r.packages[pkg.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePackage, pkg.ID)
		}
		r.packages[pkg.ID] = pkg
	}
	return nil
}

// Resolve returns the codec for the profile identified by id.
// The identifier is used verbatim as the cache key so two identifiers that
// list the same packages in a different order resolve to different codecs.
//
// Resolve is safe for concurrent use.
// Concurrent first calls for the same id may each build a codec but all of
// them return the one that was cached first.
func (r *Registry) Resolve(id string) (*Codec, error) {
	if c, ok := r.codecs.Load(id); ok {
		return c.(*Codec), nil
	}
	c, err := r.build(id)
	if err != nil {
		return nil, err
	}
	actual, loaded := r.codecs.LoadOrStore(id, c)
	if !loaded {
		if r.builds != nil {
			r.builds.WithLabelValues(id).Inc()
		}
		r.logger.Debug("built codec", zap.String("profile", id), zap.Int("types", len(c.byName)))
	}
	return actual.(*Codec), nil
}

func (r *Registry) build(id string) (*Codec, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	c := &Codec{
		id:       id,
		byName:   make(map[xml.Name]Type),
		byType:   make(map[reflect.Type]xml.Name),
		spaces:   make(map[string]struct{}),
		prefix:   make(Prefixes),
		fallback: r.prefixes,
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, pkgID := range SplitID(id) {
		pkg, ok := r.packages[pkgID]
		if !ok {
			return nil, fmt.Errorf("%w %q in profile %q", ErrUnknownPackage, pkgID, id)
		}
		c.spaces[pkg.Space] = struct{}{}
		if pkg.Prefix != "" {
			c.prefix[pkg.Space] = pkg.Prefix
		}
		for _, typ := range pkg.Types {
			name := xml.Name{Space: pkg.Space, Local: typ.Local}
			if _, ok := c.byName[name]; ok {
				return nil, fmt.Errorf("profile: {%s}%s bound twice in %q", name.Space, name.Local, id)
			}
			rt := reflect.TypeOf(typ.New())
			if rt == nil || rt.Kind() != reflect.Ptr {
				return nil, fmt.Errorf("profile: constructor for {%s}%s must return a pointer", name.Space, name.Local)
			}
			if other, ok := c.byType[rt]; ok {
				return nil, fmt.Errorf("profile: %v bound to both {%s}%s and {%s}%s", rt, other.Space, other.Local, name.Space, name.Local)
			}
			c.byName[name] = typ
			c.byType[rt] = name
		}
	}
	return c, nil
}
