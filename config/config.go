// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package config loads the settings of an OpenADR party from a TOML file.
//
// A minimal file only names the party's address:
//
//	address = "ven@example.net"
//	password = "secret"
//
// Every other key has a default:
//
//	profile = "2.0b"
//	namespace = "http://openadr.org/oadr-2.0b/2012/07"
//	capacity = 16
//	drop_policy = "newest"
//	timeout = "30s"
//
// The profile may be one of the aliases "2.0a" or "2.0b", or a full profile
// identifier as understood by profile.Registry.
package config // import "mellium.im/oadr/config"

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"mellium.im/xmpp/jid"

	"mellium.im/oadr"
	"mellium.im/oadr/model/oadr20a"
	"mellium.im/oadr/model/oadr20b"
	"mellium.im/oadr/profile"
)

// Profile aliases.
const (
	Profile20a = "2.0a"
	Profile20b = "2.0b"
)

// Config is the runtime configuration of a party.
type Config struct {
	// Address is the XMPP address that the party connects as.
	Address  jid.JID
	Password string

	// Profile is the profile identifier, with aliases already expanded.
	Profile string

	// Namespace is the namespace of the payloads routed to the dispatcher.
	Namespace string

	Capacity   int
	DropPolicy oadr.DropPolicy
	Timeout    time.Duration

	// InsecureSkipVerify disables verification of the server's certificate.
	// It is only meant for testing against local servers.
	InsecureSkipVerify bool
}

// fileConfig is the TOML key mapping of Config.
type fileConfig struct {
	Address            string `toml:"address"`
	Password           string `toml:"password"`
	Profile            string `toml:"profile"`
	Namespace          string `toml:"namespace"`
	Capacity           int    `toml:"capacity"`
	DropPolicy         string `toml:"drop_policy"`
	Timeout            string `toml:"timeout"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
}

// Default returns the configuration used for keys that are not set.
// The address is left empty and must always be provided.
func Default() Config {
	return Config{
		Profile:    oadr20b.ProfileID,
		Namespace:  oadr20b.NS,
		Capacity:   oadr.DefaultCapacity,
		DropPolicy: oadr.DropNewest,
		Timeout:    oadr.DefaultTimeout,
	}
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: loading %s: %w", path, err)
	}
	return fromFile(raw, meta)
}

// Parse parses a configuration file that has already been read.
func Parse(data []byte) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return fromFile(raw, meta)
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("config: unknown keys %s", strings.Join(keys, ", "))
	}

	cfg := Default()
	var err error
	if addr := strings.TrimSpace(raw.Address); addr != "" {
		cfg.Address, err = jid.Parse(addr)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid address %q: %w", addr, err)
		}
	}
	cfg.Password = raw.Password
	cfg.InsecureSkipVerify = raw.InsecureSkipVerify

	if meta.IsDefined("profile") {
		cfg.Profile = strings.TrimSpace(raw.Profile)
		cfg.Namespace = ""
		switch cfg.Profile {
		case Profile20a:
			cfg.Profile, cfg.Namespace = oadr20a.ProfileID, oadr20a.NS
		case Profile20b:
			cfg.Profile, cfg.Namespace = oadr20b.ProfileID, oadr20b.NS
		case oadr20a.ProfileID:
			cfg.Namespace = oadr20a.NS
		case oadr20b.ProfileID:
			cfg.Namespace = oadr20b.NS
		}
	}
	if meta.IsDefined("namespace") {
		cfg.Namespace = strings.TrimSpace(raw.Namespace)
	}
	if meta.IsDefined("capacity") {
		cfg.Capacity = raw.Capacity
	}
	if meta.IsDefined("drop_policy") {
		cfg.DropPolicy, err = oadr.ParseDropPolicy(strings.TrimSpace(raw.DropPolicy))
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	if meta.IsDefined("timeout") {
		cfg.Timeout, err = time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid timeout: %w", err)
		}
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.Address.String() == "":
		return errors.New("config: address is required")
	case c.Profile == "":
		return errors.New("config: profile is required")
	case c.Namespace == "":
		return fmt.Errorf("config: namespace is required for profile %q", c.Profile)
	case c.Capacity < 1:
		return fmt.Errorf("config: capacity must be at least 1, got %d", c.Capacity)
	case c.Timeout <= 0:
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Registry returns a registry that knows the packages of every profile
// supported by the model packages.
func Registry(opts ...profile.Option) (*profile.Registry, error) {
	pkgs := make([]profile.Package, 0, len(oadr20a.Packages)+len(oadr20b.Packages))
	pkgs = append(pkgs, oadr20a.Packages...)
	pkgs = append(pkgs, oadr20b.Packages...)
	return profile.NewRegistry(pkgs, opts...)
}

// Codec resolves the configured profile in reg.
func (c Config) Codec(reg *profile.Registry) (*profile.Codec, error) {
	codec, err := reg.Resolve(c.Profile)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return codec, nil
}

// DispatcherOptions returns the options that configure a dispatcher for c.
// codec may be nil, in which case inbound envelopes are not decoded.
func (c Config) DispatcherOptions(codec *profile.Codec) []oadr.Option {
	opts := []oadr.Option{
		oadr.WithTimeout(c.Timeout),
		oadr.WithCollectorOptions(
			oadr.Capacity(c.Capacity),
			oadr.Drop(c.DropPolicy),
		),
	}
	if codec != nil {
		opts = append(opts, oadr.WithCodec(codec))
	}
	return opts
}
