// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package client connects an OpenADR party to an XMPP server.
//
// A Client owns a single session and the dispatcher that serves it.
// Payloads are sent with Request and every OpenADR IQ received on the session
// is handed to the collectors registered with Collect.
package client // import "mellium.im/oadr/client"

import (
	"context"
	"crypto/tls"
	"fmt"

	"go.uber.org/zap"
	"mellium.im/sasl"
	"mellium.im/xmpp"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/mux"
	"mellium.im/xmpp/stanza"

	"mellium.im/oadr"
	"mellium.im/oadr/config"
	"mellium.im/oadr/profile"
)

// Mechanisms are the SASL mechanisms offered by Dial, in order of preference.
var Mechanisms = []sasl.Mechanism{
	sasl.ScramSha256Plus,
	sasl.ScramSha256,
	sasl.ScramSha1Plus,
	sasl.ScramSha1,
	sasl.Plain,
}

// Client is an OpenADR party bound to a session.
type Client struct {
	cfg     config.Config
	local   jid.JID
	sender  oadr.Sender
	session *xmpp.Session
	codec   *profile.Codec
	d       *oadr.Dispatcher
	logger  *zap.Logger
}

// New returns a client that sends stanzas from local using s.
// Stanzas received by the session must be passed to the client's Handler.
// Most users will want to use Dial instead.
func New(cfg config.Config, local jid.JID, s oadr.Sender, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := getOpts(opts...)
	reg := o.registry
	if reg == nil {
		var err error
		regOpts := []profile.Option{profile.WithLogger(o.logger)}
		if o.metrics != nil {
			regOpts = append(regOpts, profile.WithMetrics(o.metrics))
		}
		reg, err = config.Registry(regOpts...)
		if err != nil {
			return nil, err
		}
	}
	codec, err := cfg.Codec(reg)
	if err != nil {
		return nil, err
	}

	dopts := cfg.DispatcherOptions(codec)
	dopts = append(dopts, oadr.WithLogger(o.logger))
	if o.metrics != nil {
		dopts = append(dopts, oadr.WithMetrics(o.metrics))
	}
	if o.tracer != nil {
		dopts = append(dopts, oadr.WithTracer(o.tracer))
	}
	return &Client{
		cfg:    cfg,
		local:  local,
		sender: s,
		codec:  codec,
		d:      oadr.NewDispatcher(dopts...),
		logger: o.logger.With(zap.Stringer("jid", local)),
	}, nil
}

// Dial connects to the server of the configured address, negotiates StartTLS,
// authenticates, binds a resource, and sends initial presence.
// The returned client is not yet receiving stanzas, see Serve.
func Dial(ctx context.Context, cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := getOpts(opts...)
	tlsConfig := o.tlsConfig
	if tlsConfig == nil {
		/* #nosec */
		tlsConfig = &tls.Config{
			ServerName:         cfg.Address.Domain().String(),
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		}
	}

	o.logger.Debug("dialing session", zap.Stringer("jid", cfg.Address))
	session, err := xmpp.DialClientSession(ctx, cfg.Address,
		xmpp.StartTLS(tlsConfig),
		xmpp.SASL("", cfg.Password, Mechanisms...),
		xmpp.BindResource(),
	)
	if err != nil {
		return nil, fmt.Errorf("client: establishing session as %s: %w", cfg.Address, err)
	}

	c, err := New(cfg, session.LocalAddr(), session, opts...)
	if err != nil {
		/* #nosec */
		session.Close()
		return nil, err
	}
	c.session = session

	// Initial presence lets the server route IQs to the bound resource.
	if err = session.Send(ctx, stanza.Presence{}.Wrap(nil)); err != nil {
		/* #nosec */
		session.Close()
		return nil, fmt.Errorf("client: sending initial presence: %w", err)
	}
	c.logger.Info("session established", zap.String("profile", cfg.Profile))
	return c, nil
}

// LocalAddr returns the address that the client sends from.
func (c *Client) LocalAddr() jid.JID {
	return c.local
}

// Codec returns the codec of the configured profile.
func (c *Client) Codec() *profile.Codec {
	return c.codec
}

// Dispatcher returns the dispatcher that routes inbound stanzas.
func (c *Client) Dispatcher() *oadr.Dispatcher {
	return c.d
}

// Handler returns a handler that routes IQs with payloads in the configured
// namespace, and every result and error IQ, to the client's dispatcher.
func (c *Client) Handler() xmpp.Handler {
	return mux.New(stanza.NSClient, c.d.Handle(c.cfg.Namespace), c.d.HandleReplies())
}

// Serve processes stanzas received on the session until it is closed.
// It must only be called on clients returned by Dial.
func (c *Client) Serve() error {
	if c.session == nil {
		return fmt.Errorf("client: no session to serve")
	}
	return c.session.Serve(c.Handler())
}

// Collect registers a collector for stanzas matching f.
// The caller must deregister it using the client's dispatcher when done.
func (c *Client) Collect(f oadr.Filter, opts ...oadr.CollectorOption) *oadr.Collector {
	return c.d.Register(f, opts...)
}

// Request sends payload v to the party at to in an IQ of type typ and waits for
// the reply.
// The payload of the reply is returned, or nil if the reply is empty.
func (c *Client) Request(ctx context.Context, typ stanza.IQType, to jid.JID, v interface{}) (interface{}, error) {
	e, err := oadr.Wrap(c.codec, v)
	if err != nil {
		return nil, err
	}
	req := oadr.NewStanza(typ, to, c.local)
	req.Attach(e)
	c.logger.Debug("sending request",
		zap.String("id", req.ID),
		zap.Stringer("to", to),
		zap.String("element", e.Name().Local),
	)
	resp, err := c.d.Request(ctx, c.sender, req, nil)
	if err != nil {
		return nil, err
	}
	pl := resp.Payload()
	if pl == nil {
		return nil, nil
	}
	return pl.Unwrap()
}

// Respond answers req with payload v.
// If v is nil an empty result is sent.
func (c *Client) Respond(ctx context.Context, req *oadr.Stanza, v interface{}) error {
	var e *oadr.Envelope
	if v != nil {
		var err error
		e, err = oadr.Wrap(c.codec, v)
		if err != nil {
			return err
		}
	}
	return oadr.Reply(ctx, c.sender, req, e)
}

// Close closes the client's session, if any.
func (c *Client) Close() error {
	if c.session == nil {
		return nil
	}
	return c.session.Close()
}
