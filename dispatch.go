// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr

import (
	"context"
	"encoding/xml"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"mellium.im/xmlstream"
	"mellium.im/xmpp"
	"mellium.im/xmpp/mux"
	"mellium.im/xmpp/stanza"

	"mellium.im/oadr/profile"
)

// DefaultTimeout is the time Request waits for a response when neither the
// context nor the dispatcher set a deadline.
const DefaultTimeout = 30 * time.Second

// Sender transmits stanzas.
// It is implemented by *xmpp.Session.
type Sender interface {
	Send(ctx context.Context, r xml.TokenReader) error
}

var (
	_ xmpp.Handler  = (*Dispatcher)(nil)
	_ mux.IQHandler = (*Dispatcher)(nil)
	_ Sender        = (*xmpp.Session)(nil)
)

// Dispatcher delivers inbound stanzas to the collectors whose filters match
// them.
// A dispatcher is normally used as the handler of a single session, either
// directly or mounted on a mux.ServeMux with Handle.
//
// The zero value is not usable, use NewDispatcher.
type Dispatcher struct {
	mu         sync.RWMutex
	collectors map[*Collector]struct{}

	codec         *profile.Codec
	timeout       time.Duration
	collectorOpts []CollectorOption
	logger        *zap.Logger
	metrics       *metrics
	tracer        trace.Tracer
}

// NewDispatcher returns a dispatcher with no registered collectors.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		collectors: make(map[*Collector]struct{}),
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer("mellium.im/oadr")
	}
	return d
}

// Codec returns the codec used to decode inbound envelopes, if any.
func (d *Dispatcher) Codec() *profile.Codec {
	return d.codec
}

// Register creates a collector for stanzas that match f.
// Stanzas delivered after Register returns are guaranteed to be considered by
// the new collector.
func (d *Dispatcher) Register(f Filter, opts ...CollectorOption) *Collector {
	all := make([]CollectorOption, 0, len(d.collectorOpts)+len(opts))
	all = append(all, d.collectorOpts...)
	all = append(all, opts...)
	c := newCollector(f, d.logger, d.metrics, all)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.collectors[c] = struct{}{}
	return c
}

// Deregister removes c from the dispatcher and closes it.
// Deregistering a collector that is not registered only closes it.
func (d *Dispatcher) Deregister(c *Collector) {
	d.mu.Lock()
	delete(d.collectors, c)
	d.mu.Unlock()
	c.Close()
}

// Len returns the number of registered collectors.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.collectors)
}

// Deliver enqueues s on every registered collector whose filter matches it and
// returns the number of collectors that matched.
// Deliver never blocks on a collector.
func (d *Dispatcher) Deliver(s *Stanza) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for c := range d.collectors {
		if !c.filter.Match(s) {
			continue
		}
		n++
		c.Enqueue(s)
	}
	return n
}

// HandleXMPP satisfies xmpp.Handler.
// IQ stanzas are read, decoded if the dispatcher has a codec, and delivered.
// Other elements are ignored.
//
// Stanzas that cannot be read are logged and dropped without returning an
// error so that the session keeps running.
// Get and set requests that no collector matches are answered with a
// service-unavailable error.
func (d *Dispatcher) HandleXMPP(t xmlstream.TokenReadEncoder, start *xml.StartElement) error {
	if start.Name.Local != "iq" {
		return nil
	}
	s, err := ReadStanza(start, t)
	if err != nil {
		d.readError(err)
		return nil
	}
	return d.handle(s, t)
}

// HandleIQ satisfies mux.IQHandler.
// It is like HandleXMPP except that the IQ start element has already been
// consumed and start is the first child, or an empty start element if the IQ
// has no children.
func (d *Dispatcher) HandleIQ(iq stanza.IQ, t xmlstream.TokenReadEncoder, start *xml.StartElement) error {
	s := &Stanza{
		ID:   iq.ID,
		To:   iq.To,
		From: iq.From,
		Type: iq.Type,
	}
	if start != nil && start.Name.Local != "" {
		err := s.readChild(*start, t)
		if err == nil {
			err = s.readChildren(t)
		}
		if err != nil {
			d.readError(err)
			return nil
		}
	}
	return d.handle(s, t)
}

// Handle returns an option that mounts the dispatcher on a mux.ServeMux for
// IQs of every type with a payload in any of the namespaces.
//
// Replies are not guaranteed to carry a payload in one of the namespaces, use
// HandleReplies to route them as well.
func (d *Dispatcher) Handle(namespaces ...string) mux.Option {
	return func(m *mux.ServeMux) {
		for _, ns := range namespaces {
			name := xml.Name{Space: ns}
			for _, typ := range []stanza.IQType{stanza.GetIQ, stanza.SetIQ, stanza.ResultIQ, stanza.ErrorIQ} {
				mux.IQ(typ, name, d)(m)
			}
		}
	}
}

// HandleReplies returns an option that mounts the dispatcher on a
// mux.ServeMux for every result and error IQ not matched by a more specific
// pattern, including empty results.
// It may only be used once per mux.
func (d *Dispatcher) HandleReplies() mux.Option {
	return func(m *mux.ServeMux) {
		mux.IQ(stanza.ResultIQ, xml.Name{}, d)(m)
		mux.IQ(stanza.ErrorIQ, xml.Name{}, d)(m)
	}
}

func (d *Dispatcher) handle(s *Stanza, w xmlstream.TokenWriter) error {
	d.decode(s)
	if d.Deliver(s) > 0 || (s.Type != stanza.GetIQ && s.Type != stanza.SetIQ) {
		return nil
	}
	d.logger.Debug("no collector for request",
		zap.String("id", s.ID),
		zap.Stringer("from", s.From),
	)
	_, err := s.ErrorReply(stanza.Error{
		Type:      stanza.Cancel,
		Condition: stanza.ServiceUnavailable,
	}).WriteXML(w)
	if err != nil {
		d.metrics.dispatchError(errKindReply)
	}
	return err
}

// decode decodes the envelope of s in the dispatcher's profile.
// Failures are recorded on the envelope and the stanza is delivered anyway.
func (d *Dispatcher) decode(s *Stanza) {
	e := s.envelope
	if d.codec == nil || e == nil || e.raw == nil {
		return
	}
	if _, ok := d.codec.Lookup(e.name); !ok {
		if spaceIn(d.codec.Spaces(), e.name.Space) {
			d.metrics.dispatchError(errKindMismatch)
			e.setErr(&profile.MismatchError{Profile: d.codec.ID(), Name: e.name})
			d.logger.Warn("unbound payload",
				zap.String("id", s.ID),
				zap.String("profile", d.codec.ID()),
				zap.String("namespace", e.name.Space),
				zap.String("element", e.name.Local),
			)
		}
		return
	}
	if _, err := e.Decode(d.codec, nil); err != nil {
		d.metrics.dispatchError(errKindDecode)
		d.logger.Warn("malformed payload",
			zap.String("id", s.ID),
			zap.String("profile", d.codec.ID()),
			zap.String("namespace", e.name.Space),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) readError(err error) {
	d.metrics.dispatchError(errKindRead)
	d.logger.Warn("dropping unreadable stanza", zap.Error(err))
}

func spaceIn(spaces []string, space string) bool {
	for _, s := range spaces {
		if s == space {
			return true
		}
	}
	return false
}

// Request sends req using s and waits for the stanza selected by f.
// If f is nil the reply to req is awaited.
//
// The collector is registered before req is sent and is always deregistered
// before Request returns so a reply can never be missed or leak into a later
// request.
// If ctx has no deadline the dispatcher's timeout applies.
// If no stanza arrives in time ErrTimeout is returned and the request is not
// retried.
// Error replies are returned along with a *RemoteError, and envelopes that
// could not be decoded along with the decoding error.
func (d *Dispatcher) Request(ctx context.Context, s Sender, req *Stanza, f Filter, opts ...CollectorOption) (*Stanza, error) {
	ctx, span := d.tracer.Start(ctx, "oadr.Request", trace.WithAttributes(
		attribute.String("oadr.id", req.ID),
		attribute.String("oadr.type", string(req.Type)),
		attribute.String("oadr.to", req.To.String()),
	))
	defer span.End()
	if e := req.Payload(); e != nil {
		span.SetAttributes(
			attribute.String("oadr.namespace", e.name.Space),
			attribute.String("oadr.element", e.name.Local),
		)
	}

	if _, ok := ctx.Deadline(); !ok && d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if f == nil {
		f = ReplyTo(req.ID)
	}

	c := d.Register(f, opts...)
	defer d.Deregister(c)

	if err := s.Send(ctx, req.TokenReader()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return nil, err
	}

	resp, err := c.TakeContext(ctx)
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			d.logger.Debug("request timed out", zap.String("id", req.ID), zap.Stringer("to", req.To))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("oadr.reply.type", string(resp.Type)))

	if se, ok := resp.Err(); ok {
		err = &RemoteError{ID: resp.ID, Err: se}
	} else if e := resp.Payload(); e != nil {
		err = e.decodeErr()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

// Reply sends a result stanza carrying e in response to req using s.
func Reply(ctx context.Context, s Sender, req *Stanza, e *Envelope) error {
	return s.Send(ctx, req.Reply(e).TokenReader())
}
