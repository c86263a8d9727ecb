// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package oadrtest provides an in-memory transport for testing.
package oadrtest // import "mellium.im/oadr/internal/oadrtest"

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"sync"

	"mellium.im/xmlstream"
	"mellium.im/xmpp"
	"mellium.im/xmpp/jid"
)

// ErrClosed is returned when sending on a closed session.
var ErrClosed = errors.New("oadrtest: session closed")

const queueLen = 64

// Session is one end of an in-memory connection.
//
// Stanzas sent on a session are serialized, parsed again, and passed to the
// peer's handler on the peer's own delivery goroutine, as they would be by an
// XMPP session reading from the network.
// Anything the handler writes is sent back to the session that sent the
// stanza.
type Session struct {
	addr    jid.JID
	peer    *Session
	handler xmpp.Handler

	in        chan []byte
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu   sync.Mutex
	sent []string
	errs []error
}

// NewPair returns two connected sessions.
// Stanzas received by a are handled by ha and stanzas received by b are handled
// by hb.
// Either handler may be nil, in which case received stanzas are discarded.
func NewPair(a, b jid.JID, ha, hb xmpp.Handler) (*Session, *Session) {
	sa := newSession(a, ha)
	sb := newSession(b, hb)
	sa.peer, sb.peer = sb, sa
	sa.start()
	sb.start()
	return sa, sb
}

func newSession(addr jid.JID, h xmpp.Handler) *Session {
	return &Session{
		addr:    addr,
		handler: h,
		in:      make(chan []byte, queueLen),
		done:    make(chan struct{}),
	}
}

func (s *Session) start() {
	s.wg.Add(1)
	go s.serve()
}

// LocalAddr returns the address of the session.
func (s *Session) LocalAddr() jid.JID {
	return s.addr
}

// RemoteAddr returns the address of the peer.
func (s *Session) RemoteAddr() jid.JID {
	return s.peer.addr
}

// Send serializes the tokens read from r and queues them for delivery to the
// peer.
func (s *Session) Send(ctx context.Context, r xml.TokenReader) error {
	var buf bytes.Buffer
	e := xml.NewEncoder(&buf)
	if _, err := xmlstream.Copy(e, r); err != nil {
		return err
	}
	if err := e.Flush(); err != nil {
		return err
	}
	return s.write(ctx, buf.Bytes())
}

func (s *Session) write(ctx context.Context, b []byte) error {
	s.mu.Lock()
	s.sent = append(s.sent, string(b))
	s.mu.Unlock()

	select {
	case <-s.done:
		return ErrClosed
	case <-s.peer.done:
		return ErrClosed
	default:
	}
	select {
	case s.peer.in <- b:
		return nil
	case <-s.done:
		return ErrClosed
	case <-s.peer.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sent returns everything that was sent on the session, including replies
// written by its handler.
func (s *Session) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

// Errs returns the errors returned by the session's handler.
func (s *Session) Errs() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}

// Close stops the session's delivery goroutine and waits for it to exit.
// It does not close the peer.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
	return nil
}

func (s *Session) serve() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case b := <-s.in:
			s.deliver(b)
		}
	}
}

func (s *Session) deliver(b []byte) {
	if s.handler == nil {
		return
	}
	d := xml.NewDecoder(bytes.NewReader(b))
	for {
		tok, err := d.Token()
		if err != nil {
			s.fail(err)
			return
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		var out bytes.Buffer
		e := xml.NewEncoder(&out)
		err = s.handler.HandleXMPP(struct {
			xml.TokenReader
			xmlstream.Encoder
		}{
			TokenReader: d,
			Encoder:     e,
		}, &start)
		if err != nil {
			s.fail(err)
		}
		if err = e.Flush(); err != nil {
			s.fail(err)
			return
		}
		if out.Len() > 0 {
			if err = s.write(context.Background(), out.Bytes()); err != nil {
				s.fail(err)
			}
		}
		return
	}
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}
