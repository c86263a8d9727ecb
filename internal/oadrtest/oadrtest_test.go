// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadrtest_test

import (
	"context"
	"encoding/xml"
	"errors"
	"testing"
	"time"

	"mellium.im/xmlstream"
	"mellium.im/xmpp"
	"mellium.im/xmpp/jid"

	"mellium.im/oadr/internal/oadrtest"
)

var (
	a = jid.MustParse("a@example.net")
	b = jid.MustParse("b@example.net")
)

func TestPair(t *testing.T) {
	received := make(chan string, 2)
	echo := xmpp.HandlerFunc(func(r xmlstream.TokenReadEncoder, start *xml.StartElement) error {
		received <- start.Name.Local
		if _, err := xmlstream.Copy(r, xmlstream.Wrap(nil, xml.StartElement{Name: xml.Name{Local: "pong"}})); err != nil {
			return err
		}
		return nil
	})
	collect := xmpp.HandlerFunc(func(r xmlstream.TokenReadEncoder, start *xml.StartElement) error {
		received <- start.Name.Local
		return nil
	})
	sa, sb := oadrtest.NewPair(a, b, collect, echo)
	defer sb.Close()
	defer sa.Close()

	if sa.LocalAddr().String() != a.String() || sa.RemoteAddr().String() != b.String() {
		t.Errorf("wrong addresses: local=%s, remote=%s", sa.LocalAddr(), sa.RemoteAddr())
	}

	err := sa.Send(context.Background(), xmlstream.Wrap(nil, xml.StartElement{Name: xml.Name{Local: "ping"}}))
	if err != nil {
		t.Fatalf("error sending: %v", err)
	}
	for _, want := range []string{"ping", "pong"} {
		select {
		case got := <-received:
			if got != want {
				t.Errorf("wrong element: want=%s, got=%s", want, got)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	if sent := sa.Sent(); len(sent) != 1 || sent[0] != "<ping></ping>" {
		t.Errorf("wrong sent log for a: %q", sent)
	}
	if sent := sb.Sent(); len(sent) != 1 || sent[0] != "<pong></pong>" {
		t.Errorf("wrong sent log for b: %q", sent)
	}
	if errs := sb.Errs(); len(errs) != 0 {
		t.Errorf("unexpected handler errors: %v", errs)
	}
}

func TestSendClosed(t *testing.T) {
	sa, sb := oadrtest.NewPair(a, b, nil, nil)
	sb.Close()
	defer sa.Close()
	err := sa.Send(context.Background(), xmlstream.Wrap(nil, xml.StartElement{Name: xml.Name{Local: "ping"}}))
	if !errors.Is(err, oadrtest.ErrClosed) {
		t.Errorf("wrong error: want=%v, got=%v", oadrtest.ErrClosed, err)
	}
}

func TestHandlerError(t *testing.T) {
	errBoom := errors.New("boom")
	sa, sb := oadrtest.NewPair(a, b, nil, xmpp.HandlerFunc(func(xmlstream.TokenReadEncoder, *xml.StartElement) error {
		return errBoom
	}))
	defer sa.Close()

	err := sa.Send(context.Background(), xmlstream.Wrap(nil, xml.StartElement{Name: xml.Name{Local: "ping"}}))
	if err != nil {
		t.Fatalf("error sending: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for len(sb.Errs()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	sb.Close()
	if errs := sb.Errs(); len(errs) != 1 || !errors.Is(errs[0], errBoom) {
		t.Errorf("wrong errors: %v", errs)
	}
}
