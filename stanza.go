// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr

import (
	"encoding/xml"
	"fmt"
	"io"

	"mellium.im/xmlstream"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"

	"mellium.im/oadr/internal/attr"
	"mellium.im/oadr/internal/tokens"
)

// Stanza is an IQ stanza carrying at most one OpenADR envelope.
type Stanza struct {
	ID   string
	To   jid.JID
	From jid.JID
	Type stanza.IQType

	envelope *Envelope
	err      *stanza.Error
}

// NewStanza returns a stanza of the provided type with a fresh random ID.
func NewStanza(typ stanza.IQType, to, from jid.JID) *Stanza {
	return &Stanza{
		ID:   attr.RandomID(),
		To:   to,
		From: from,
		Type: typ,
	}
}

// Attach sets the stanza's envelope.
// A stanza carries at most one envelope: attaching a second envelope replaces
// the first.
// Attaching nil removes the envelope.
func (s *Stanza) Attach(e *Envelope) {
	s.envelope = e
}

// Envelope returns the stanza's envelope if it has one and its root element is
// in the namespace ns.
func (s *Stanza) Envelope(ns string) (*Envelope, bool) {
	if s.envelope == nil || s.envelope.name.Space != ns {
		return nil, false
	}
	return s.envelope, true
}

// Payload returns the stanza's envelope regardless of its namespace, or nil.
func (s *Stanza) Payload() *Envelope {
	return s.envelope
}

// Err returns the stanza error carried by an error stanza.
func (s *Stanza) Err() (stanza.Error, bool) {
	if s.err == nil {
		return stanza.Error{}, false
	}
	return *s.err, true
}

// IQ returns the stanza's addressing information as an IQ.
func (s *Stanza) IQ() stanza.IQ {
	return stanza.IQ{
		ID:   s.ID,
		To:   s.To,
		From: s.From,
		Type: s.Type,
	}
}

// TokenReader returns the stanza as a stream of tokens with the envelope
// fragment as the only child of the IQ (followed by the error for error
// stanzas).
func (s *Stanza) TokenReader() xml.TokenReader {
	var inner []xml.TokenReader
	if s.envelope != nil {
		inner = append(inner, s.envelope.TokenReader())
	}
	if s.err != nil {
		inner = append(inner, s.err.TokenReader())
	}
	return xmlstream.Wrap(xmlstream.MultiReader(inner...), s.start())
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (s *Stanza) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, s.TokenReader())
}

// MarshalXML satisfies the xml.Marshaler interface.
func (s *Stanza) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := s.WriteXML(e)
	return err
}

func (s *Stanza) start() xml.StartElement {
	start := xml.StartElement{
		Name: xml.Name{Local: "iq"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "type"}, Value: string(s.Type)}},
	}
	if s.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "id"}, Value: s.ID})
	}
	if to := s.To.String(); to != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "to"}, Value: to})
	}
	if from := s.From.String(); from != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "from"}, Value: from})
	}
	return start
}

// Reply returns a result stanza with the same ID as s, addressed to the sender
// of s, carrying e.
// e may be nil for an empty result.
func (s *Stanza) Reply(e *Envelope) *Stanza {
	return &Stanza{
		ID:       s.ID,
		To:       s.From,
		From:     s.To,
		Type:     stanza.ResultIQ,
		envelope: e,
	}
}

// ErrorReply returns an error stanza with the same ID as s, addressed to the
// sender of s.
// The original envelope is included as is customary for IQ errors.
func (s *Stanza) ErrorReply(se stanza.Error) *Stanza {
	return &Stanza{
		ID:       s.ID,
		To:       s.From,
		From:     s.To,
		Type:     stanza.ErrorIQ,
		envelope: s.envelope,
		err:      &se,
	}
}

// ReadStanza reads an IQ stanza from r, the start element of which has already
// been consumed and is passed in as start.
// The first child element that is not a stanza error is captured as the
// stanza's envelope without being decoded.
//
// r may end at the IQ's end element or at io.EOF.
func ReadStanza(start *xml.StartElement, r xml.TokenReader) (*Stanza, error) {
	if start.Name.Local != "iq" {
		return nil, fmt.Errorf("%w: <%s>", ErrNotIQ, start.Name.Local)
	}
	s := &Stanza{}
	var err error
	_, s.ID = attr.Get(start.Attr, "id")
	_, typ := attr.Get(start.Attr, "type")
	switch stanza.IQType(typ) {
	case stanza.GetIQ, stanza.SetIQ, stanza.ResultIQ, stanza.ErrorIQ:
		s.Type = stanza.IQType(typ)
	default:
		return nil, fmt.Errorf("oadr: invalid IQ type %q", typ)
	}
	if _, to := attr.Get(start.Attr, "to"); to != "" {
		if s.To, err = jid.Parse(to); err != nil {
			return nil, fmt.Errorf("oadr: invalid to address on IQ %s: %w", s.ID, err)
		}
	}
	if _, from := attr.Get(start.Attr, "from"); from != "" {
		if s.From, err = jid.Parse(from); err != nil {
			return nil, fmt.Errorf("oadr: invalid from address on IQ %s: %w", s.ID, err)
		}
	}

	if err = s.readChildren(r); err != nil {
		return nil, err
	}
	return s, nil
}

// readChildren captures the children of the IQ up to its end element or
// io.EOF.
func (s *Stanza) readChildren(r xml.TokenReader) error {
	for {
		tok, err := r.Token()
		if tok != nil {
			switch t := tok.(type) {
			case xml.StartElement:
				if err := s.readChild(t, r); err != nil {
					return err
				}
			case xml.EndElement:
				return nil
			}
		}
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}
	}
}

// readChild captures the child element that starts with start.
func (s *Stanza) readChild(start xml.StartElement, r xml.TokenReader) error {
	toks, err := tokens.ReadElement(r, start)
	if err != nil {
		return err
	}
	if isStanzaError(start.Name) {
		if s.err != nil {
			return nil
		}
		se := stanza.Error{}
		if err = xml.NewTokenDecoder(tokens.Reader(toks)).Decode(&se); err != nil {
			return fmt.Errorf("oadr: invalid stanza error on IQ %s: %w", s.ID, err)
		}
		s.err = &se
		return nil
	}
	if s.envelope == nil {
		s.envelope = newRawEnvelope(toks)
	}
	return nil
}

func isStanzaError(name xml.Name) bool {
	if name.Local != "error" {
		return false
	}
	switch name.Space {
	case "", stanza.NSClient, stanza.NSServer:
		return true
	}
	return false
}
